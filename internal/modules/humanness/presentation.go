package humanness

import (
	"math/rand"

	"github.com/google/uuid"
)

// PlanPresentationOrder shuffles the not-yet-ordered messages and places them
// after currentMax. Already ordered messages are never part of the plan.
func PlanPresentationOrder(currentMax int, unordered []uuid.UUID, rnd *rand.Rand) map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(unordered))
	if len(unordered) == 0 {
		return out
	}
	ids := make([]uuid.UUID, len(unordered))
	copy(ids, unordered)
	rnd.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	for i, id := range ids {
		out[id] = currentMax + i + 1
	}
	return out
}
