package humanness

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	domain "github.com/yungbote/outreach-backend/internal/domain/humanness"
)

func TestSystemPromptPerStrategy(t *testing.T) {
	base := SystemPrompt(domain.StrategyBaseline)
	seen := map[string]bool{base: true}
	for _, s := range domain.AllStrategies() {
		p := SystemPrompt(s)
		assert.True(t, strings.HasPrefix(p, base))
		if !s.IsBaseline() {
			assert.False(t, seen[p], "duplicate prompt for %s", s)
			seen[p] = true
		}
	}
}

func TestQualificationContextRender(t *testing.T) {
	out := QualificationContext{
		ProspectName:  "Dana Reyes",
		Company:       "Acme",
		EmailDomain:   "acme.io",
		TalkingPoints: []string{"new warehouse", " "},
		Channel:       "email",
	}.Render()
	assert.Contains(t, out, "- name: Dana Reyes")
	assert.Contains(t, out, "- email_domain: acme.io")
	assert.Contains(t, out, "- new warehouse")
	assert.Contains(t, out, "- no prior reply")
	assert.NotContains(t, out, "PAIN POINTS")
}

func TestSubjectFor(t *testing.T) {
	assert.Equal(t, "Quick question for Acme", SubjectFor(" Acme "))
	assert.Equal(t, "Quick question", SubjectFor(""))
}

func TestPlanPresentationOrder(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	plan := PlanPresentationOrder(3, ids, rand.New(rand.NewSource(7)))

	assert.Len(t, plan, 4)
	orders := make([]int, 0, len(plan))
	for _, id := range ids {
		orders = append(orders, plan[id])
	}
	sort.Ints(orders)
	assert.Equal(t, []int{4, 5, 6, 7}, orders)

	assert.Empty(t, PlanPresentationOrder(0, nil, rand.New(rand.NewSource(1))))
}
