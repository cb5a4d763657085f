package humanness

import (
	"fmt"
	"strings"
)

// Strategy is one of the five fixed message-generation instruction variants.
type Strategy string

const (
	StrategyBaseline            Strategy = "strategy_1"
	StrategyPeerConversational  Strategy = "strategy_2"
	StrategySpecificObservation Strategy = "strategy_3"
	StrategyBriefImperfect      Strategy = "strategy_4"
	StrategyQuestionLed         Strategy = "strategy_5"
)

var allStrategies = []Strategy{
	StrategyBaseline,
	StrategyPeerConversational,
	StrategySpecificObservation,
	StrategyBriefImperfect,
	StrategyQuestionLed,
}

var strategyLabels = map[Strategy]string{
	StrategyBaseline:            "baseline",
	StrategyPeerConversational:  "peer_conversational",
	StrategySpecificObservation: "specific_observation",
	StrategyBriefImperfect:      "brief_imperfect",
	StrategyQuestionLed:         "question_led",
}

// AllStrategies returns the strategies in generation order.
func AllStrategies() []Strategy {
	out := make([]Strategy, len(allStrategies))
	copy(out, allStrategies)
	return out
}

func ParseStrategy(s string) (Strategy, error) {
	st := Strategy(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("unknown strategy %q", s)
	}
	return st, nil
}

func (s Strategy) Valid() bool {
	_, ok := strategyLabels[s]
	return ok
}

// IsBaseline reports whether s is the control condition.
func (s Strategy) IsBaseline() bool { return s == StrategyBaseline }

func (s Strategy) Label() string { return strategyLabels[s] }

func (s Strategy) String() string { return string(s) }
