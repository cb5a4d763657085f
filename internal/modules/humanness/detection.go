package humanness

import (
	"math"
	"sort"

	"github.com/google/uuid"

	domain "github.com/yungbote/outreach-backend/internal/domain/humanness"
)

// UnassignedBucket collects judgments on messages without a strategy tag.
const UnassignedBucket = "unassigned"

type StrategyStats struct {
	Strategy                       string  `json:"strategy"`
	AIMessagesCount                int     `json:"ai_messages_count"`
	HumanMessagesCount             int     `json:"human_messages_count"`
	AICorrectlyIdentified          int     `json:"ai_correctly_identified"`
	AIIncorrectlyIdentifiedAsHuman int     `json:"ai_incorrectly_identified_as_human"`
	HumanIncorrectlyIdentifiedAsAI int     `json:"human_incorrectly_identified_as_ai"`
	DetectionRate                  float64 `json:"detection_rate"`
	FalsePositiveRate              float64 `json:"false_positive_rate"`
}

type DetectionStats struct {
	TotalResponses                 int             `json:"total_responses"`
	AIMessagesCount                int             `json:"ai_messages_count"`
	AICorrectlyIdentified          int             `json:"ai_correctly_identified"`
	HumanMessagesCount             int             `json:"human_messages_count"`
	HumanIncorrectlyIdentifiedAsAI int             `json:"human_incorrectly_identified_as_ai"`
	OverallDetectionRate           float64         `json:"overall_detection_rate"`
	OverallFalsePositiveRate       float64         `json:"overall_false_positive_rate"`
	TargetDetectionRate            float64         `json:"target_detection_rate"`
	TargetMet                      bool            `json:"target_met"`
	Strategies                     []StrategyStats `json:"strategies"`
	Unassigned                     StrategyStats   `json:"unassigned"`
}

// ComputeDetectionStats aggregates judgments into per-strategy and overall rates.
//
// Human-written judgments land in the unassigned bucket. Every strategy bucket
// shares the test-wide human denominator, so its false-positive rate equals the
// overall one. The overall detection rate is pooled over all AI judgments.
func ComputeDetectionStats(rows []domain.Judgment, target float64) DetectionStats {
	buckets := map[string]*StrategyStats{}
	unassigned := &StrategyStats{Strategy: UnassignedBucket}
	out := DetectionStats{TotalResponses: len(rows), TargetDetectionRate: target}

	for _, r := range rows {
		switch r.MessageType {
		case domain.MessageTypeAIGenerated:
			b := unassigned
			if r.AIPromptingStrategy != nil && domain.Strategy(*r.AIPromptingStrategy).Valid() {
				tag := *r.AIPromptingStrategy
				b = buckets[tag]
				if b == nil {
					b = &StrategyStats{Strategy: tag}
					buckets[tag] = b
				}
			}
			b.AIMessagesCount++
			out.AIMessagesCount++
			if r.IdentifiedAsAI {
				b.AICorrectlyIdentified++
				out.AICorrectlyIdentified++
			} else {
				b.AIIncorrectlyIdentifiedAsHuman++
			}
		case domain.MessageTypeHumanWritten:
			unassigned.HumanMessagesCount++
			out.HumanMessagesCount++
			if r.IdentifiedAsAI {
				unassigned.HumanIncorrectlyIdentifiedAsAI++
				out.HumanIncorrectlyIdentifiedAsAI++
			}
		}
	}

	out.OverallDetectionRate = Percent(out.AICorrectlyIdentified, out.AIMessagesCount)
	out.OverallFalsePositiveRate = Percent(out.HumanIncorrectlyIdentifiedAsAI, out.HumanMessagesCount)
	out.TargetMet = out.OverallDetectionRate < target

	tags := make([]string, 0, len(buckets))
	for tag := range buckets {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	out.Strategies = make([]StrategyStats, 0, len(tags))
	for _, tag := range tags {
		b := buckets[tag]
		b.HumanMessagesCount = out.HumanMessagesCount
		b.HumanIncorrectlyIdentifiedAsAI = out.HumanIncorrectlyIdentifiedAsAI
		b.DetectionRate = Percent(b.AICorrectlyIdentified, b.AIMessagesCount)
		b.FalsePositiveRate = out.OverallFalsePositiveRate
		out.Strategies = append(out.Strategies, *b)
	}
	unassigned.DetectionRate = Percent(unassigned.AICorrectlyIdentified, unassigned.AIMessagesCount)
	unassigned.FalsePositiveRate = Percent(unassigned.HumanIncorrectlyIdentifiedAsAI, unassigned.HumanMessagesCount)
	out.Unassigned = *unassigned
	return out
}

// Percent returns num/den*100 rounded to two decimals, or 0 when den is 0.
func Percent(num, den int) float64 {
	if den <= 0 {
		return 0
	}
	return Round2(float64(num) / float64(den) * 100)
}

func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// ToRecord converts a strategy bucket into its persisted rollup.
func (s StrategyStats) ToRecord(testID uuid.UUID) domain.AnalyticsRecord {
	return domain.AnalyticsRecord{
		TestID:                         testID,
		Strategy:                       s.Strategy,
		AIMessagesCount:                s.AIMessagesCount,
		HumanMessagesCount:             s.HumanMessagesCount,
		AICorrectlyIdentified:          s.AICorrectlyIdentified,
		AIIncorrectlyIdentifiedAsHuman: s.AIIncorrectlyIdentifiedAsHuman,
		HumanIncorrectlyIdentifiedAsAI: s.HumanIncorrectlyIdentifiedAsAI,
		DetectionRate:                  s.DetectionRate,
		FalsePositiveRate:              s.FalsePositiveRate,
	}
}

// StatsFromRecord is the inverse of ToRecord.
func StatsFromRecord(r *domain.AnalyticsRecord) StrategyStats {
	if r == nil {
		return StrategyStats{}
	}
	return StrategyStats{
		Strategy:                       r.Strategy,
		AIMessagesCount:                r.AIMessagesCount,
		HumanMessagesCount:             r.HumanMessagesCount,
		AICorrectlyIdentified:          r.AICorrectlyIdentified,
		AIIncorrectlyIdentifiedAsHuman: r.AIIncorrectlyIdentifiedAsHuman,
		HumanIncorrectlyIdentifiedAsAI: r.HumanIncorrectlyIdentifiedAsAI,
		DetectionRate:                  r.DetectionRate,
		FalsePositiveRate:              r.FalsePositiveRate,
	}
}
