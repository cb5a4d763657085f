package humanness

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const QualificationNeedsReview = "needs_review"

const defaultQualificationConfidence = 0.5

var (
	ErrNoJSONObject   = errors.New("qualification: no JSON object in reply")
	ErrEmptyReasoning = errors.New("qualification: empty reasoning")
)

// Qualification is the decoded LLM reply.
type Qualification struct {
	Status     string  `json:"status"`
	Channel    string  `json:"channel"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

type rawQualification struct {
	Status     *string  `json:"status"`
	Channel    *string  `json:"channel"`
	Confidence *float64 `json:"confidence"`
	Reasoning  *string  `json:"reasoning"`
}

// DecodeQualification parses a possibly fenced LLM reply.
//
// Missing status becomes needs_review. Missing confidence becomes 0.5 and any
// value is clamped to [0,1]. Channel is lowercased and may be empty. Reasoning
// is required.
func DecodeQualification(raw string) (Qualification, error) {
	body := extractObject(stripFences(raw))
	if body == "" {
		return Qualification{}, ErrNoJSONObject
	}
	var rq rawQualification
	if err := json.Unmarshal([]byte(body), &rq); err != nil {
		return Qualification{}, fmt.Errorf("qualification: decode: %w", err)
	}

	q := Qualification{
		Status:     QualificationNeedsReview,
		Confidence: defaultQualificationConfidence,
	}
	if rq.Status != nil && strings.TrimSpace(*rq.Status) != "" {
		q.Status = strings.ToLower(strings.TrimSpace(*rq.Status))
	}
	if rq.Channel != nil {
		q.Channel = strings.ToLower(strings.TrimSpace(*rq.Channel))
	}
	if rq.Confidence != nil {
		q.Confidence = clamp01(*rq.Confidence)
	}
	if rq.Reasoning != nil {
		q.Reasoning = strings.TrimSpace(*rq.Reasoning)
	}
	if q.Reasoning == "" {
		return Qualification{}, ErrEmptyReasoning
	}
	return q, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// extractObject returns the outermost {...} span, or "".
func extractObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
