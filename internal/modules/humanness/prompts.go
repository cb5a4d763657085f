package humanness

import (
	"fmt"
	"strings"

	domain "github.com/yungbote/outreach-backend/internal/domain/humanness"
)

const baseQualificationInstructions = `You qualify B2B sales prospects and explain your judgment the way a seasoned SDR would explain it to a colleague.
Given the prospect context, decide whether the prospect is worth contacting now.
Return JSON with these fields:
- status: one of "qualified", "not_qualified", "needs_review"
- channel: the best outreach channel ("email", "linkedin" or "sms")
- confidence: a number between 0 and 1
- reasoning: the message you would send to this prospect, written in first person`

const peerConversationalStyle = `Write the reasoning like a peer reaching out, not a vendor.
Use contractions and plain words. No corporate phrasing, no exclamation marks.`

const specificObservationStyle = `Open the reasoning with one concrete, specific observation about the prospect's company taken from the context.
Do not use generic compliments. Tie the observation to a single pain point.`

const briefImperfectStyle = `Keep the reasoning under 60 words. It is fine to be slightly informal or to use a sentence fragment.
Avoid perfectly balanced sentence structure and avoid lists.`

const questionLedStyle = `Lead the reasoning with a genuine question about the prospect's situation.
Ask at most two questions in total and make no pitch before the first question.`

// The baseline strategy is the control condition and adds no style suffix.
var strategySuffix = map[domain.Strategy]string{
	domain.StrategyBaseline:            "",
	domain.StrategyPeerConversational:  peerConversationalStyle,
	domain.StrategySpecificObservation: specificObservationStyle,
	domain.StrategyBriefImperfect:      briefImperfectStyle,
	domain.StrategyQuestionLed:         questionLedStyle,
}

// SystemPrompt is the shared base instruction set plus the strategy-specific suffix.
func SystemPrompt(s domain.Strategy) string {
	suffix := strings.TrimSpace(strategySuffix[s])
	if suffix == "" {
		return baseQualificationInstructions
	}
	return baseQualificationInstructions + "\n\nStyle:\n" + suffix
}

// QualificationContext is everything the LLM sees about the prospect.
type QualificationContext struct {
	ProspectName  string
	Title         string
	Company       string
	Industry      string
	EmailDomain   string
	TalkingPoints []string
	PainPoints    []string
	Channel       string
	LastReply     string
}

func (c QualificationContext) Render() string {
	var b strings.Builder
	b.WriteString("PROSPECT\n")
	writeField(&b, "name", c.ProspectName)
	writeField(&b, "title", c.Title)
	writeField(&b, "company", c.Company)
	writeField(&b, "industry", c.Industry)
	writeField(&b, "email_domain", c.EmailDomain)
	if len(c.TalkingPoints) > 0 {
		b.WriteString("\nTALKING POINTS\n")
		writeList(&b, c.TalkingPoints)
	}
	if len(c.PainPoints) > 0 {
		b.WriteString("\nPAIN POINTS\n")
		writeList(&b, c.PainPoints)
	}
	b.WriteString("\nCONTEXT\n")
	writeField(&b, "requested_channel", c.Channel)
	if strings.TrimSpace(c.LastReply) != "" {
		writeField(&b, "last_reply", c.LastReply)
	} else {
		b.WriteString("- no prior reply\n")
	}
	return b.String()
}

func writeField(b *strings.Builder, k, v string) {
	v = strings.TrimSpace(v)
	if v == "" {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", k, v)
}

func writeList(b *strings.Builder, items []string) {
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			fmt.Fprintf(b, "- %s\n", it)
		}
	}
}

// QualificationSchema is the strict JSON schema sent with GenerateJSON.
func QualificationSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"status", "channel", "confidence", "reasoning"},
		"properties": map[string]any{
			"status":     map[string]any{"type": "string", "enum": []string{"qualified", "not_qualified", "needs_review"}},
			"channel":    map[string]any{"type": "string"},
			"confidence": map[string]any{"type": "number"},
			"reasoning":  map[string]any{"type": "string"},
		},
	}
}

// SubjectFor builds the subject line shown with a generated message.
func SubjectFor(company string) string {
	company = strings.TrimSpace(company)
	if company == "" {
		return "Quick question"
	}
	return "Quick question for " + company
}
