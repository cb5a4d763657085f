package promptstyle

import "strings"

const marker = "OUTREACH_PROMPT_STYLE_V1"

// ApplySystem prepends a short guidance block to system prompts. Applying it
// twice is a no-op.
func ApplySystem(system string, mode string) string {
	base := strings.TrimSpace(system)
	if base == "" || strings.Contains(base, marker) {
		return base
	}
	mode = strings.ToLower(strings.TrimSpace(mode))

	var b strings.Builder
	b.WriteString(marker)
	b.WriteString("\nYou assist a B2B sales team with outbound prospecting.")
	b.WriteString("\nFollow the system and user instructions precisely.")
	b.WriteString("\nUse the provided prospect data as grounding; do not invent facts about the prospect.")
	if mode == "json" {
		b.WriteString("\nReturn a single JSON object and nothing else.")
	} else {
		b.WriteString("\nIf an output format is specified, output only that format.")
	}
	b.WriteString("\n---\n")
	b.WriteString(base)
	return b.String()
}
