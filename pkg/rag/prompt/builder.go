package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"

	"grant-advisor-be/internal/constant"
)

// BuildSystemPrompt renders the layered chat instruction: persona and
// behavioral policy, the selected form definition, the rule set, and the
// retrieved case text. Pure template rendering; the only conditional is
// the placeholder substitution for empty inputs.
func BuildSystemPrompt(grantName, formKey string, formJSON, rulesJSON json.RawMessage, retrievalText string) string {
	if retrievalText == "" {
		retrievalText = constant.NoCaseDataPlaceholder
	}
	return fmt.Sprintf(constant.SystemPromptTemplate,
		grantName,
		formKey,
		indentJSON(formJSON, "{}"),
		compactJSON(rulesJSON, "{}"),
		retrievalText,
	)
}

// BuildReviewPrompt renders the four-step audit instruction against the
// form's item definitions and the rule set.
func BuildReviewPrompt(formKey string, itemsJSON, rulesJSON json.RawMessage) string {
	return fmt.Sprintf(constant.ReviewPromptTemplate,
		formKey,
		indentJSON(itemsJSON, "[]"),
		compactJSON(rulesJSON, "{}"),
	)
}

func indentJSON(raw json.RawMessage, fallback string) string {
	if len(raw) == 0 {
		return fallback
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

func compactJSON(raw json.RawMessage, fallback string) string {
	if len(raw) == 0 {
		return fallback
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
