package history

import (
	"grant-advisor-be/pkg/llm"
	"grant-advisor-be/pkg/store"
)

// BuildExchanges converts the transcript plus the newly submitted text
// into the exchange sequence sent to the generation service.
//
// Every stored turn except the most recent one is mapped role-preserving;
// the new text is always appended as the final user exchange. The caller
// appends the user turn to the transcript before calling this, so the
// trailing stored entry and the final exchange carry the same text. A
// dangling trailing entry from an earlier failed stream is still
// included ahead of the new submission; nothing is deduplicated or
// merged.
func BuildExchanges(turns []store.Turn, newUserText string) []llm.Message {
	messages := make([]llm.Message, 0, len(turns)+1)
	for i, turn := range turns {
		if i == len(turns)-1 {
			break
		}
		messages = append(messages, llm.Message{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}
	messages = append(messages, llm.Message{
		Role:    store.RoleUser,
		Content: newUserText,
	})
	return messages
}
