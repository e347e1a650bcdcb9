package store

import (
	"grant-advisor-be/pkg/knowledge"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one transcript entry. Turns are appended in strict
// chronological order and never mutated. Role alternation is not
// enforced: injecting a review report creates consecutive assistant
// turns, and consumers must tolerate that.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session represents the active advisory session state in memory
type Session struct {
	ID            string `json:"id"`
	SelectedGrant string `json:"selected_grant"`
	SelectedForm  string `json:"selected_form"`

	// Ordered transcript of completed turns
	Turns []Turn `json:"turns"`

	// Single-slot quick-ask holder; a second set before consumption
	// overwrites the first
	PendingItem *knowledge.Item `json:"pending_item"`

	// Last document-review report, kept until attached or reset
	ReviewReport string `json:"review_report"`
}

// AppendTurn records a completed turn.
func (s *Session) AppendTurn(role, content string) {
	s.Turns = append(s.Turns, Turn{Role: role, Content: content})
}

// SetPendingItem stores a quick-ask click, replacing any unconsumed one.
func (s *Session) SetPendingItem(item knowledge.Item) {
	s.PendingItem = &item
}

// ConsumePendingItem clears and returns the pending quick-ask item.
func (s *Session) ConsumePendingItem() (knowledge.Item, bool) {
	if s.PendingItem == nil {
		return knowledge.Item{}, false
	}
	item := *s.PendingItem
	s.PendingItem = nil
	return item, true
}

// Reset clears the transcript, pending item and review report while
// keeping the grant/form selection.
func (s *Session) Reset() {
	s.Turns = nil
	s.PendingItem = nil
	s.ReviewReport = ""
}
