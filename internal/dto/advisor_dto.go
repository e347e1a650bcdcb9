package dto

import (
	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Grant   string `json:"grant" validate:"required"`
	FormKey string `json:"form_key" validate:"required"`
}

type CreateSessionResponse struct {
	Id      uuid.UUID `json:"id"`
	Grant   string    `json:"grant"`
	FormKey string    `json:"form_key"`
}

type TranscriptTurnResponse struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type SendChatRequest struct {
	// Empty message is allowed: it consumes the pending quick-ask item
	Message string `json:"message"`
}

type SendChatResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Sent      string    `json:"sent"`
	Reply     string    `json:"reply"`
}

type SetPendingItemRequest struct {
	ItemID string `json:"item_id" validate:"required"`
	Label  string `json:"label" validate:"required"`
}

type FormListEntry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type FormItemResponse struct {
	ItemID      string `json:"item_id"`
	Label       string `json:"label"`
	Display     string `json:"display"`
	Instruction string `json:"instruction"`
}
