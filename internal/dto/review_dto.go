package dto

import (
	"github.com/google/uuid"
)

type ReviewResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	FileName  string    `json:"file_name"`
	Report    string    `json:"report"`
}
