package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type SessionResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type ChatHistoryResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Chat      string    `json:"chat"`
	Thinking  bool      `json:"thinking,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type AskRequest struct {
	ChatSessionId uuid.UUID   `json:"chat_session_id" validate:"required"`
	Query         string      `json:"query"`
	PartitionIds  []uuid.UUID `json:"partition_ids"`
}

type AskResponseChat struct {
	Id        uuid.UUID `json:"id"`
	Chat      string    `json:"chat"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type AskResponse struct {
	ChatSessionId uuid.UUID        `json:"chat_session_id"`
	Sent          *AskResponseChat `json:"sent,omitempty"`
	Reply         *AskResponseChat `json:"reply"`
	// SourceCount is how many documents survived filtering into the context.
	SourceCount int `json:"source_count"`
}
