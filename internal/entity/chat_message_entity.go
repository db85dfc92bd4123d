package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one turn in the append-only conversation log. Messages are
// never mutated after creation.
type ChatMessage struct {
	Id            uuid.UUID
	Chat          string
	Role          string
	Thinking      bool
	ChatSessionId uuid.UUID
	CreatedAt     time.Time
	DeletedAt     *time.Time
	IsDeleted     bool
}
