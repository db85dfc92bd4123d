package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePartitionRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
}

type UpdatePartitionRequest struct {
	Id          uuid.UUID `json:"-"`
	Name        string    `json:"name" validate:"required,max=255"`
	Description *string   `json:"description"`
}

type PartitionResponse struct {
	Id          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	IsSystem    bool       `json:"is_system"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
