package entity

import (
	"time"

	"github.com/google/uuid"
)

// Partition is a user-defined bucket grouping documents. System partitions
// ("all", "uncategorized") are seeded at migration time and not deletable.
type Partition struct {
	Id          uuid.UUID
	Name        string
	Description *string
	IsSystem    bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
