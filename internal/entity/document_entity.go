package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is one ingested knowledge source. Id is immutable once created;
// PartitionId always references a real partition (never the virtual "all"
// bucket). Status only moves forward through the lifecycle.
type Document struct {
	Id          uuid.UUID
	PartitionId uuid.UUID
	Position    int
	Name        string
	Kind        string
	Content     string
	SourceURL   *string
	SizeLabel   *string
	Status      string
	Summary     *string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
