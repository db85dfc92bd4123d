package contract

import (
	"context"

	"ai-knowledgebase-be/internal/entity"
	"ai-knowledgebase-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	Update(ctx context.Context, doc *entity.Document) error
	// PatchSummary applies the summarization result as a keyed single-field
	// patch. Patching a deleted or unknown id is a silent no-op.
	PatchSummary(ctx context.Context, id uuid.UUID, summary string, status string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// NextPosition returns the next display sequence number from a
	// centralized counter (MAX(position)+1), closing the duplicate-sequence
	// race that size-plus-batch-index assignment would have.
	NextPosition(ctx context.Context) (int, error)
	// ReassignPartition moves every document of one partition to another.
	ReassignPartition(ctx context.Context, from uuid.UUID, to uuid.UUID) error
}
