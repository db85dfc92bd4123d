package contract

import (
	"context"

	"ai-knowledgebase-be/internal/entity"
	"ai-knowledgebase-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PartitionRepository interface {
	Create(ctx context.Context, partition *entity.Partition) error
	Update(ctx context.Context, partition *entity.Partition) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Partition, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Partition, error)
}
