package implementation

import (
	"context"
	"errors"

	"ai-knowledgebase-be/internal/entity"
	"ai-knowledgebase-be/internal/mapper"
	"ai-knowledgebase-be/internal/model"
	"ai-knowledgebase-be/internal/repository/contract"
	"ai-knowledgebase-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PartitionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PartitionMapper
}

func NewPartitionRepository(db *gorm.DB) contract.PartitionRepository {
	return &PartitionRepositoryImpl{
		db:     db,
		mapper: mapper.NewPartitionMapper(),
	}
}

func (r *PartitionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PartitionRepositoryImpl) Create(ctx context.Context, partition *entity.Partition) error {
	m := r.mapper.ToModel(partition)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*partition = *r.mapper.ToEntity(m)
	return nil
}

func (r *PartitionRepositoryImpl) Update(ctx context.Context, partition *entity.Partition) error {
	m := r.mapper.ToModel(partition)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*partition = *r.mapper.ToEntity(m)
	return nil
}

func (r *PartitionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Partition{}, id).Error
}

func (r *PartitionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Partition, error) {
	var m model.Partition
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PartitionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Partition, error) {
	var models []*model.Partition
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
