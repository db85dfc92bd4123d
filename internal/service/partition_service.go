package service

import (
	"context"
	"time"

	"ai-knowledgebase-be/internal/constant"
	"ai-knowledgebase-be/internal/dto"
	"ai-knowledgebase-be/internal/entity"
	"ai-knowledgebase-be/internal/repository/specification"
	"ai-knowledgebase-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPartitionService interface {
	Create(ctx context.Context, req *dto.CreatePartitionRequest) (*dto.PartitionResponse, error)
	List(ctx context.Context) ([]*dto.PartitionResponse, error)
	Update(ctx context.Context, req *dto.UpdatePartitionRequest) (*dto.PartitionResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type partitionService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPartitionService(uowFactory unitofwork.RepositoryFactory) IPartitionService {
	return &partitionService{
		uowFactory: uowFactory,
	}
}

func (s *partitionService) Create(ctx context.Context, req *dto.CreatePartitionRequest) (*dto.PartitionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Names need not be unique; only ids are.
	partition := entity.Partition{
		Id:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		IsSystem:    false,
		CreatedAt:   time.Now(),
	}

	if err := uow.PartitionRepository().Create(ctx, &partition); err != nil {
		return nil, err
	}

	return mapPartitionResponse(&partition), nil
}

func (s *partitionService) List(ctx context.Context) ([]*dto.PartitionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	partitions, err := uow.PartitionRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.PartitionResponse, 0, len(partitions))
	for _, p := range partitions {
		responses = append(responses, mapPartitionResponse(p))
	}
	return responses, nil
}

func (s *partitionService) Update(ctx context.Context, req *dto.UpdatePartitionRequest) (*dto.PartitionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	partition, err := uow.PartitionRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if partition == nil {
		return nil, nil // Not found
	}
	if partition.IsSystem {
		return nil, fiber.NewError(fiber.StatusForbidden, "system partitions cannot be renamed")
	}

	partition.Name = req.Name
	partition.Description = req.Description
	now := time.Now()
	partition.UpdatedAt = &now

	if err := uow.PartitionRepository().Update(ctx, partition); err != nil {
		return nil, err
	}

	return mapPartitionResponse(partition), nil
}

func (s *partitionService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	partition, err := uow.PartitionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if partition == nil {
		return fiber.NewError(fiber.StatusNotFound, "partition not found")
	}
	if partition.IsSystem {
		return fiber.NewError(fiber.StatusForbidden, "system partitions cannot be deleted")
	}

	// Orphaned documents fall back to "uncategorized" inside the same
	// transaction as the delete.
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.DocumentRepository().ReassignPartition(ctx, id, constant.PartitionUncategorizedId); err != nil {
		uow.Rollback()
		return err
	}
	if err := uow.PartitionRepository().Delete(ctx, id); err != nil {
		uow.Rollback()
		return err
	}
	return uow.Commit()
}

func mapPartitionResponse(p *entity.Partition) *dto.PartitionResponse {
	return &dto.PartitionResponse{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		IsSystem:    p.IsSystem,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
