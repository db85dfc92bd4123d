package service

import (
	"context"
	"errors"
	"testing"

	"ai-knowledgebase-be/internal/constant"
	"ai-knowledgebase-be/internal/dto"
	"ai-knowledgebase-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePartitionIsNeverSystem(t *testing.T) {
	uow := newFakeUow()
	svc := NewPartitionService(&fakeUowFactory{uow: uow})

	res, err := svc.Create(context.Background(), &dto.CreatePartitionRequest{Name: "Research"})
	require.NoError(t, err)
	assert.Equal(t, "Research", res.Name)
	assert.False(t, res.IsSystem)
	assert.NotEqual(t, uuid.Nil, res.Id)
}

func TestUpdateSystemPartitionForbidden(t *testing.T) {
	uow := newFakeUow()
	uow.partitions.partitions = []*entity.Partition{
		{Id: constant.PartitionUncategorizedId, Name: constant.PartitionUncategorizedName, IsSystem: true},
	}
	svc := NewPartitionService(&fakeUowFactory{uow: uow})

	_, err := svc.Update(context.Background(), &dto.UpdatePartitionRequest{
		Id:   constant.PartitionUncategorizedId,
		Name: "Renamed",
	})

	var fiberErr *fiber.Error
	require.True(t, errors.As(err, &fiberErr))
	assert.Equal(t, fiber.StatusForbidden, fiberErr.Code)
}

func TestUpdateMissingPartitionReturnsNil(t *testing.T) {
	uow := newFakeUow()
	svc := NewPartitionService(&fakeUowFactory{uow: uow})

	res, err := svc.Update(context.Background(), &dto.UpdatePartitionRequest{
		Id:   uuid.New(),
		Name: "Renamed",
	})
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestDeletePartitionReassignsDocuments(t *testing.T) {
	uow := newFakeUow()
	partitionId := uuid.New()
	uow.partitions.partitions = []*entity.Partition{
		{Id: partitionId, Name: "Doomed"},
	}
	uow.documents.docs = []*entity.Document{
		{Id: uuid.New(), PartitionId: partitionId, Name: "a.txt"},
		{Id: uuid.New(), PartitionId: constant.PartitionUncategorizedId, Name: "b.txt"},
	}
	svc := NewPartitionService(&fakeUowFactory{uow: uow})

	require.NoError(t, svc.Delete(context.Background(), partitionId))

	assert.Empty(t, uow.partitions.partitions)
	for _, doc := range uow.documents.docs {
		assert.Equal(t, constant.PartitionUncategorizedId, doc.PartitionId)
	}
}

func TestDeleteSystemPartitionForbidden(t *testing.T) {
	uow := newFakeUow()
	uow.partitions.partitions = []*entity.Partition{
		{Id: constant.PartitionAllId, Name: constant.PartitionAllName, IsSystem: true},
	}
	svc := NewPartitionService(&fakeUowFactory{uow: uow})

	err := svc.Delete(context.Background(), constant.PartitionAllId)

	var fiberErr *fiber.Error
	require.True(t, errors.As(err, &fiberErr))
	assert.Equal(t, fiber.StatusForbidden, fiberErr.Code)
	assert.Len(t, uow.partitions.partitions, 1)
}

func TestDeleteMissingPartitionFails(t *testing.T) {
	uow := newFakeUow()
	svc := NewPartitionService(&fakeUowFactory{uow: uow})

	err := svc.Delete(context.Background(), uuid.New())

	var fiberErr *fiber.Error
	require.True(t, errors.As(err, &fiberErr))
	assert.Equal(t, fiber.StatusNotFound, fiberErr.Code)
}
