package unitofwork

import (
	"context"

	"ai-knowledgebase-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	PartitionRepository() contract.PartitionRepository

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository

	SettingRepository() contract.SettingRepository
}
