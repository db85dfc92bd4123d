package contract

import (
	"context"

	"ai-knowledgebase-be/internal/entity"
)

type SettingRepository interface {
	// Set upserts a key; whole-value overwrite semantics.
	Set(ctx context.Context, key string, value string) error
	Get(ctx context.Context, key string) (*entity.Setting, error)
}
