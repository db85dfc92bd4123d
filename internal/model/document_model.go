package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Document struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PartitionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Position    int            `gorm:"not null;index"`
	Name        string         `gorm:"type:varchar(255);not null"`
	Kind        string         `gorm:"type:varchar(16);not null"`
	Content     string         `gorm:"type:text"`
	SourceURL   *string        `gorm:"type:text"`
	SizeLabel   *string        `gorm:"type:varchar(32)"`
	Status      string         `gorm:"type:varchar(16);not null"`
	Summary     *string        `gorm:"type:varchar(64)"`
	Metadata    datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
