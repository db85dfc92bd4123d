package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByPartitionID restricts documents to one membership bucket.
type ByPartitionID struct {
	PartitionID uuid.UUID
}

func (s ByPartitionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("partition_id = ?", s.PartitionID)
}

// ByPartitionIDs restricts documents to a set of membership buckets.
// The virtual "all" partition must be expanded by the caller before this
// specification is applied; it never appears as a stored value.
type ByPartitionIDs struct {
	PartitionIDs []uuid.UUID
}

func (s ByPartitionIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("partition_id IN ?", s.PartitionIDs)
}

// ByStatus filters documents by lifecycle status.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByChatSessionID filters chat messages by session.
type ByChatSessionID struct {
	ChatSessionID uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionID)
}
