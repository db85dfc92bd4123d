package main

import (
	"log"
	"os"
	"time"

	"ai-knowledgebase-be/internal/constant"
	"ai-knowledgebase-be/internal/model"
	"ai-knowledgebase-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting GORM migration...")

	// Extensions GORM AutoMigrate doesn't handle
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Yellow("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	color.Cyan("Step 1: Running AutoMigrate...")
	models := []interface{}{
		&model.Partition{},
		&model.Document{},
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.Setting{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Migration failed: %v", err)
		os.Exit(1)
	}

	color.Cyan("Step 2: Seeding system partitions...")
	if err := seedSystemPartitions(db); err != nil {
		color.Red("Seeding failed: %v", err)
		os.Exit(1)
	}

	color.Green("✅ Migration complete.")
}

// seedSystemPartitions makes sure the reserved "all" and "uncategorized"
// partitions exist with their fixed ids. Idempotent: reruns never duplicate
// or overwrite user edits.
func seedSystemPartitions(db *gorm.DB) error {
	now := time.Now()
	system := []model.Partition{
		{
			Id:        constant.PartitionAllId,
			Name:      constant.PartitionAllName,
			IsSystem:  true,
			CreatedAt: now,
		},
		{
			Id:        constant.PartitionUncategorizedId,
			Name:      constant.PartitionUncategorizedName,
			IsSystem:  true,
			CreatedAt: now,
		},
	}

	for _, p := range system {
		partition := p
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).Create(&partition).Error
		if err != nil {
			return err
		}
	}
	return nil
}
