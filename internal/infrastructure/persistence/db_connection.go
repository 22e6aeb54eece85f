// Package persistence implements the sqlite-backed audit store.
package persistence

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/infrastructure/persistence/models"
	"github.com/ttwe77/Multiple-EncryptionDecryption-Tool/internal/pkg/config"
)

// NewDBConnection opens the sqlite audit database and migrates its schema.
// An empty path falls back to an in-memory database (used by tests).
func NewDBConnection(settings config.DatabaseSettings) (*gorm.DB, error) {
	path := settings.Path
	if path == "" {
		path = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
	}

	if err := db.AutoMigrate(&models.AuditRecordModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate audit schema: %w", err)
	}

	return db, nil
}

// CloseDB closes the database connection.
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}
