package helpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/ufoaiorg/ufoai-sub009/internal/infrastructure/database"
)

// NewTestDB creates a migrated SQLite in-memory database for testing
func NewTestDB(t *testing.T) *gorm.DB {
	db, err := database.NewTestConnection()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if t != nil {
		t.Cleanup(func() {
			database.Close(db)
		})
	}

	return db
}

// TruncateAllTables clears every campaign table between scenarios
func TruncateAllTables(db *gorm.DB) error {
	for _, table := range []string{"transactions", "production_orders", "bases", "campaigns"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
