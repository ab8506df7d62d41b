// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"postboard/internal/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLiteDB returns a migrated in-memory database with foreign keys enforced.
// Each call gets its own database; a single pooled connection keeps it alive for the test.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), database.GormConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
