// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/fantabuste/envelope-server-go/internal/config"
	"github.com/fantabuste/envelope-server-go/internal/database"
)

// SetupTestDB opens a fresh in-memory SQLite database with the full schema.
// It is closed automatically when the test ends.
func SetupTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Connect(context.Background(), config.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	return db
}
