// Package helpers provides shared test fixtures.
package helpers

import (
	"testing"

	"github.com/voxchat/backend/db"
	"github.com/voxchat/backend/store"
)

// NewTestStore opens an in-memory SQLite store with the schema applied.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	conn, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
	})

	return store.NewSQLiteStore(conn)
}
