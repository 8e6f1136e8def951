package testutil

import (
	"context"
	"testing"

	"github.com/nhle/geodev/internal/store"
)

// NewTestStore creates an in-memory SQLite store with all tables created.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLStore {
	t.Helper()

	s, err := store.OpenSQLite(context.Background(), store.MemoryPath)
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	if err := s.CreateTables(context.Background()); err != nil {
		t.Fatalf("creating tables: %v", err)
	}

	return s
}
