package testsupport

import (
	"context"
	"testing"

	"studydeck/internal/library"
	"studydeck/internal/logging"
	"studydeck/internal/storage"
)

// NewRepository opens a material repository over an in-memory port.
func NewRepository(t testing.TB) *library.Repository {
	t.Helper()

	store := library.NewStore(storage.NewMemory(), logging.Nop())
	repo, err := library.OpenRepository(context.Background(), store, logging.Nop())
	if err != nil {
		t.Fatalf("library.OpenRepository: %v", err)
	}
	return repo
}

// MustOpenStorage opens the SQLite key-value store for tests and registers
// cleanup.
func MustOpenStorage(t testing.TB, dir string) *storage.SQLite {
	t.Helper()

	store, err := storage.Open(dir)
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
