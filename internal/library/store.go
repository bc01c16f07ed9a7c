package library

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"studydeck/internal/identity"
	"studydeck/internal/storage"
)

// materialsKey is the single namespaced key the collection lives under.
const materialsKey = "studydeck/materials"

// Store persists the material collection as one JSON blob in a storage port
// and repairs legacy records during load.
type Store struct {
	port   storage.Port
	logger *slog.Logger
	newID  func() string
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithIDSource overrides the identifier source used by the migration.
func WithIDSource(newID func() string) StoreOption {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewStore constructs a Store over the given port.
func NewStore(port storage.Port, logger *slog.Logger, opts ...StoreOption) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	store := &Store{
		port:   port,
		logger: logger.With("component", "library-store"),
		newID:  identity.NewID,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Load reads the persisted collection. An absent key yields an empty
// collection. An unreadable blob yields ErrCorruptState; callers are expected
// to fall back to an empty collection and keep running.
//
// Records persisted before quiz questions carried identifiers are repaired in
// place: every question lacking an id gets a fresh one, and the repaired
// collection is written back before Load returns. Repeated loads therefore
// converge after one pass and never reassign an existing id. A failed
// write-back is logged and the repaired in-memory collection is still
// returned; the next save retries the full overwrite anyway.
func (s *Store) Load(ctx context.Context) ([]Material, error) {
	blob, ok, err := s.port.Get(ctx, materialsKey)
	if err != nil {
		return nil, fmt.Errorf("load materials: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var materials []Material
	if err := json.Unmarshal(blob, &materials); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	if migrated := s.migrate(materials); migrated > 0 {
		s.logger.Info("assigned ids to legacy quiz questions", "count", migrated)
		if err := s.Save(ctx, materials); err != nil {
			s.logger.Error("write back migrated materials", "error", err)
		}
	}

	return materials, nil
}

// migrate assigns ids to questions lacking one and reports how many were
// repaired. All other fields pass through unchanged; the migration scope is
// intentionally minimal.
func (s *Store) migrate(materials []Material) int {
	migrated := 0
	for i := range materials {
		for j := range materials[i].Quiz {
			if strings.TrimSpace(materials[i].Quiz[j].ID) == "" {
				materials[i].Quiz[j].ID = s.newID()
				migrated++
			}
		}
	}
	return migrated
}

// Save serializes the collection and overwrites the namespace key. Saving an
// empty collection is valid and distinct from never having initialized.
func (s *Store) Save(ctx context.Context, materials []Material) error {
	if materials == nil {
		materials = []Material{}
	}
	blob, err := json.Marshal(materials)
	if err != nil {
		return fmt.Errorf("encode materials: %w", err)
	}
	if err := s.port.Set(ctx, materialsKey, blob); err != nil {
		return fmt.Errorf("save materials: %w", err)
	}
	return nil
}
