package identity_test

import (
	"testing"

	"studydeck/internal/identity"
)

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := identity.NewID()
		if id == "" {
			t.Fatal("expected non-empty id")
		}
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}
