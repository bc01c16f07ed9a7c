// Package identity produces the opaque identifiers attached to materials and
// quiz questions.
//
// Identifiers are random UUIDs, so they stay unique across processes and
// devices without coordination and are never recycled after a delete. No
// ordering semantics are implied; sort on createdAt instead.
package identity

import "github.com/google/uuid"

// NewID returns a fresh opaque identifier.
func NewID() string {
	return uuid.NewString()
}
