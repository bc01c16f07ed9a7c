// Package library owns the study-material data model and its persistence.
//
// A Material bundles one ingested document's generated summary, its quiz
// bank, and the append-only history of quiz attempts. The whole collection is
// serialized as one JSON blob under a single namespaced key in the storage
// port, newest material first.
//
// Store handles the blob: loading, saving, and the load-time migration that
// assigns identifiers to questions persisted before questions carried ids.
// The migration writes back synchronously, so a second load observes a fully
// migrated collection and changes nothing.
//
// Repository layers the CRUD surface on top. Every mutation updates the
// in-memory collection and then persists; write failures are logged rather
// than surfaced, leaving the in-memory state authoritative for the running
// process. All returned values are deep copies, so callers never alias
// repository state.
package library
