// Package storage defines the key-value persistence port backing the
// material library and its SQLite and in-memory implementations.
//
// The library serializes its whole collection under a single namespaced key,
// so the port surface is deliberately tiny: get, set, close. The SQLite
// implementation guards the database with an advisory file lock acquired at
// open, which makes the library's load, migrate, write-back sequence safe
// against a second CLI invocation racing the same database. The in-memory
// implementation exists for tests and never touches disk.
package storage
