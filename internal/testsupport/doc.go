// Package testsupport provides shared helpers for package tests: temp-dir
// seeded configs, in-memory repositories, SQLite stores with registered
// cleanup, and PATH-stubbed external binaries.
package testsupport
