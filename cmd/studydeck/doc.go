// Package main hosts the studydeck CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into library
// mutations, quiz sessions, and configuration scaffolding. It centralizes
// configuration resolution, storage setup, and structured logging so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
