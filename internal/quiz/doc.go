// Package quiz implements the session state machine for one quiz traversal.
//
// A session snapshots a material's question list at start, tracks reveal and
// answer state per question, and on advancing past the last question freezes
// an Attempt whose answers line up positionally with the snapshot. Scoring is
// derived from an attempt's answers and never persisted.
package quiz
