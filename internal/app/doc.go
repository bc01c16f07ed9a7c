// Package app is the application controller: the mode state machine that sits
// between the user-facing surface and the library, quiz, extraction, and
// generation components.
//
// The controller enforces the navigation graph (upload, loading, dashboard,
// quiz, results), owns at most one in-flight generation and at most one
// active quiz session, and tags every upload pipeline with an epoch so a
// result that arrives after the user navigated away is discarded instead of
// mutating state the user no longer expects.
package app
