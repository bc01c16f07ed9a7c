package library

import "errors"

// ErrCorruptState indicates the persisted blob could not be deserialized.
// Callers degrade to an empty collection rather than crash; the broken blob
// is overwritten on the next save.
var ErrCorruptState = errors.New("library: persisted state is corrupt")

// ErrValidation indicates a required text field was empty after trimming.
var ErrValidation = errors.New("library: validation failed")
