// Package store persists generated palettes in a durable, id-stable index.
package store

import "errors"

// Sentinel errors returned by the palette store. Callers match them with
// errors.Is.
var (
	// ErrNotFound is returned when no record exists for a requested id.
	ErrNotFound = errors.New("palette not found")

	// ErrIndexCorrupt is returned when the durable index cannot be parsed.
	// The store never repairs or overwrites a corrupt index; the file is
	// left in place for manual recovery.
	ErrIndexCorrupt = errors.New("palette index corrupt")
)
