// Package repository implements rating stores for committed replays.
package repository

import "errors"

// Sentinel kinds for rating store errors.
var (
	// ErrNoSnapshot is returned when reading before any replay committed.
	ErrNoSnapshot = errors.New("no committed snapshot")
	// ErrNilResult is returned when a nil replay result is committed.
	ErrNilResult = errors.New("nil replay result")
)
