package engine

import "errors"

// Sentinel error kinds for this package.
var (
	// ErrReplayInProgress is returned when a replay is started while
	// another one is running.
	ErrReplayInProgress = errors.New("replay already in progress")
	// ErrCommit wraps rating store failures; these are fatal for the
	// replay, no partial snapshot is valid.
	ErrCommit = errors.New("commit failed")

	// errNoTeam marks matches without a resolvable team identity. Such
	// matches are skipped silently, without audit rows.
	errNoTeam = errors.New("missing team identity")
)
