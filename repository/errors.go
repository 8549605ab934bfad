package repository

import "errors"

// Sentinel errors surfaced to controllers for status mapping.
var (
	// ErrNotFound covers missing rows and ownership mismatches: a caller
	// asking about someone else's row learns nothing beyond "not found".
	ErrNotFound = errors.New("not found")

	// ErrNoAgentAvailable aborts a finalize invocation before any mutation
	// is committed.
	ErrNoAgentAvailable = errors.New("no delivery agents available to assign route")

	// ErrInvalidTransition rejects a stop status update that skips or
	// reverses the pending → in_progress → completed/failed machine.
	ErrInvalidTransition = errors.New("invalid stop status transition")

	// ErrFinalized rejects mutations of cart lines that are already priced
	// and committed.
	ErrFinalized = errors.New("cannot modify items in a finalized order")
)
