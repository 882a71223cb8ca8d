// Package apperr defines the error kinds shared by services and handlers.
// Callers wrap a kind with fmt.Errorf("%w: detail", ...) and match it
// with errors.Is.
package apperr

import "errors"

var (
	// ErrValidation covers malformed or missing client input.
	ErrValidation = errors.New("invalid request")

	// ErrNotFound covers absent games and players.
	ErrNotFound = errors.New("not found")

	// ErrNotAuthorized covers host-token mismatches. Host-gated actions
	// also return it for unknown games so a caller cannot probe which
	// game ids exist.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrInvalidState covers actions attempted in the wrong game status.
	ErrInvalidState = errors.New("invalid game state")

	// ErrPrecondition covers a reveal attempted before every player has
	// submitted, or with too few players.
	ErrPrecondition = errors.New("precondition failed")

	// ErrCodeExhausted is returned when code generation keeps colliding
	// with existing games after bounded retries.
	ErrCodeExhausted = errors.New("could not allocate a unique game code")

	// ErrStore wraps unexpected failures from the durable store.
	ErrStore = errors.New("store failure")
)
