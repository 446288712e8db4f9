package domain

import "errors"

// Error taxonomy surfaced to clients. Session lookups that fail because the
// owner does not match report ErrNotFound, never a forbidden error, so that
// session ids cannot be enumerated.
var (
	// ErrInvalidReference means a supplied session or document id literal
	// could not be parsed.
	ErrInvalidReference = errors.New("invalid reference format")

	// ErrNotFound means the entity does not exist, is inactive, or is owned
	// by someone else.
	ErrNotFound = errors.New("not found")

	// ErrServiceUnavailable means the model call failed or timed out. The
	// user's message is already saved, so the request can be retried cheaply.
	ErrServiceUnavailable = errors.New("ai service unavailable")
)
