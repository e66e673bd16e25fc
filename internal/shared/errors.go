package shared

import "errors"

var (
	// ErrUnauthorized covers missing, invalid or expired tokens and bad credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates malformed or out of range input.
	ErrValidation = errors.New("validation failed")
	// ErrStoreUnavailable wraps failures of the persistence layer.
	ErrStoreUnavailable = errors.New("store unavailable")
)
