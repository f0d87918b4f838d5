package domain

import "errors"

// Sentinel errors shared across services. Services wrap these with context
// using fmt.Errorf("...: %w", err); callers test with errors.Is.
var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the caller lacks the capability for an operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput is returned when a request fails business validation
	// (bad date range, negative price, blank name, and so on).
	ErrInvalidInput = errors.New("invalid input")
)
