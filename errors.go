package econstats

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a search request failed validation.
	ErrValidation = errors.New("validation error")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")

	// ErrSearchFailed indicates a query attempt exhausted both the
	// streaming path and the non-streaming fallback.
	ErrSearchFailed = errors.New("search failed")
)
