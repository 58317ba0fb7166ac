package core

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks missing or malformed caller input.
	ErrValidation = errors.New("validation failed")
	// ErrNotConfigured marks a provider without the credentials it needs.
	ErrNotConfigured = errors.New("provider not configured")
	// ErrUnavailable marks a provider that could not be reached.
	ErrUnavailable = errors.New("provider unavailable")
	// ErrEmptyOutcome marks a provider that answered with nothing usable.
	ErrEmptyOutcome = errors.New("empty outcome")
	// ErrNotFound marks a missing catalog record.
	ErrNotFound = errors.New("not found")
	// ErrPersistence marks a store failure.
	ErrPersistence = errors.New("persistence failure")
)

// UpstreamError is a non-success answer from a remote service.
type UpstreamError struct {
	Service string
	Status  int
	Body    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: http %d: %s", e.Service, e.Status, e.Body)
}
