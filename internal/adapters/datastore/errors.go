package datastore

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrNotFound marks a missing event, registration set or ordering document.
	ErrNotFound = errors.New("not found")

	// ErrInvalidShape marks upstream data that does not decode into the
	// expected document layout. Callers treat it as a hard stop.
	ErrInvalidShape = errors.New("invalid document shape")
)
