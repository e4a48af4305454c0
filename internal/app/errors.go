package service

import "errors"

var (
	// ErrNoStore is returned by Start when no datastore was configured.
	ErrNoStore = errors.New("no datastore configured")

	// ErrInvalidCriteria is returned when a criteria replacement fails
	// validation.
	ErrInvalidCriteria = errors.New("invalid criteria")
)
