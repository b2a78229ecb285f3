package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
