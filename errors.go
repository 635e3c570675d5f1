package studio

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a brief or request failed validation.
	ErrValidation = errors.New("validation error")

	// ErrRunClosed indicates Next was called on a run after Close.
	ErrRunClosed = errors.New("run closed")
)
