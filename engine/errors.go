// Copyright (c) 2025 Adam Velwood.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"errors"
	"fmt"
)

// Error taxonomy for engine operations. Every failure returned by the
// engine wraps one of these sentinels or is a *ValidationError, so the
// transport layer can map outcomes without string matching.
var (
	// ErrConflict indicates a duplicate (idea, judge) pairing, an illegal
	// lifecycle transition, or a mutation attempted on a locked record.
	ErrConflict = errors.New("conflict")

	// ErrCapacityExceeded indicates an idea or judge is at its limit.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrNotFound indicates a reference to a nonexistent idea, judge,
	// or assignment.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports malformed input, such as a rating vector of the
// wrong length or values out of range. It is always correctable by the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
