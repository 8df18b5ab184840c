package db

import (
	"errors"
	"fmt"
)

// Error taxonomy for the borrow workflow. Controllers map these onto
// HTTP statuses; nothing below this layer swallows or retries them.
// Authorization is decided above this layer by the policy package, so
// there is no forbidden sentinel here.
var ErrNotFound = errors.New("not found")

// ValidationError rejects malformed input before any mutation, naming
// the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError rejects a transition whose state-machine precondition
// does not hold, reporting the state that blocked it.
type ConflictError struct {
	State  string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict (%s): %s", e.State, e.Reason)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
