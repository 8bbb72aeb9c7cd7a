package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// TransitionError reports a booking status change the state machine rejected.
type TransitionError struct {
	Current   BookingStatus
	Requested BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.Current, e.Requested)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
