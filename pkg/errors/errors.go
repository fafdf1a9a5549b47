package errors

import (
	"fmt"

	"github.com/vishaldhakal/nisimatsuya-sub001/internal/domain"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation is returned when checkout form validation fails.
// Fields maps a field name to its user-facing error message.
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrConflict is returned when a conflicting operation is attempted
// (e.g., submitting while a submission is already in flight)
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "conflict"
}

// ErrSubmissionFailed is returned when the order API rejects a submission
// or the request fails in transit. Never retried automatically.
type ErrSubmissionFailed struct {
	StatusCode int
	Err        error
}

func (e *ErrSubmissionFailed) Error() string {
	return "order submission failed"
}

func (e *ErrSubmissionFailed) Unwrap() error {
	return e.Err
}

// ErrInvalidStateTransition is returned when an invalid checkout state transition is attempted
type ErrInvalidStateTransition struct {
	From domain.CheckoutState
	To   domain.CheckoutState
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}
