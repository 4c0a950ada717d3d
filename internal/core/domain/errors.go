package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the ledger wraps exactly one of these.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrUnavailable     = errors.New("service unavailable")
)

var (
	ErrSlotNotFound    = fmt.Errorf("slot %w", ErrNotFound)
	ErrBookingNotFound = fmt.Errorf("booking %w", ErrNotFound)
	ErrHistoryNotFound = fmt.Errorf("booking history %w", ErrNotFound)
	ErrBillingNotFound = fmt.Errorf("billing %w", ErrNotFound)

	ErrSlotConflict      = fmt.Errorf("%w: slot is already booked", ErrConflict)
	ErrAlreadyBilled     = fmt.Errorf("%w: booking already has a billing", ErrConflict)
	ErrInvalidTransition = fmt.Errorf("%w: invalid booking status transition", ErrConflict)
	ErrBookingBilled     = fmt.Errorf("%w: booking has an active billing", ErrConflict)
	ErrBookingCancelled  = fmt.Errorf("%w: booking is cancelled", ErrConflict)

	ErrNotOwner  = fmt.Errorf("%w: booking belongs to another user", ErrForbidden)
	ErrAdminOnly = fmt.Errorf("%w: admin role required", ErrForbidden)
)

// ValidationError describes a malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func IsValidation(err error) bool      { return errors.Is(err, ErrValidation) }
func IsNotFound(err error) bool        { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool        { return errors.Is(err, ErrConflict) }
func IsForbidden(err error) bool       { return errors.Is(err, ErrForbidden) }
func IsUnauthenticated(err error) bool { return errors.Is(err, ErrUnauthenticated) }

// IsRetryable reports transient failures the caller's infrastructure may retry.
func IsRetryable(err error) bool { return errors.Is(err, ErrUnavailable) }
