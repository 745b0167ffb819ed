package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrDuplicateReview = errors.New("review already exists for this restaurant")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidPeriod   = fmt.Errorf("%w: unknown period", ErrInvalidInput)
)

// ValidationError reports a rejected request field. It matches ErrInvalidInput.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

func Invalid(field, msg string) error { return &ValidationError{Field: field, Message: msg} }
