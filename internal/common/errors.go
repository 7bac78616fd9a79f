// Package common defines shared constants and sentinel errors used across
// the store, its services and the console. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorForbidden    = errors.New("forbidden")
	ErrorUnauthorized = errors.New("invalid email or password")

	// Validation errors. Every kind wraps ErrorValidation.
	ErrorValidation       = errors.New("validation error")
	ErrorMissingField     = fmt.Errorf("%w: missing field", ErrorValidation)
	ErrorInvalidTimeRange = fmt.Errorf("%w: end time is before start time", ErrorValidation)
	ErrorFieldTooLong     = fmt.Errorf("%w: field too long", ErrorValidation)
	ErrorInvalidEmail     = fmt.Errorf("%w: invalid email", ErrorValidation)
	ErrorInvalidColor     = fmt.Errorf("%w: invalid color", ErrorValidation)

	// Constraint errors. Every kind wraps ErrorConstraintViolation.
	ErrorConstraintViolation = errors.New("constraint violation")
	ErrorDuplicateEmail      = fmt.Errorf("%w: duplicate email", ErrorConstraintViolation)
	ErrorDanglingReference   = fmt.Errorf("%w: dangling reference", ErrorConstraintViolation)

	// Auth errors (invalid or malformed token).
	ErrorInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)

// FieldError reports which field of an entity failed validation.
// Err is one of the validation sentinels above.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError is a shorthand for &FieldError{Field: field, Err: err}.
func NewFieldError(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}
