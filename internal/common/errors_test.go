package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationKindsWrapValidation(t *testing.T) {
	for _, err := range []error{
		ErrorMissingField,
		ErrorInvalidTimeRange,
		ErrorFieldTooLong,
		ErrorInvalidEmail,
		ErrorInvalidColor,
	} {
		assert.ErrorIs(t, err, ErrorValidation)
		assert.NotErrorIs(t, err, ErrorConstraintViolation)
	}
}

func TestConstraintKindsWrapConstraintViolation(t *testing.T) {
	for _, err := range []error{ErrorDuplicateEmail, ErrorDanglingReference} {
		assert.ErrorIs(t, err, ErrorConstraintViolation)
		assert.NotErrorIs(t, err, ErrorValidation)
	}
}

func TestFieldError(t *testing.T) {
	err := fmt.Errorf("create event: %w", NewFieldError("title", ErrorMissingField))

	assert.ErrorIs(t, err, ErrorMissingField)
	assert.ErrorIs(t, err, ErrorValidation)

	var fe *FieldError
	if assert.True(t, errors.As(err, &fe)) {
		assert.Equal(t, "title", fe.Field)
	}
	assert.Equal(t, "create event: title: validation error: missing field", err.Error())
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	assert.Equal(t, []byte{0, 0, 0, 0, 0}, buf)

	WipeByteArray(nil)
}
