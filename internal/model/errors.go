package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when an operation targets an id that does not exist.
var ErrNotFound = errors.New("not found")

// FieldError is a single violated field and the reason.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors lists every violated field of a candidate.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, f := range fe {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return strings.Join(parts, "; ")
}

// Has reports whether field already carries an error.
func (fe FieldErrors) Has(field string) bool {
	for _, f := range fe {
		if f.Field == field {
			return true
		}
	}
	return false
}

// ValidationError represents a rejected candidate.
type ValidationError struct {
	Fields FieldErrors
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Fields.Error())
}

// NewValidationError creates a new validation error
func NewValidationError(fields FieldErrors) ValidationError {
	return ValidationError{Fields: fields}
}

// IsValidationError checks if an error is a validation error (including wrapped errors)
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// AsValidationError extracts the field errors carried by err, if any.
func AsValidationError(err error) (FieldErrors, bool) {
	var ve ValidationError
	if errors.As(err, &ve) {
		return ve.Fields, true
	}
	return nil, false
}
