package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports a single malformed input field. It is the only
// error kind the calculator produces: the caller surfaces it to the user,
// the input is corrected and the calculation re-attempted. No partial
// results accompany a ValidationError.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewValidationError creates a validation error for a named field.
func NewValidationError(field, code, message string) *ValidationError {
	return &ValidationError{Field: field, Code: code, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is (or wraps) a ValidationError
// and returns it if so.
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
