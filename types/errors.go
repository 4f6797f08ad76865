package types

import (
	"errors"
	"fmt"
)

// ValidationError reports a missing or malformed required field. It is
// raised before any serialization or hashing takes place, so a failed build
// leaves no partial state behind.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a ValidationError naming the offending field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks whether an error is a ValidationError and
// returns it.
func IsValidationError(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// EncodingError reports a value that cannot be represented in its declared
// type: a non-numeric string passed to a numeric encoder, invalid hex, an
// out-of-range magnitude, an unknown type or variant name.
type EncodingError struct {
	Type    string // the CLType or field being encoded, if known
	Message string
	Err     error
}

func (e *EncodingError) Error() string {
	msg := "encoding error"
	if e.Type != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Type)
	}
	msg = fmt.Sprintf("%s: %s", msg, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// NewEncodingError creates an EncodingError for the given type name.
func NewEncodingError(typeName, message string) *EncodingError {
	return &EncodingError{Type: typeName, Message: message}
}

// WrapEncodingError creates an EncodingError wrapping an underlying cause.
func WrapEncodingError(typeName, message string, err error) *EncodingError {
	return &EncodingError{Type: typeName, Message: message, Err: err}
}

// IsEncodingError checks whether an error is an EncodingError and returns it.
func IsEncodingError(err error) (*EncodingError, bool) {
	var e *EncodingError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
