package wallet

import (
	"errors"
	"fmt"
)

// SigningError reports malformed key material or an unsupported algorithm.
// It indicates a caller configuration error, never a transient fault, so
// signing is not retried.
type SigningError struct {
	Message string
	Err     error
}

func (e *SigningError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("signing error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("signing error: %s", e.Message)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

// NewSigningError creates a SigningError.
func NewSigningError(message string) *SigningError {
	return &SigningError{Message: message}
}

// WrapSigningError creates a SigningError wrapping an underlying cause.
func WrapSigningError(message string, err error) *SigningError {
	return &SigningError{Message: message, Err: err}
}

// IsSigningError checks whether an error is a SigningError and returns it.
func IsSigningError(err error) (*SigningError, bool) {
	var s *SigningError
	if errors.As(err, &s) {
		return s, true
	}
	return nil, false
}
