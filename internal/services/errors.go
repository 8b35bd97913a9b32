package services

import (
	"errors"
	"fmt"
)

// Error variables shared across services.
var (
	ErrUserAlreadyExists  = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError reports a rejected input field. Missing user and wrong
// password are deliberately NOT validation errors; they collapse into
// ErrInvalidCredentials so the surface never reveals which one it was.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

func newRequiredFieldError(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "required"}
}
