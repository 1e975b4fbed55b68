package domain

import (
	"errors"
	"strings"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("no token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("access forbidden")
)

// ValidationError lists the request fields that failed validation.
type ValidationError struct {
	Fields  []string
	Message string
}

// NewValidationError builds a ValidationError for the given fields.
func NewValidationError(msg string, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Message: msg}
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
