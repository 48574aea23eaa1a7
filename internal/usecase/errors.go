package usecase

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrSelfDelete         = errors.New("you cannot delete your own account")
)

// ValidationError is a client input problem, reported as 400.
type ValidationError struct {
	Message string
	Errors  []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Errors, "; ")
}

func newValidationError(message string, details ...string) *ValidationError {
	return &ValidationError{Message: message, Errors: details}
}
