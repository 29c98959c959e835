package app

import "errors"

// ErrInvalidCredentials is the single failure every authentication problem
// collapses into; callers never learn which of role, email or password was
// wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError carries a message meant to be shown to the user inline at
// the form that caused it. Nothing is mutated when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is a user-facing validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
