// Package service contains the business logic for the POS backend.
package service

import "errors"

// ErrInvalidGoogleToken covers every Google verification failure:
// transport errors, timeouts, malformed bodies and semantic rejection
// all collapse into this one outcome.
var ErrInvalidGoogleToken = errors.New("invalid google id token")

// ValidationError is a client-correctable failure carrying field-keyed
// messages, rendered as a 422 response by the handler layer.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	for field, messages := range e.Fields {
		if len(messages) > 0 {
			return field + ": " + messages[0]
		}
	}
	return "validation failed"
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}
