package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError is raised for an empty or out-of-range form field.
// It never reaches the gateway.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FileValidationError rejects an upload before extraction.
type FileValidationError struct {
	Reason  string
	Message string
}

func (e *FileValidationError) Error() string { return e.Message }

// GenerationError wraps a failed gateway call. Op names the feature that
// made the call, e.g. "generate career guidance".
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to %s", e.Op)
	}
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ParseError is returned when generated text cannot be turned into the
// typed result a feature promises.
type ParseError struct {
	What    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse %s: %s", e.What, e.Message)
}

func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func Generation(op string, err error) error {
	return &GenerationError{Op: op, Err: err}
}

// Status maps an error to the HTTP status and code used in error envelopes.
// Errors outside the taxonomy map to 500.
func Status(err error) (int, string) {
	var (
		ve *ValidationError
		fe *FileValidationError
		ge *GenerationError
		pe *ParseError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, "validation_error"
	case errors.As(err, &fe):
		return http.StatusBadRequest, "invalid_file"
	case errors.As(err, &pe):
		return http.StatusBadGateway, "parse_error"
	case errors.As(err, &ge):
		return http.StatusBadGateway, "generation_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
