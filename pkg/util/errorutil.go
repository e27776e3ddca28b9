package util

import (
	"errors"
	"fmt"

	"github.com/ticketkit/ticket-store/internal/domain"
)

// Exit codes reported by the CLI for each error class.
const (
	ExitOK         = 0
	ExitInternal   = 1
	ExitValidation = 2
	ExitNotFound   = 3
)

// DomainError standardizes application errors.
type DomainError struct {
	Code     string
	Message  string
	ExitCode int
	Details  map[string]any
	Err      error
}

func (e *DomainError) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, exitCode int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, ExitCode: exitCode, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, ExitValidation, details)
}

// WrapValidation turns a domain.ValidationError into a VALIDATION_FAILED error
// that names the offending field.
func WrapValidation(field string, err error) error {
	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		return NewInternalError(err)
	}
	return &DomainError{
		Code:     "VALIDATION_FAILED",
		Message:  validationErr.Message,
		ExitCode: ExitValidation,
		Details:  map[string]any{"field": field},
		Err:      validationErr,
	}
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:     "NOT_FOUND",
		Message:  fmt.Sprintf("%s not found", resource),
		ExitCode: ExitNotFound,
		Details:  details,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:     "INTERNAL_ERROR",
		Message:  "internal error",
		ExitCode: ExitInternal,
		Err:      err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return &DomainError{
			Code:     "VALIDATION_FAILED",
			Message:  validationErr.Message,
			ExitCode: ExitValidation,
			Err:      validationErr,
		}
	}
	return &DomainError{
		Code:     "INTERNAL_ERROR",
		Message:  "internal error",
		ExitCode: ExitInternal,
		Err:      err,
	}
}

// IsNotFound reports whether err is a NOT_FOUND DomainError.
func IsNotFound(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == "NOT_FOUND"
}
