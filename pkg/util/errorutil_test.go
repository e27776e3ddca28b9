package util

import (
	"errors"
	"testing"

	"github.com/ticketkit/ticket-store/internal/domain"
)

func TestToDomainError(t *testing.T) {
	t.Parallel()

	if ToDomainError(nil) != nil {
		t.Fatalf("expected nil for nil error")
	}

	_, titleErr := domain.NewTicketTitle("")

	cases := []struct {
		name     string
		err      error
		code     string
		exitCode int
	}{
		{name: "domain error passes through", err: NewNotFound("ticket", nil), code: "NOT_FOUND", exitCode: ExitNotFound},
		{name: "validation error", err: titleErr, code: "VALIDATION_FAILED", exitCode: ExitValidation},
		{name: "wrapped validation error", err: WrapValidation("title", titleErr), code: "VALIDATION_FAILED", exitCode: ExitValidation},
		{name: "unknown error", err: errors.New("boom"), code: "INTERNAL_ERROR", exitCode: ExitInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ToDomainError(tc.err)
			if got.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, got.Code)
			}
			if got.ExitCode != tc.exitCode {
				t.Fatalf("expected exit code %d, got %d", tc.exitCode, got.ExitCode)
			}
		})
	}
}

func TestWrapValidation(t *testing.T) {
	t.Parallel()

	_, err := domain.NewTicketDescription(string(make([]byte, 3001)))
	wrapped := ToDomainError(WrapValidation("description", err))

	if wrapped.Details["field"] != "description" {
		t.Fatalf("expected field detail, got %v", wrapped.Details)
	}
	if wrapped.Message != "A description cannot be longer than 3000 characters!" {
		t.Fatalf("unexpected message %q", wrapped.Message)
	}
	var validationErr *domain.ValidationError
	if !errors.As(wrapped, &validationErr) {
		t.Fatalf("expected wrapped error to unwrap to ValidationError")
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !IsNotFound(NewNotFound("ticket", map[string]any{"id": 1})) {
		t.Fatalf("expected NOT_FOUND to be detected")
	}
	if IsNotFound(NewValidationError("bad", nil)) {
		t.Fatalf("expected validation error not to be NOT_FOUND")
	}
}

func TestDomainErrorText(t *testing.T) {
	t.Parallel()

	_, err := domain.NewTicketTitle("")
	if got := WrapValidation("title", err).Error(); got != "Title cannot be empty!" {
		t.Fatalf("expected message once, got %q", got)
	}
	if got := NewInternalError(errors.New("disk on fire")).Error(); got != "internal error: disk on fire" {
		t.Fatalf("expected cause suffix, got %q", got)
	}
	if got := NewNotFound("ticket", nil).Error(); got != "ticket not found" {
		t.Fatalf("unexpected text %q", got)
	}
}
