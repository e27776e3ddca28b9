package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNewTicketTitle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "single character", input: "a"},
		{name: "fifty characters", input: strings.Repeat("x", 50)},
		{name: "fifty multibyte characters", input: strings.Repeat("é", 50)},
		{name: "empty", input: "", wantErr: "Title cannot be empty!"},
		{name: "fifty one characters", input: strings.Repeat("x", 51), wantErr: "A title cannot be longer than 50 characters!"},
		{name: "very long", input: strings.Repeat("x", 10_000), wantErr: "A title cannot be longer than 50 characters!"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			title, err := NewTicketTitle(tc.input)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if title.String() != tc.input {
					t.Fatalf("expected title %q, got %q", tc.input, title.String())
				}
				return
			}
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if validationErr.Message != tc.wantErr {
				t.Fatalf("expected message %q, got %q", tc.wantErr, validationErr.Message)
			}
		})
	}
}

func TestNewTicketDescription(t *testing.T) {
	t.Parallel()

	t.Run("empty is allowed", func(t *testing.T) {
		description, err := NewTicketDescription("")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if description.String() != "" {
			t.Fatalf("expected empty description, got %q", description.String())
		}
	})

	t.Run("three thousand characters", func(t *testing.T) {
		if _, err := NewTicketDescription(strings.Repeat("d", 3000)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("longer than three thousand characters", func(t *testing.T) {
		_, err := NewTicketDescription(strings.Repeat("d", 3001))
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	for status, name := range statusNames {
		parsed, err := ParseStatus(strings.ToUpper(name))
		if err != nil {
			t.Fatalf("parse %q: %v", name, err)
		}
		if parsed != status {
			t.Fatalf("expected %v, got %v", status, parsed)
		}
	}

	if _, err := ParseStatus("archived"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestStatusTextRoundTrip(t *testing.T) {
	t.Parallel()

	text, err := StatusBlocked.MarshalText()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var status Status
	if err := status.UnmarshalText(text); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if status != StatusBlocked {
		t.Fatalf("expected %v, got %v", StatusBlocked, status)
	}
}
