package domain

import "unicode/utf8"

const (
	MaxTitleLength       = 50
	MaxDescriptionLength = 3000
)

// TicketTitle is a non-empty title of at most MaxTitleLength characters.
type TicketTitle struct {
	value string
}

// NewTicketTitle validates title and wraps it.
func NewTicketTitle(title string) (TicketTitle, error) {
	if title == "" {
		return TicketTitle{}, newValidationError("Title cannot be empty!")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return TicketTitle{}, newValidationError("A title cannot be longer than 50 characters!")
	}
	return TicketTitle{value: title}, nil
}

func (t TicketTitle) String() string {
	return t.value
}

// TicketDescription is a description of at most MaxDescriptionLength characters.
// The empty description is valid.
type TicketDescription struct {
	value string
}

// NewTicketDescription validates description and wraps it.
func NewTicketDescription(description string) (TicketDescription, error) {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return TicketDescription{}, newValidationError("A description cannot be longer than 3000 characters!")
	}
	return TicketDescription{value: description}, nil
}

func (d TicketDescription) String() string {
	return d.value
}
