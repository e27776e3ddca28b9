package domain

import "strings"

// Status enumerates workflow states for tickets.
type Status int

const (
	StatusToDo Status = iota
	StatusInProgress
	StatusBlocked
	StatusDone
)

var statusNames = map[Status]string{
	StatusToDo:       "todo",
	StatusInProgress: "in-progress",
	StatusBlocked:    "blocked",
	StatusDone:       "done",
}

// ParseStatus accepts the text form of a status, case-insensitively.
func ParseStatus(raw string) (Status, error) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	for status, name := range statusNames {
		if name == needle {
			return status, nil
		}
	}
	return StatusToDo, newValidationError("Unknown status: " + raw)
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
