package cli

import (
	"github.com/google/shlex"

	apperrors "github.com/ticketkit/ticket-store/pkg/util"
)

// splitArgs breaks a command line into words using shell quoting rules.
func splitArgs(line string) ([]string, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return nil, apperrors.NewValidationError("malformed command line: "+err.Error(), map[string]any{"line": line})
	}
	return args, nil
}
