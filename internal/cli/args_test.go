package cli

import (
	"reflect"
	"testing"

	apperrors "github.com/ticketkit/ticket-store/pkg/util"
)

func TestSplitArgs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		line string
		want []string
	}{
		{line: "list", want: []string{"list"}},
		{line: "  get   1  ", want: []string{"get", "1"}},
		{line: `create --title "Fix bug" --description 'Null pointer on login'`, want: []string{"create", "--title", "Fix bug", "--description", "Null pointer on login"}},
		{line: `update 1 --description ""`, want: []string{"update", "1", "--description", ""}},
		{line: `create --title "say \"hi\""`, want: []string{"create", "--title", `say "hi"`}},
		{line: `create --title it\'s`, want: []string{"create", "--title", "it's"}},
	}

	for _, tc := range cases {
		got, err := splitArgs(tc.line)
		if err != nil {
			t.Fatalf("split %q: %v", tc.line, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("split %q: expected %q, got %q", tc.line, tc.want, got)
		}
	}
}

func TestSplitArgsEmptyLine(t *testing.T) {
	t.Parallel()

	got, err := splitArgs("   ")
	if err != nil {
		t.Fatalf("split blank line: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no words, got %q", got)
	}
}

func TestSplitArgsUnterminated(t *testing.T) {
	t.Parallel()

	for _, line := range []string{`create --title "open`, `create 'open`, `trailing\`} {
		_, err := splitArgs(line)
		if domainErr := apperrors.ToDomainError(err); domainErr == nil || domainErr.Code != "VALIDATION_FAILED" {
			t.Fatalf("expected VALIDATION_FAILED for %q, got %v", line, err)
		}
	}
}
