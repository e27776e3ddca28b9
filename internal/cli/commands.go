package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/ticketkit/ticket-store/internal/domain"
	"github.com/ticketkit/ticket-store/internal/service"
	apperrors "github.com/ticketkit/ticket-store/pkg/util"
)

const helpText = `commands:
  create --title TITLE [--description TEXT]
  get ID
  list
  update ID [--title TITLE] [--description TEXT] [--status todo|in-progress|blocked|done]
  delete ID
  stats
  help
  quit | exit
`

type command func(ctx context.Context, s *Session, args []string) error

var commands = map[string]command{
	"create": runCreate,
	"get":    runGet,
	"list":   runList,
	"update": runUpdate,
	"delete": runDelete,
	"stats":  runStats,
	"help":   runHelp,
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(name string, fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return apperrors.NewValidationError(fmt.Sprintf("%s: %v", name, err), nil)
	}
	return nil
}

func parseID(name string, args []string) (domain.TicketID, error) {
	if len(args) != 1 {
		return 0, apperrors.NewValidationError(name+" expects exactly one ticket id", nil)
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidationError("invalid ticket id "+strconv.Quote(args[0]), nil)
	}
	return domain.TicketID(id), nil
}

func runCreate(ctx context.Context, s *Session, args []string) error {
	fs := newFlagSet("create")
	title := fs.StringP("title", "t", "", "ticket title")
	description := fs.StringP("description", "d", "", "ticket description")
	if err := parseFlags("create", fs, args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return apperrors.NewValidationError("create takes no positional arguments", nil)
	}

	ticket, err := s.service.CreateTicket(ctx, service.TicketCreateInput{
		Title:       *title,
		Description: *description,
	})
	if err != nil {
		return err
	}
	return s.render(ticketView(ticket))
}

func runGet(ctx context.Context, s *Session, args []string) error {
	id, err := parseID("get", args)
	if err != nil {
		return err
	}
	ticket, err := s.service.GetTicket(ctx, id)
	if err != nil {
		return err
	}
	return s.render(ticketView(ticket))
}

func runList(ctx context.Context, s *Session, args []string) error {
	if len(args) > 0 {
		return apperrors.NewValidationError("list takes no arguments", nil)
	}
	return s.render(ticketListView(s.service.ListTickets(ctx)))
}

// runUpdate maps flag presence onto the patch: a flag that is not given
// leaves the field unchanged, --description "" clears the description.
func runUpdate(ctx context.Context, s *Session, args []string) error {
	fs := newFlagSet("update")
	title := fs.StringP("title", "t", "", "new title")
	description := fs.StringP("description", "d", "", "new description")
	status := fs.StringP("status", "s", "", "new status")
	if err := parseFlags("update", fs, args); err != nil {
		return err
	}
	id, err := parseID("update", fs.Args())
	if err != nil {
		return err
	}

	var input service.TicketUpdateInput
	if fs.Changed("title") {
		input.Title = title
	}
	if fs.Changed("description") {
		input.Description = description
	}
	if fs.Changed("status") {
		input.Status = status
	}

	ticket, err := s.service.UpdateTicket(ctx, id, input)
	if err != nil {
		return err
	}
	return s.render(ticketView(ticket))
}

func runDelete(ctx context.Context, s *Session, args []string) error {
	id, err := parseID("delete", args)
	if err != nil {
		return err
	}
	deleted, err := s.service.DeleteTicket(ctx, id)
	if err != nil {
		return err
	}
	return s.render(deletedTicketView(deleted))
}

func runStats(_ context.Context, s *Session, _ []string) error {
	return s.render(CountersView(s.service.Metrics().Snapshot()))
}

func runHelp(_ context.Context, s *Session, _ []string) error {
	_, err := io.WriteString(s.out, helpText)
	return err
}
