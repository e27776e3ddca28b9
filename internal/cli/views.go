package cli

import (
	"strconv"
	"time"

	"github.com/ticketkit/ticket-store/internal/domain"
	"github.com/ticketkit/ticket-store/internal/observability"
)

// View is anything a command can print. Structured formats encode the view
// itself; the text format renders Headers and Rows as a table.
type View interface {
	Headers() []string
	Rows() [][]string
}

// TicketView is the printable form of a ticket.
type TicketView struct {
	ID          uint64        `json:"id" yaml:"id"`
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description" yaml:"description"`
	Status      domain.Status `json:"status" yaml:"status"`
	CreatedAt   time.Time     `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" yaml:"updated_at"`
}

var ticketHeaders = []string{"ID", "TITLE", "STATUS", "CREATED", "UPDATED", "DESCRIPTION"}

func ticketView(ticket domain.Ticket) TicketView {
	return TicketView{
		ID:          uint64(ticket.ID()),
		Title:       ticket.Title().String(),
		Description: ticket.Description().String(),
		Status:      ticket.Status(),
		CreatedAt:   ticket.CreatedAt(),
		UpdatedAt:   ticket.UpdatedAt(),
	}
}

func (v TicketView) Headers() []string { return ticketHeaders }

func (v TicketView) Rows() [][]string { return [][]string{v.row()} }

func (v TicketView) row() []string {
	return []string{
		strconv.FormatUint(v.ID, 10),
		v.Title,
		v.Status.String(),
		v.CreatedAt.Format(time.RFC3339Nano),
		v.UpdatedAt.Format(time.RFC3339Nano),
		preview(v.Description, 40),
	}
}

// TicketListView is the printable form of a list of tickets.
type TicketListView []TicketView

func ticketListView(tickets []domain.Ticket) TicketListView {
	views := make(TicketListView, 0, len(tickets))
	for _, ticket := range tickets {
		views = append(views, ticketView(ticket))
	}
	return views
}

func (v TicketListView) Headers() []string { return ticketHeaders }

func (v TicketListView) Rows() [][]string {
	rows := make([][]string, 0, len(v))
	for _, ticket := range v {
		rows = append(rows, ticket.row())
	}
	return rows
}

// DeletedTicketView pairs the removed ticket with its deletion time.
type DeletedTicketView struct {
	Ticket    TicketView `json:"ticket" yaml:"ticket"`
	DeletedAt time.Time  `json:"deleted_at" yaml:"deleted_at"`
}

func deletedTicketView(deleted domain.DeletedTicket) DeletedTicketView {
	return DeletedTicketView{Ticket: ticketView(deleted.Ticket()), DeletedAt: deleted.DeletedAt()}
}

func (v DeletedTicketView) Headers() []string {
	return []string{"ID", "TITLE", "FINAL STATUS", "DELETED"}
}

func (v DeletedTicketView) Rows() [][]string {
	return [][]string{{
		strconv.FormatUint(v.Ticket.ID, 10),
		v.Ticket.Title,
		v.Ticket.Status.String(),
		v.DeletedAt.Format(time.RFC3339Nano),
	}}
}

// CountersView prints a metrics snapshot.
type CountersView []observability.Counter

func (v CountersView) Headers() []string { return []string{"COUNTER", "VALUE"} }

func (v CountersView) Rows() [][]string {
	rows := make([][]string, 0, len(v))
	for _, counter := range v {
		rows = append(rows, []string{counter.Name, strconv.FormatInt(counter.Value, 10)})
	}
	return rows
}

func preview(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
