package store

import (
	"cmp"
	"slices"

	"github.com/ticketkit/ticket-store/internal/clock"
	"github.com/ticketkit/ticket-store/internal/domain"
)

// TicketStore keeps tickets in memory and hands out identities.
// It is not safe for concurrent use; callers serialize access.
type TicketStore struct {
	data      map[domain.TicketID]domain.Ticket
	currentID domain.TicketID
	clock     clock.Clock
}

// Option configures a TicketStore.
type Option func(*TicketStore)

// WithClock overrides the clock used for timestamps.
func WithClock(c clock.Clock) Option {
	return func(s *TicketStore) {
		if c != nil {
			s.clock = c
		}
	}
}

// New returns an empty store whose first identity will be 1.
func New(opts ...Option) *TicketStore {
	s := &TicketStore{
		data:  make(map[domain.TicketID]domain.Ticket),
		clock: clock.NewSystem(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save stores a new ticket built from draft and returns its identity.
func (s *TicketStore) Save(draft domain.TicketDraft) domain.TicketID {
	id := s.generateID()
	s.data[id] = domain.NewTicket(id, draft, s.clock.Now())
	return id
}

// Get returns the ticket stored under id.
func (s *TicketStore) Get(id domain.TicketID) (domain.Ticket, bool) {
	ticket, ok := s.data[id]
	return ticket, ok
}

// List returns every stored ticket ordered by identity.
func (s *TicketStore) List() []domain.Ticket {
	tickets := make([]domain.Ticket, 0, len(s.data))
	for _, ticket := range s.data {
		tickets = append(tickets, ticket)
	}
	slices.SortFunc(tickets, func(a, b domain.Ticket) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return tickets
}

// Len returns the number of stored tickets.
func (s *TicketStore) Len() int {
	return len(s.data)
}

// Update applies patch to the ticket stored under id and returns the result.
// updated_at moves forward even when the patch sets nothing.
func (s *TicketStore) Update(id domain.TicketID, patch domain.TicketPatch) (domain.Ticket, bool) {
	ticket, ok := s.data[id]
	if !ok {
		return domain.Ticket{}, false
	}
	ticket = ticket.Apply(patch, s.clock.Now())
	s.data[id] = ticket
	return ticket, true
}

// Delete removes the ticket stored under id. Its identity is never handed out again.
func (s *TicketStore) Delete(id domain.TicketID) (domain.DeletedTicket, bool) {
	ticket, ok := s.data[id]
	if !ok {
		return domain.DeletedTicket{}, false
	}
	delete(s.data, id)
	return domain.NewDeletedTicket(ticket, s.clock.Now()), true
}

func (s *TicketStore) generateID() domain.TicketID {
	s.currentID++
	return s.currentID
}
