package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ticketkit/ticket-store/internal/clock"
	"github.com/ticketkit/ticket-store/internal/domain"
	"github.com/ticketkit/ticket-store/internal/events"
	"github.com/ticketkit/ticket-store/internal/observability"
	"github.com/ticketkit/ticket-store/internal/store"
	apperrors "github.com/ticketkit/ticket-store/pkg/util"
)

// TicketService serializes access to a TicketStore and turns raw input into
// validated drafts and patches.
type TicketService struct {
	mu         sync.Mutex
	store      *store.TicketStore
	clock      clock.Clock
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	Store      *store.TicketStore
	Clock      clock.Clock
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// TicketCreateInput describes ticket creation input.
type TicketCreateInput struct {
	Title       string
	Description string
}

// TicketUpdateInput describes a partial update. Nil fields are left unchanged.
type TicketUpdateInput struct {
	Title       *string
	Description *string
	Status      *string
}

// NewTicketService constructs the service. Missing dependencies get defaults.
func NewTicketService(deps TicketDependencies) *TicketService {
	svc := &TicketService{
		store:      deps.Store,
		clock:      deps.Clock,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
	}
	if svc.clock == nil {
		svc.clock = clock.NewSystem()
	}
	if svc.store == nil {
		svc.store = store.New(store.WithClock(svc.clock))
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}
	return svc
}

// CreateTicket validates input and saves a new ticket.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (domain.Ticket, error) {
	draft, err := buildDraft(input)
	if err != nil {
		s.metrics.RecordOperation("create", observability.OutcomeInvalid)
		return domain.Ticket{}, err
	}

	s.mu.Lock()
	id := s.store.Save(draft)
	ticket, _ := s.store.Get(id)
	stored := s.store.Len()
	s.mu.Unlock()

	s.metrics.RecordOperation("create", observability.OutcomeOK)
	s.logger.Info("ticket created",
		zap.Uint64("ticket_id", uint64(id)),
		zap.String("title", ticket.Title().String()),
		zap.Int("stored", stored))
	s.publishEvent(ctx, events.EventTicketCreated, id, ticket.CreatedAt(), events.TicketCreatedPayload{
		Title:  ticket.Title().String(),
		Status: ticket.Status(),
	})
	return ticket, nil
}

// GetTicket returns the ticket stored under id.
func (s *TicketService) GetTicket(_ context.Context, id domain.TicketID) (domain.Ticket, error) {
	s.mu.Lock()
	ticket, ok := s.store.Get(id)
	s.mu.Unlock()

	if !ok {
		s.metrics.RecordOperation("get", observability.OutcomeNotFound)
		return domain.Ticket{}, notFound(id)
	}
	s.metrics.RecordOperation("get", observability.OutcomeOK)
	return ticket, nil
}

// ListTickets returns every stored ticket ordered by id.
func (s *TicketService) ListTickets(_ context.Context) []domain.Ticket {
	s.mu.Lock()
	tickets := s.store.List()
	s.mu.Unlock()

	s.metrics.RecordOperation("list", observability.OutcomeOK)
	return tickets
}

// UpdateTicket validates input and applies it as a patch.
func (s *TicketService) UpdateTicket(ctx context.Context, id domain.TicketID, input TicketUpdateInput) (domain.Ticket, error) {
	patch, fields, err := buildPatch(input)
	if err != nil {
		s.metrics.RecordOperation("update", observability.OutcomeInvalid)
		return domain.Ticket{}, err
	}

	s.mu.Lock()
	before, _ := s.store.Get(id)
	ticket, ok := s.store.Update(id, patch)
	s.mu.Unlock()

	if !ok {
		s.metrics.RecordOperation("update", observability.OutcomeNotFound)
		return domain.Ticket{}, notFound(id)
	}
	s.metrics.RecordOperation("update", observability.OutcomeOK)
	if patch.IsEmpty() {
		s.logger.Info("ticket touched by empty patch", zap.Uint64("ticket_id", uint64(id)))
	} else {
		s.logger.Info("ticket updated", zap.Uint64("ticket_id", uint64(id)), zap.Strings("fields", fields))
	}
	s.publishEvent(ctx, events.EventTicketUpdated, id, ticket.UpdatedAt(), events.TicketUpdatedPayload{
		Fields:    fields,
		OldStatus: before.Status(),
		NewStatus: ticket.Status(),
	})
	return ticket, nil
}

// DeleteTicket removes the ticket stored under id.
func (s *TicketService) DeleteTicket(ctx context.Context, id domain.TicketID) (domain.DeletedTicket, error) {
	s.mu.Lock()
	deleted, ok := s.store.Delete(id)
	s.mu.Unlock()

	if !ok {
		s.metrics.RecordOperation("delete", observability.OutcomeNotFound)
		return domain.DeletedTicket{}, notFound(id)
	}
	s.metrics.RecordOperation("delete", observability.OutcomeOK)
	s.logger.Info("ticket deleted", zap.Uint64("ticket_id", uint64(id)))
	s.publishEvent(ctx, events.EventTicketDeleted, id, deleted.DeletedAt(), events.TicketDeletedPayload{
		Title:       deleted.Ticket().Title().String(),
		FinalStatus: deleted.Ticket().Status(),
	})
	return deleted, nil
}

// Metrics exposes the service counters.
func (s *TicketService) Metrics() *observability.Metrics {
	return s.metrics
}

// publishEvent stamps the event with at, the time recorded on the ticket itself.
func (s *TicketService) publishEvent(ctx context.Context, eventType events.EventType, id domain.TicketID, at time.Time, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	event := events.NewEvent(eventType, id, at, payload)
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(eventType)),
			zap.Error(err))
	}
}

func buildDraft(input TicketCreateInput) (domain.TicketDraft, error) {
	title, err := domain.NewTicketTitle(input.Title)
	if err != nil {
		return domain.TicketDraft{}, apperrors.WrapValidation("title", err)
	}
	description, err := domain.NewTicketDescription(input.Description)
	if err != nil {
		return domain.TicketDraft{}, apperrors.WrapValidation("description", err)
	}
	return domain.TicketDraft{Title: title, Description: description}, nil
}

func buildPatch(input TicketUpdateInput) (domain.TicketPatch, []string, error) {
	var patch domain.TicketPatch
	fields := []string{}
	if input.Title != nil {
		title, err := domain.NewTicketTitle(*input.Title)
		if err != nil {
			return patch, nil, apperrors.WrapValidation("title", err)
		}
		patch.Title = domain.Some(title)
		fields = append(fields, "title")
	}
	if input.Description != nil {
		description, err := domain.NewTicketDescription(*input.Description)
		if err != nil {
			return patch, nil, apperrors.WrapValidation("description", err)
		}
		patch.Description = domain.Some(description)
		fields = append(fields, "description")
	}
	if input.Status != nil {
		status, err := domain.ParseStatus(*input.Status)
		if err != nil {
			return patch, nil, apperrors.WrapValidation("status", err)
		}
		patch.Status = domain.Some(status)
		fields = append(fields, "status")
	}
	return patch, fields, nil
}

func notFound(id domain.TicketID) error {
	return apperrors.NewNotFound("ticket", map[string]any{"id": uint64(id)})
}
