package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ticketkit/ticket-store/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated EventType = "ticket_created"
	EventTicketUpdated EventType = "ticket_updated"
	EventTicketDeleted EventType = "ticket_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string          `json:"id" cbor:"id"`
	Type      EventType       `json:"type" cbor:"type"`
	TicketID  domain.TicketID `json:"ticket_id" cbor:"ticket_id"`
	Timestamp time.Time       `json:"timestamp" cbor:"timestamp"`
	Payload   interface{}     `json:"payload" cbor:"payload"`
}

// NewEvent stamps an event with a fresh ID.
func NewEvent(eventType EventType, ticketID domain.TicketID, at time.Time, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TicketID:  ticketID,
		Timestamp: at,
		Payload:   payload,
	}
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title  string        `json:"title" cbor:"title"`
	Status domain.Status `json:"status" cbor:"status"`
}

// TicketUpdatedPayload lists the fields written by the patch.
type TicketUpdatedPayload struct {
	Fields    []string      `json:"fields" cbor:"fields"`
	OldStatus domain.Status `json:"old_status" cbor:"old_status"`
	NewStatus domain.Status `json:"new_status" cbor:"new_status"`
}

// TicketDeletedPayload payload.
type TicketDeletedPayload struct {
	Title       string        `json:"title" cbor:"title"`
	FinalStatus domain.Status `json:"final_status" cbor:"final_status"`
}
