package domain

import "time"

// TicketID identifies a ticket inside a store. Assigned by the store, never reused.
type TicketID uint64

// TicketDraft is the validated input for creating a ticket.
type TicketDraft struct {
	Title       TicketTitle
	Description TicketDescription
}

// TicketPatch lists the editable fields of a ticket. Unset fields are left unchanged.
type TicketPatch struct {
	Title       Optional[TicketTitle]
	Description Optional[TicketDescription]
	Status      Optional[Status]
}

// IsEmpty reports whether the patch sets no field.
func (p TicketPatch) IsEmpty() bool {
	return !p.Title.IsSet() && !p.Description.IsSet() && !p.Status.IsSet()
}

// Ticket is a stored work item. Only the store changes its fields.
type Ticket struct {
	id          TicketID
	title       TicketTitle
	description TicketDescription
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

// NewTicket builds a freshly created ticket: status ToDo, created and updated at now.
func NewTicket(id TicketID, draft TicketDraft, now time.Time) Ticket {
	return Ticket{
		id:          id,
		title:       draft.Title,
		description: draft.Description,
		status:      StatusToDo,
		createdAt:   now,
		updatedAt:   now,
	}
}

func (t Ticket) ID() TicketID                   { return t.id }
func (t Ticket) Title() TicketTitle             { return t.title }
func (t Ticket) Description() TicketDescription { return t.description }
func (t Ticket) Status() Status                 { return t.status }
func (t Ticket) CreatedAt() time.Time           { return t.createdAt }
func (t Ticket) UpdatedAt() time.Time           { return t.updatedAt }

// Apply returns a copy of t with the set fields of patch written over it and
// updatedAt moved to now, whether or not any field was set.
func (t Ticket) Apply(patch TicketPatch, now time.Time) Ticket {
	if title, ok := patch.Title.Get(); ok {
		t.title = title
	}
	if description, ok := patch.Description.Get(); ok {
		t.description = description
	}
	if status, ok := patch.Status.Get(); ok {
		t.status = status
	}
	t.updatedAt = now
	return t
}

// Equal compares two tickets field by field, using time.Time.Equal for timestamps.
func (t Ticket) Equal(other Ticket) bool {
	return t.id == other.id &&
		t.title == other.title &&
		t.description == other.description &&
		t.status == other.status &&
		t.createdAt.Equal(other.createdAt) &&
		t.updatedAt.Equal(other.updatedAt)
}

// DeletedTicket is the final state of a removed ticket plus its deletion time.
type DeletedTicket struct {
	ticket    Ticket
	deletedAt time.Time
}

func NewDeletedTicket(ticket Ticket, deletedAt time.Time) DeletedTicket {
	return DeletedTicket{ticket: ticket, deletedAt: deletedAt}
}

func (d DeletedTicket) Ticket() Ticket       { return d.ticket }
func (d DeletedTicket) DeletedAt() time.Time { return d.deletedAt }
