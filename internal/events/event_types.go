package events

import "time"

// EventType identifies a ticket lifecycle notification.
type EventType string

const (
	EventTicketCreated       EventType = "ticket.created"
	EventTicketUpdated       EventType = "ticket.updated"
	EventTicketStatusChanged EventType = "ticket.status_changed"
	EventTicketAssigned      EventType = "ticket.assigned"
	EventTicketDeleted       EventType = "ticket.deleted"
)

// Event is the envelope published on ticket mutations.
type Event struct {
	ID        string
	Type      EventType
	TicketID  int64
	Timestamp time.Time
	Payload   any
}

// TicketCreatedPayload accompanies EventTicketCreated.
type TicketCreatedPayload struct {
	Subject        string
	RequesterEmail string
	Severity       string
	Status         string
}

// TicketStatusChangedPayload accompanies EventTicketStatusChanged.
type TicketStatusChangedPayload struct {
	OldStatus string
	NewStatus string
	Closed    bool
}

// TicketAssignedPayload accompanies EventTicketAssigned. Assignee is nil
// when the ticket was unassigned.
type TicketAssignedPayload struct {
	Assignee *string
}
