package domain

import "time"

// SupportTicket is the aggregate for support requests.
//
// Severity and Status are free-form strings rather than enumerations: the
// set of labels in use is an operational concern, and only the closed-state
// labels carry behavior (see service.TicketService).
type SupportTicket struct {
	ID             int64
	Subject        string
	RequesterEmail string
	Description    *string
	Severity       string
	Status         string
	OpenedAt       time.Time
	ClosedAt       *time.Time
	AssignedTo     *string
}

// Closed reports whether the ticket currently carries a close timestamp.
func (t *SupportTicket) Closed() bool {
	return t.ClosedAt != nil
}
