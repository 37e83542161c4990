package dto

import (
	"time"

	"github.com/opscore/helpdesk-api/internal/domain"
)

// TicketRequest is the create/replace payload. OpenedAt and ClosedAt are
// never accepted from the caller; the ID is only meaningful on replace.
type TicketRequest struct {
	ID             int64   `json:"id"`
	Subject        string  `json:"subject"`
	RequesterEmail string  `json:"requesterEmail"`
	Description    *string `json:"description"`
	Severity       string  `json:"severity"`
	Status         string  `json:"status"`
	AssignedTo     *string `json:"assignedTo"`
}

// TicketResponse is the wire representation of a ticket.
type TicketResponse struct {
	ID             int64      `json:"id"`
	Subject        string     `json:"subject"`
	RequesterEmail string     `json:"requesterEmail"`
	Description    *string    `json:"description"`
	Severity       string     `json:"severity"`
	Status         string     `json:"status"`
	OpenedAt       time.Time  `json:"openedAt"`
	ClosedAt       *time.Time `json:"closedAt"`
	AssignedTo     *string    `json:"assignedTo"`
}

// FromTicket maps a domain ticket onto the wire shape.
func FromTicket(ticket *domain.SupportTicket) TicketResponse {
	return TicketResponse{
		ID:             ticket.ID,
		Subject:        ticket.Subject,
		RequesterEmail: ticket.RequesterEmail,
		Description:    ticket.Description,
		Severity:       ticket.Severity,
		Status:         ticket.Status,
		OpenedAt:       ticket.OpenedAt,
		ClosedAt:       ticket.ClosedAt,
		AssignedTo:     ticket.AssignedTo,
	}
}

// FromTickets maps a slice of domain tickets onto the wire shape.
func FromTickets(tickets []domain.SupportTicket) []TicketResponse {
	items := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, FromTicket(&tickets[i]))
	}
	return items
}
