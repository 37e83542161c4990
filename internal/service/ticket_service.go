package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/opscore/helpdesk-api/internal/domain"
	"github.com/opscore/helpdesk-api/internal/events"
	"github.com/opscore/helpdesk-api/internal/repository"
	apperrors "github.com/opscore/helpdesk-api/pkg/util"
)

const (
	maxSubjectLen  = 200
	maxEmailLen    = 255
	maxSeverityLen = 50
	maxStatusLen   = 50
	maxAssigneeLen = 100
)

// TicketService applies normalization and lifecycle rules on ticket
// mutations and builds filtered queries for listing.
//
// The service holds no per-request state; the only process-wide state is
// the closed-state label set fixed at construction.
type TicketService struct {
	tickets      repository.TicketRepository
	closedStates map[string]struct{}
	dispatcher   events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	// ClosedStates are the status labels, matched case-insensitively,
	// that mark a ticket as closed.
	ClosedStates []string
	Dispatcher   events.Dispatcher
}

// TicketInput describes a full ticket payload for create and replace.
type TicketInput struct {
	ID             int64
	Subject        string
	RequesterEmail string
	Description    *string
	Severity       string
	Status         string
	AssignedTo     *string
}

// TicketListFilter describes listing filters. Blank values mean no filter.
type TicketListFilter struct {
	Status   string
	Severity string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	closed := make(map[string]struct{}, len(deps.ClosedStates))
	for _, label := range deps.ClosedStates {
		closed[strings.ToLower(label)] = struct{}{}
	}
	return &TicketService{
		tickets:      deps.TicketRepo,
		closedStates: closed,
		dispatcher:   deps.Dispatcher,
	}
}

// Create validates and persists a new ticket. The caller-supplied ID is
// ignored; OpenedAt is fixed at the current time and ClosedAt derived from
// the initial status.
func (s *TicketService) Create(ctx context.Context, input TicketInput) (*domain.SupportTicket, error) {
	if err := validateTicketInput(input); err != nil {
		return nil, err
	}

	ticket := &domain.SupportTicket{
		Subject:        strings.TrimSpace(input.Subject),
		RequesterEmail: strings.TrimSpace(input.RequesterEmail),
		Description:    input.Description,
		Severity:       strings.TrimSpace(input.Severity),
		Status:         strings.TrimSpace(input.Status),
		OpenedAt:       time.Now().UTC(),
		AssignedTo:     normalizeAssignee(input.AssignedTo),
	}
	ticket.ClosedAt = s.deriveClosedAt(nil, ticket.Status)

	if err := s.tickets.Insert(ctx, ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Subject:        ticket.Subject,
			RequesterEmail: ticket.RequesterEmail,
			Severity:       ticket.Severity,
			Status:         ticket.Status,
		},
	})
	return ticket, nil
}

// Replace overwrites every mutable field of an existing ticket. The body
// ID must match the target ID. OpenedAt is never altered; ClosedAt is
// re-derived against the ticket's currently stored value, not the input's.
func (s *TicketService) Replace(ctx context.Context, id int64, input TicketInput) (*domain.SupportTicket, error) {
	if input.ID != id {
		return nil, apperrors.NewIDMismatch("body id does not match route id")
	}
	if err := validateTicketInput(input); err != nil {
		return nil, err
	}

	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "ticket")
	}

	ticket.Subject = strings.TrimSpace(input.Subject)
	ticket.RequesterEmail = strings.TrimSpace(input.RequesterEmail)
	ticket.Description = input.Description
	ticket.Severity = strings.TrimSpace(input.Severity)
	ticket.Status = strings.TrimSpace(input.Status)
	ticket.AssignedTo = normalizeAssignee(input.AssignedTo)
	ticket.ClosedAt = s.deriveClosedAt(ticket.ClosedAt, ticket.Status)

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, mapStoreError(err, "ticket")
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
	})
	return ticket, nil
}

// PatchStatus sets only the status, re-deriving ClosedAt. An empty status
// is a valid, non-closed status; it is not treated as "leave unchanged".
func (s *TicketService) PatchStatus(ctx context.Context, id int64, status string) error {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return mapStoreError(err, "ticket")
	}

	oldStatus := ticket.Status
	ticket.Status = strings.TrimSpace(status)
	ticket.ClosedAt = s.deriveClosedAt(ticket.ClosedAt, ticket.Status)

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return mapStoreError(err, "ticket")
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: ticket.Status,
			Closed:    ticket.Closed(),
		},
	})
	return nil
}

// PatchAssignee sets only the assignee. A blank value unassigns the
// ticket. Status and ClosedAt are untouched.
func (s *TicketService) PatchAssignee(ctx context.Context, id int64, assignee string) error {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return mapStoreError(err, "ticket")
	}

	ticket.AssignedTo = normalizeAssignee(&assignee)

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return mapStoreError(err, "ticket")
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Payload:  events.TicketAssignedPayload{Assignee: ticket.AssignedTo},
	})
	return nil
}

// Delete removes the ticket.
func (s *TicketService) Delete(ctx context.Context, id int64) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		return mapStoreError(err, "ticket")
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: id,
	})
	return nil
}

// GetByID fetches a single ticket.
func (s *TicketService) GetByID(ctx context.Context, id int64) (*domain.SupportTicket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "ticket")
	}
	return ticket, nil
}

// List returns tickets matching the filter, most recently opened first.
// Filter values are trimmed and matched case-insensitively (exact match).
func (s *TicketService) List(ctx context.Context, filter TicketListFilter) ([]domain.SupportTicket, error) {
	repoFilter := repository.TicketFilter{}
	if v := strings.TrimSpace(filter.Status); v != "" {
		repoFilter.Status = &v
	}
	if v := strings.TrimSpace(filter.Severity); v != "" {
		repoFilter.Severity = &v
	}
	return s.tickets.List(ctx, repoFilter)
}

// deriveClosedAt resolves the close timestamp for a status. A closed-state
// status keeps an already-set timestamp rather than bumping it; any other
// status clears it unconditionally.
func (s *TicketService) deriveClosedAt(previous *time.Time, status string) *time.Time {
	if _, closed := s.closedStates[strings.ToLower(status)]; !closed {
		return nil
	}
	if previous != nil {
		return previous
	}
	now := time.Now().UTC()
	return &now
}

func validateTicketInput(input TicketInput) error {
	details := map[string]any{}

	// limits count characters, not bytes, to match the VARCHAR(n) columns
	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		details["subject"] = "required"
	} else if utf8.RuneCountInString(subject) > maxSubjectLen {
		details["subject"] = "must be at most 200 characters"
	}

	email := strings.TrimSpace(input.RequesterEmail)
	switch {
	case email == "":
		details["requesterEmail"] = "required"
	case utf8.RuneCountInString(email) > maxEmailLen:
		details["requesterEmail"] = "must be at most 255 characters"
	default:
		if _, err := mail.ParseAddress(email); err != nil {
			details["requesterEmail"] = "must be a valid email address"
		}
	}

	severity := strings.TrimSpace(input.Severity)
	if severity == "" {
		details["severity"] = "required"
	} else if utf8.RuneCountInString(severity) > maxSeverityLen {
		details["severity"] = "must be at most 50 characters"
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		details["status"] = "required"
	} else if utf8.RuneCountInString(status) > maxStatusLen {
		details["status"] = "must be at most 50 characters"
	}

	if input.AssignedTo != nil && utf8.RuneCountInString(strings.TrimSpace(*input.AssignedTo)) > maxAssigneeLen {
		details["assignedTo"] = "must be at most 100 characters"
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("ticket validation failed", details)
	}
	return nil
}

// normalizeAssignee collapses blank assignees to unset.
func normalizeAssignee(assignee *string) *string {
	if assignee == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*assignee)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func mapStoreError(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, nil)
	}
	return err
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
