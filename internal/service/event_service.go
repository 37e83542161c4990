package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/opscore/helpdesk-api/internal/domain"
	"github.com/opscore/helpdesk-api/internal/repository"
	apperrors "github.com/opscore/helpdesk-api/pkg/util"
)

const (
	maxEventTitleLen    = 200
	maxEventLocationLen = 200
	maxEventNotesLen    = 1000
)

// EventService handles calendar event CRUD. Events carry no derived state;
// the service only validates and normalizes.
type EventService struct {
	events repository.EventRepository
}

// EventInput describes a full event payload for create and replace.
type EventInput struct {
	ID       int64
	Title    string
	Location string
	StartAt  time.Time
	EndAt    *time.Time
	IsOnline bool
	Notes    *string
}

// EventListFilter describes event listing filters.
type EventListFilter struct {
	From       *time.Time
	To         *time.Time
	Online     *bool
	SearchTerm string
}

// NewEventService constructs the service.
func NewEventService(repo repository.EventRepository) *EventService {
	return &EventService{events: repo}
}

// Create validates and persists a new event.
func (s *EventService) Create(ctx context.Context, input EventInput) (*domain.CalendarEvent, error) {
	if err := validateEventInput(input); err != nil {
		return nil, err
	}

	event := &domain.CalendarEvent{
		Title:    strings.TrimSpace(input.Title),
		Location: strings.TrimSpace(input.Location),
		StartAt:  input.StartAt,
		EndAt:    input.EndAt,
		IsOnline: input.IsOnline,
		Notes:    normalizeNotes(input.Notes),
	}

	if err := s.events.Insert(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Replace overwrites an existing event. The body ID must match the target.
func (s *EventService) Replace(ctx context.Context, id int64, input EventInput) (*domain.CalendarEvent, error) {
	if input.ID != id {
		return nil, apperrors.NewIDMismatch("body id does not match route id")
	}
	if err := validateEventInput(input); err != nil {
		return nil, err
	}

	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "event")
	}

	event.Title = strings.TrimSpace(input.Title)
	event.Location = strings.TrimSpace(input.Location)
	event.StartAt = input.StartAt
	event.EndAt = input.EndAt
	event.IsOnline = input.IsOnline
	event.Notes = normalizeNotes(input.Notes)

	if err := s.events.Update(ctx, event); err != nil {
		return nil, mapStoreError(err, "event")
	}
	return event, nil
}

// Delete removes the event.
func (s *EventService) Delete(ctx context.Context, id int64) error {
	if err := s.events.Delete(ctx, id); err != nil {
		return mapStoreError(err, "event")
	}
	return nil
}

// GetByID fetches a single event.
func (s *EventService) GetByID(ctx context.Context, id int64) (*domain.CalendarEvent, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "event")
	}
	return event, nil
}

// List returns events matching the filter, ordered by start time.
func (s *EventService) List(ctx context.Context, filter EventListFilter) ([]domain.CalendarEvent, error) {
	repoFilter := repository.EventFilter{
		From:   filter.From,
		To:     filter.To,
		Online: filter.Online,
	}
	if v := strings.TrimSpace(filter.SearchTerm); v != "" {
		repoFilter.SearchTerm = &v
	}
	return s.events.List(ctx, repoFilter)
}

func validateEventInput(input EventInput) error {
	details := map[string]any{}

	// limits count characters, not bytes, to match the VARCHAR(n) columns
	title := strings.TrimSpace(input.Title)
	if title == "" {
		details["title"] = "required"
	} else if utf8.RuneCountInString(title) > maxEventTitleLen {
		details["title"] = "must be at most 200 characters"
	}

	location := strings.TrimSpace(input.Location)
	if location == "" {
		details["location"] = "required"
	} else if utf8.RuneCountInString(location) > maxEventLocationLen {
		details["location"] = "must be at most 200 characters"
	}

	if input.StartAt.IsZero() {
		details["startAt"] = "required"
	}
	if input.EndAt != nil && !input.StartAt.IsZero() && input.EndAt.Before(input.StartAt) {
		details["endAt"] = "must not be before startAt"
	}

	if input.Notes != nil && utf8.RuneCountInString(strings.TrimSpace(*input.Notes)) > maxEventNotesLen {
		details["notes"] = "must be at most 1000 characters"
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("event validation failed", details)
	}
	return nil
}

func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
