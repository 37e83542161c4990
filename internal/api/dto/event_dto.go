package dto

import (
	"time"

	"github.com/opscore/helpdesk-api/internal/domain"
)

// EventRequest is the create/replace payload for calendar events.
type EventRequest struct {
	ID       int64      `json:"id"`
	Title    string     `json:"title"`
	Location string     `json:"location"`
	StartAt  time.Time  `json:"startAt"`
	EndAt    *time.Time `json:"endAt"`
	IsOnline bool       `json:"isOnline"`
	Notes    *string    `json:"notes"`
}

// EventResponse is the wire representation of a calendar event.
type EventResponse struct {
	ID       int64      `json:"id"`
	Title    string     `json:"title"`
	Location string     `json:"location"`
	StartAt  time.Time  `json:"startAt"`
	EndAt    *time.Time `json:"endAt"`
	IsOnline bool       `json:"isOnline"`
	Notes    *string    `json:"notes"`
}

// FromEvent maps a domain event onto the wire shape.
func FromEvent(event *domain.CalendarEvent) EventResponse {
	return EventResponse{
		ID:       event.ID,
		Title:    event.Title,
		Location: event.Location,
		StartAt:  event.StartAt,
		EndAt:    event.EndAt,
		IsOnline: event.IsOnline,
		Notes:    event.Notes,
	}
}

// FromEvents maps a slice of domain events onto the wire shape.
func FromEvents(events []domain.CalendarEvent) []EventResponse {
	items := make([]EventResponse, 0, len(events))
	for i := range events {
		items = append(items, FromEvent(&events[i]))
	}
	return items
}
