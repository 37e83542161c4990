package domain

import "time"

// CalendarEvent is a flat scheduling record with no lifecycle logic.
type CalendarEvent struct {
	ID       int64
	Title    string
	Location string
	StartAt  time.Time
	EndAt    *time.Time
	IsOnline bool
	Notes    *string
}
