package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opscore/helpdesk-api/internal/domain"
	"github.com/opscore/helpdesk-api/internal/repository"
	apperrors "github.com/opscore/helpdesk-api/pkg/util"
)

type fakeEventRepo struct {
	mu    sync.Mutex
	seq   int64
	items map[int64]domain.CalendarEvent
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{items: map[int64]domain.CalendarEvent{}}
}

func (f *fakeEventRepo) Insert(_ context.Context, event *domain.CalendarEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	event.ID = f.seq
	f.items[event.ID] = *event
	return nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id int64) (*domain.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event, ok := f.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &event, nil
}

func (f *fakeEventRepo) Update(_ context.Context, event *domain.CalendarEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[event.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.items[event.ID] = *event
	return nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.items, id)
	return nil
}

func (f *fakeEventRepo) List(_ context.Context, filter repository.EventFilter) ([]domain.CalendarEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []domain.CalendarEvent{}
	for _, event := range f.items {
		if filter.From != nil && event.StartAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && event.StartAt.After(*filter.To) {
			continue
		}
		if filter.Online != nil && event.IsOnline != *filter.Online {
			continue
		}
		if filter.SearchTerm != nil {
			term := strings.ToLower(strings.TrimSpace(*filter.SearchTerm))
			haystack := strings.ToLower(event.Title) + " " + strings.ToLower(event.Location)
			if event.Notes != nil {
				haystack += " " + strings.ToLower(*event.Notes)
			}
			if !strings.Contains(haystack, term) {
				continue
			}
		}
		result = append(result, event)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartAt.Before(result[j].StartAt)
	})
	return result, nil
}

func validEventInput() EventInput {
	return EventInput{
		Title:    "Quarterly webinar",
		Location: "Online",
		StartAt:  time.Date(2025, 10, 7, 15, 0, 0, 0, time.UTC),
		IsOnline: true,
	}
}

func TestEventCreateNormalizes(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())
	notes := "  "
	input := validEventInput()
	input.Title = "  Quarterly webinar  "
	input.Location = " Online "
	input.Notes = &notes

	event, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "Quarterly webinar", event.Title)
	assert.Equal(t, "Online", event.Location)
	assert.Nil(t, event.Notes)
}

func TestEventCreateValidation(t *testing.T) {
	cases := []struct {
		name  string
		mod   func(*EventInput)
		field string
	}{
		{"missing title", func(in *EventInput) { in.Title = " " }, "title"},
		{"missing location", func(in *EventInput) { in.Location = "" }, "location"},
		{"missing start", func(in *EventInput) { in.StartAt = time.Time{} }, "startAt"},
		{"end before start", func(in *EventInput) {
			end := in.StartAt.Add(-time.Hour)
			in.EndAt = &end
		}, "endAt"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewEventService(newFakeEventRepo())
			input := validEventInput()
			tc.mod(&input)

			_, err := svc.Create(context.Background(), input)
			require.Error(t, err)
			var domainErr *apperrors.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
			assert.Contains(t, domainErr.Details, tc.field)
		})
	}
}

func TestEventTitleLimitCountsCharactersNotBytes(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())

	input := validEventInput()
	input.Title = strings.Repeat("日", 200)
	_, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	input = validEventInput()
	input.Title = strings.Repeat("日", 201)
	_, err = svc.Create(context.Background(), input)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Contains(t, domainErr.Details, "title")
}

func TestEventEndAtEqualStartAtIsValid(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())
	input := validEventInput()
	end := input.StartAt
	input.EndAt = &end

	_, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
}

func TestEventReplaceIDMismatch(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())
	event, err := svc.Create(context.Background(), validEventInput())
	require.NoError(t, err)

	input := validEventInput()
	input.ID = event.ID + 1
	_, err = svc.Replace(context.Background(), event.ID, input)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ID_MISMATCH", domainErr.Code)
}

func TestEventListFilters(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())

	mk := func(title string, start time.Time, online bool) {
		input := validEventInput()
		input.Title = title
		input.StartAt = start
		input.IsOnline = online
		_, err := svc.Create(context.Background(), input)
		require.NoError(t, err)
	}
	day := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	mk("Webinar kickoff", day, true)
	mk("Office party", day.AddDate(0, 0, 10), false)
	mk("Planning", day.AddDate(0, 1, 0), true)

	from := day.AddDate(0, 0, 5)
	got, err := svc.List(context.Background(), EventListFilter{From: &from})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	online := true
	got, err = svc.List(context.Background(), EventListFilter{Online: &online})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.List(context.Background(), EventListFilter{SearchTerm: "WEBINAR"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Webinar kickoff", got[0].Title)

	// ascending by start time
	got, err = svc.List(context.Background(), EventListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].StartAt.Before(got[i-1].StartAt))
	}
}

func TestEventDeleteNotFound(t *testing.T) {
	svc := NewEventService(newFakeEventRepo())
	err := svc.Delete(context.Background(), 5)
	assertNotFound(t, err)
}
