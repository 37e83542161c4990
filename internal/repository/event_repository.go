package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opscore/helpdesk-api/internal/domain"
)

// EventFilter captures event listing parameters. From/To bound StartAt
// inclusively; SearchTerm is a case-insensitive substring match over
// title, location and notes.
type EventFilter struct {
	From       *time.Time
	To         *time.Time
	Online     *bool
	SearchTerm *string
}

// EventRepository encapsulates calendar event persistence.
type EventRepository interface {
	Insert(ctx context.Context, event *domain.CalendarEvent) error
	GetByID(ctx context.Context, id int64) (*domain.CalendarEvent, error)
	Update(ctx context.Context, event *domain.CalendarEvent) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter EventFilter) ([]domain.CalendarEvent, error)
}

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository instantiates repository.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

func (r *eventRepository) Insert(ctx context.Context, event *domain.CalendarEvent) error {
	const query = `
        INSERT INTO events (title, location, start_at, end_at, is_online, notes)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		event.Title,
		event.Location,
		event.StartAt,
		event.EndAt,
		event.IsOnline,
		event.Notes,
	).Scan(&event.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.CalendarEvent, error) {
	const query = `
        SELECT id, title, location, start_at, end_at, is_online, notes
        FROM events WHERE id=$1`
	var event domain.CalendarEvent
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Location,
		&event.StartAt,
		&event.EndAt,
		&event.IsOnline,
		&event.Notes,
	); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Update(ctx context.Context, event *domain.CalendarEvent) error {
	const query = `
        UPDATE events SET title=$1, location=$2, start_at=$3, end_at=$4, is_online=$5, notes=$6
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		event.Title,
		event.Location,
		event.StartAt,
		event.EndAt,
		event.IsOnline,
		event.Notes,
		event.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) List(ctx context.Context, filter EventFilter) ([]domain.CalendarEvent, error) {
	base := `SELECT id, title, location, start_at, end_at, is_online, notes FROM events`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.From != nil {
		args = append(args, *filter.From)
		clauses = append(clauses, fmt.Sprintf("start_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		clauses = append(clauses, fmt.Sprintf("start_at <= $%d", len(args)))
	}
	if filter.Online != nil {
		args = append(args, *filter.Online)
		clauses = append(clauses, fmt.Sprintf("is_online = $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + escapeLike(strings.ToLower(strings.TrimSpace(*filter.SearchTerm))) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(title) LIKE %s OR LOWER(location) LIKE %s OR (notes IS NOT NULL AND LOWER(notes) LIKE %s))",
			placeholder, placeholder, placeholder))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY start_at ASC`, base, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.CalendarEvent{}
	for rows.Next() {
		var event domain.CalendarEvent
		if err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Location,
			&event.StartAt,
			&event.EndAt,
			&event.IsOnline,
			&event.Notes,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters so search terms match
// literally.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
