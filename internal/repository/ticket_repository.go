package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opscore/helpdesk-api/internal/domain"
)

// TicketFilter captures listing parameters. Both fields are optional and,
// when set, matched case-insensitively against the stored value (exact
// match, not substring).
type TicketFilter struct {
	Status   *string
	Severity *string
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Insert(ctx context.Context, ticket *domain.SupportTicket) error
	GetByID(ctx context.Context, id int64) (*domain.SupportTicket, error)
	Update(ctx context.Context, ticket *domain.SupportTicket) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter TicketFilter) ([]domain.SupportTicket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Insert(ctx context.Context, ticket *domain.SupportTicket) error {
	const query = `
        INSERT INTO support_tickets (subject, requester_email, description, severity, status, opened_at, closed_at, assigned_to)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		ticket.Subject,
		ticket.RequesterEmail,
		ticket.Description,
		ticket.Severity,
		ticket.Status,
		ticket.OpenedAt,
		ticket.ClosedAt,
		ticket.AssignedTo,
	).Scan(&ticket.ID)
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.SupportTicket, error) {
	const query = `
        SELECT id, subject, requester_email, description, severity, status, opened_at, closed_at, assigned_to
        FROM support_tickets WHERE id=$1`
	var ticket domain.SupportTicket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Subject,
		&ticket.RequesterEmail,
		&ticket.Description,
		&ticket.Severity,
		&ticket.Status,
		&ticket.OpenedAt,
		&ticket.ClosedAt,
		&ticket.AssignedTo,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.SupportTicket) error {
	const query = `
        UPDATE support_tickets SET subject=$1, requester_email=$2, description=$3, severity=$4,
            status=$5, closed_at=$6, assigned_to=$7
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Subject,
		ticket.RequesterEmail,
		ticket.Description,
		ticket.Severity,
		ticket.Status,
		ticket.ClosedAt,
		ticket.AssignedTo,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM support_tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter) ([]domain.SupportTicket, error) {
	base := `SELECT id, subject, requester_email, description, severity, status, opened_at, closed_at, assigned_to
             FROM support_tickets`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("LOWER(status) = LOWER($%d)", len(args)))
	}
	if filter.Severity != nil {
		args = append(args, *filter.Severity)
		clauses = append(clauses, fmt.Sprintf("LOWER(severity) = LOWER($%d)", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY opened_at DESC`, base, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]domain.SupportTicket, error) {
	result := []domain.SupportTicket{}
	for rows.Next() {
		var ticket domain.SupportTicket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Subject,
			&ticket.RequesterEmail,
			&ticket.Description,
			&ticket.Severity,
			&ticket.Status,
			&ticket.OpenedAt,
			&ticket.ClosedAt,
			&ticket.AssignedTo,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
