package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/field-crm/internal/domain"
)

// TicketFilter captures plant ticket listing parameters.
type TicketFilter struct {
	Status   *domain.TicketStatus
	Priority *domain.Priority
}

// TicketRepository encapsulates plant ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.PlantTicket) error
	Update(ctx context.Context, ticket *domain.PlantTicket) error
	GetByID(ctx context.Context, id string) (*domain.PlantTicket, error)
	GetByTicketID(ctx context.Context, ticketID string) (*domain.PlantTicket, error)
	List(ctx context.Context, filter TicketFilter) ([]domain.PlantTicket, error)
	Delete(ctx context.Context, id string) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, ticket_id, proposal_id, issue, priority, assigned_to, created_by,
    status, resolved_at, created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.PlantTicket) error {
	const query = `
        INSERT INTO plant_tickets (ticket_id, proposal_id, issue, priority, assigned_to, created_by, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.TicketID,
		ticket.ProposalID,
		ticket.Issue,
		ticket.Priority,
		ticket.AssignedTo,
		ticket.CreatedBy,
		ticket.Status,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.PlantTicket) error {
	const query = `
        UPDATE plant_tickets SET issue=$1, priority=$2, assigned_to=$3, status=$4,
            resolved_at=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Issue,
		ticket.Priority,
		ticket.AssignedTo,
		ticket.Status,
		ticket.ResolvedAt,
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

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.PlantTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM plant_tickets WHERE id=$1`
	return scanTicket(r.pool.QueryRow(ctx, query, id))
}

func (r *ticketRepository) GetByTicketID(ctx context.Context, ticketID string) (*domain.PlantTicket, error) {
	query := `SELECT ` + ticketColumns + ` FROM plant_tickets WHERE ticket_id=$1`
	return scanTicket(r.pool.QueryRow(ctx, query, ticketID))
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter) ([]domain.PlantTicket, error) {
	base := `SELECT ` + ticketColumns + ` FROM plant_tickets`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("priority=$%d", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY created_at DESC", base, strings.Join(clauses, " AND "))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PlantTicket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM plant_tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTicket(row pgx.Row) (*domain.PlantTicket, error) {
	var ticket domain.PlantTicket
	if err := row.Scan(
		&ticket.ID,
		&ticket.TicketID,
		&ticket.ProposalID,
		&ticket.Issue,
		&ticket.Priority,
		&ticket.AssignedTo,
		&ticket.CreatedBy,
		&ticket.Status,
		&ticket.ResolvedAt,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}
