package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/field-crm/internal/domain"
)

// FollowupFilter captures followup listing parameters. DueFrom/DueTo bound
// the "today" filter to one local calendar day.
type FollowupFilter struct {
	CreatedBy *string
	Status    *domain.FollowupStatus
	LeadKind  *domain.WorkItemKind
	DueFrom   *time.Time
	DueTo     *time.Time
}

// FollowupRepository encapsulates followup persistence.
type FollowupRepository interface {
	Create(ctx context.Context, followup *domain.Followup) error
	Update(ctx context.Context, followup *domain.Followup) error
	GetByID(ctx context.Context, id string) (*domain.Followup, error)
	List(ctx context.Context, filter FollowupFilter) ([]domain.Followup, error)
	ListByLead(ctx context.Context, leadID string) ([]domain.Followup, error)
	Delete(ctx context.Context, id string) error
}

type followupRepository struct {
	pool *pgxpool.Pool
}

// NewFollowupRepository instantiates repository.
func NewFollowupRepository(pool *pgxpool.Pool) FollowupRepository {
	return &followupRepository{pool: pool}
}

const followupColumns = `id, lead_id, lead_kind, customer_name, customer_phone, followup_date, notes,
    customer_response, response_notes, next_followup_date, status, created_by, created_at, updated_at`

func (r *followupRepository) Create(ctx context.Context, followup *domain.Followup) error {
	const query = `
        INSERT INTO followups (lead_id, lead_kind, customer_name, customer_phone, followup_date,
            notes, customer_response, response_notes, next_followup_date, status, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		followup.LeadID,
		followup.LeadKind,
		followup.CustomerName,
		followup.CustomerPhone,
		followup.FollowupDate,
		followup.Notes,
		followup.CustomerResponse,
		followup.ResponseNotes,
		followup.NextFollowupDate,
		followup.Status,
		followup.CreatedBy,
	).Scan(&followup.ID, &followup.CreatedAt, &followup.UpdatedAt)
}

func (r *followupRepository) Update(ctx context.Context, followup *domain.Followup) error {
	const query = `
        UPDATE followups SET followup_date=$1, notes=$2, customer_response=$3, response_notes=$4,
            next_followup_date=$5, status=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		followup.FollowupDate,
		followup.Notes,
		followup.CustomerResponse,
		followup.ResponseNotes,
		followup.NextFollowupDate,
		followup.Status,
		followup.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *followupRepository) GetByID(ctx context.Context, id string) (*domain.Followup, error) {
	query := `SELECT ` + followupColumns + ` FROM followups WHERE id=$1`
	return scanFollowup(r.pool.QueryRow(ctx, query, id))
}

// List orders earliest-due-first, matching the "what is due next" view.
func (r *followupRepository) List(ctx context.Context, filter FollowupFilter) ([]domain.Followup, error) {
	base := `SELECT ` + followupColumns + ` FROM followups`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.CreatedBy != nil {
		args = append(args, *filter.CreatedBy)
		clauses = append(clauses, fmt.Sprintf("created_by=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.LeadKind != nil {
		args = append(args, *filter.LeadKind)
		clauses = append(clauses, fmt.Sprintf("lead_kind=$%d", len(args)))
	}
	if filter.DueFrom != nil {
		args = append(args, *filter.DueFrom)
		clauses = append(clauses, fmt.Sprintf("followup_date >= $%d", len(args)))
	}
	if filter.DueTo != nil {
		args = append(args, *filter.DueTo)
		clauses = append(clauses, fmt.Sprintf("followup_date <= $%d", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY followup_date ASC", base, strings.Join(clauses, " AND "))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFollowups(rows)
}

// ListByLead orders latest-first, matching the per-lead history view.
func (r *followupRepository) ListByLead(ctx context.Context, leadID string) ([]domain.Followup, error) {
	query := `SELECT ` + followupColumns + ` FROM followups WHERE lead_id=$1 ORDER BY followup_date DESC`
	rows, err := r.pool.Query(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFollowups(rows)
}

func (r *followupRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM followups WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanFollowup(row pgx.Row) (*domain.Followup, error) {
	var followup domain.Followup
	if err := row.Scan(
		&followup.ID,
		&followup.LeadID,
		&followup.LeadKind,
		&followup.CustomerName,
		&followup.CustomerPhone,
		&followup.FollowupDate,
		&followup.Notes,
		&followup.CustomerResponse,
		&followup.ResponseNotes,
		&followup.NextFollowupDate,
		&followup.Status,
		&followup.CreatedBy,
		&followup.CreatedAt,
		&followup.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &followup, nil
}

func scanFollowups(rows pgx.Rows) ([]domain.Followup, error) {
	var result []domain.Followup
	for rows.Next() {
		followup, err := scanFollowup(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *followup)
	}
	return result, rows.Err()
}
