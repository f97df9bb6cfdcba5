package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/field-crm/internal/domain"
)

// ProposalRepository encapsulates proposal persistence.
type ProposalRepository interface {
	Create(ctx context.Context, proposal *domain.Proposal) error
	Update(ctx context.Context, proposal *domain.Proposal) error
	GetByID(ctx context.Context, id string) (*domain.Proposal, error)
	List(ctx context.Context, salesPersonID *string) ([]domain.Proposal, error)
	Delete(ctx context.Context, id string) error
}

type proposalRepository struct {
	pool *pgxpool.Pool
}

// NewProposalRepository instantiates repository.
func NewProposalRepository(pool *pgxpool.Pool) ProposalRepository {
	return &proposalRepository{pool: pool}
}

const proposalColumns = `id, customer_id, sales_person_id, plant_capacity, price, subsidy, final_price,
    installation_address, status, notes, created_at, updated_at`

func (r *proposalRepository) Create(ctx context.Context, proposal *domain.Proposal) error {
	const query = `
        INSERT INTO proposals (customer_id, sales_person_id, plant_capacity, price, subsidy, final_price,
            installation_address, status, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		proposal.CustomerID,
		proposal.SalesPersonID,
		proposal.PlantCapacity,
		proposal.Price,
		proposal.Subsidy,
		proposal.FinalPrice,
		proposal.InstallationAddress,
		proposal.Status,
		proposal.Notes,
	).Scan(&proposal.ID, &proposal.CreatedAt, &proposal.UpdatedAt)
}

func (r *proposalRepository) Update(ctx context.Context, proposal *domain.Proposal) error {
	const query = `
        UPDATE proposals SET plant_capacity=$1, price=$2, subsidy=$3, final_price=$4,
            installation_address=$5, status=$6, notes=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		proposal.PlantCapacity,
		proposal.Price,
		proposal.Subsidy,
		proposal.FinalPrice,
		proposal.InstallationAddress,
		proposal.Status,
		proposal.Notes,
		proposal.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *proposalRepository) GetByID(ctx context.Context, id string) (*domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE id=$1`
	return scanProposal(r.pool.QueryRow(ctx, query, id))
}

func (r *proposalRepository) List(ctx context.Context, salesPersonID *string) ([]domain.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals`
	args := []any{}
	if salesPersonID != nil {
		query += ` WHERE sales_person_id=$1`
		args = append(args, *salesPersonID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Proposal
	for rows.Next() {
		proposal, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *proposal)
	}
	return result, rows.Err()
}

func (r *proposalRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM proposals WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanProposal(row pgx.Row) (*domain.Proposal, error) {
	var proposal domain.Proposal
	if err := row.Scan(
		&proposal.ID,
		&proposal.CustomerID,
		&proposal.SalesPersonID,
		&proposal.PlantCapacity,
		&proposal.Price,
		&proposal.Subsidy,
		&proposal.FinalPrice,
		&proposal.InstallationAddress,
		&proposal.Status,
		&proposal.Notes,
		&proposal.CreatedAt,
		&proposal.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &proposal, nil
}
