package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/field-crm/internal/domain"
)

// ServiceRequestFilter captures service request listing parameters.
type ServiceRequestFilter struct {
	AssignedTo *string
	Status     *domain.ServiceStatus
	ChargeType *domain.ChargeType
	Priority   *domain.Priority
}

// ServiceRequestRepository encapsulates service request persistence.
type ServiceRequestRepository interface {
	Create(ctx context.Context, sr *domain.ServiceRequest) error
	Update(ctx context.Context, sr *domain.ServiceRequest) error
	GetByID(ctx context.Context, id string) (*domain.ServiceRequest, error)
	List(ctx context.Context, filter ServiceRequestFilter) ([]domain.ServiceRequest, error)
	Delete(ctx context.Context, id string) error
}

type serviceRequestRepository struct {
	pool *pgxpool.Pool
}

// NewServiceRequestRepository instantiates repository.
func NewServiceRequestRepository(pool *pgxpool.Pool) ServiceRequestRepository {
	return &serviceRequestRepository{pool: pool}
}

const serviceRequestColumns = `id, service_id, customer_name, phone, address, city,
    linked_lead_id, linked_lead_kind, issue_type, issue_description, priority,
    charge_type, charge_amount, assigned_to, created_by, status,
    service_date, service_notes, before_photos, after_photos,
    resolved_at, resolution_notes, payment_status, payment_date, payment_mode,
    created_at, updated_at`

func (r *serviceRequestRepository) Create(ctx context.Context, sr *domain.ServiceRequest) error {
	const query = `
        INSERT INTO service_requests (service_id, customer_name, phone, address, city,
            linked_lead_id, linked_lead_kind, issue_type, issue_description, priority,
            charge_type, charge_amount, assigned_to, created_by, status, payment_status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		sr.ServiceID,
		sr.CustomerName,
		sr.Phone,
		sr.Address,
		sr.City,
		sr.LinkedLeadID,
		sr.LinkedLeadKind,
		sr.IssueType,
		sr.IssueDescription,
		sr.Priority,
		sr.ChargeType,
		sr.ChargeAmount,
		sr.AssignedTo,
		sr.CreatedBy,
		sr.Status,
		sr.PaymentStatus,
	).Scan(&sr.ID, &sr.CreatedAt, &sr.UpdatedAt)
}

func (r *serviceRequestRepository) Update(ctx context.Context, sr *domain.ServiceRequest) error {
	const query = `
        UPDATE service_requests SET customer_name=$1, phone=$2, address=$3, city=$4,
            linked_lead_id=$5, linked_lead_kind=$6, issue_type=$7, issue_description=$8, priority=$9,
            charge_type=$10, charge_amount=$11, assigned_to=$12, status=$13,
            service_date=$14, service_notes=$15, before_photos=$16, after_photos=$17,
            resolved_at=$18, resolution_notes=$19, payment_status=$20, payment_date=$21, payment_mode=$22,
            updated_at=NOW()
        WHERE id=$23`
	cmd, err := r.pool.Exec(ctx, query,
		sr.CustomerName,
		sr.Phone,
		sr.Address,
		sr.City,
		sr.LinkedLeadID,
		sr.LinkedLeadKind,
		sr.IssueType,
		sr.IssueDescription,
		sr.Priority,
		sr.ChargeType,
		sr.ChargeAmount,
		sr.AssignedTo,
		sr.Status,
		sr.ServiceDate,
		sr.ServiceNotes,
		sr.BeforePhotos,
		sr.AfterPhotos,
		sr.ResolvedAt,
		sr.ResolutionNotes,
		sr.PaymentStatus,
		sr.PaymentDate,
		sr.PaymentMode,
		sr.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *serviceRequestRepository) GetByID(ctx context.Context, id string) (*domain.ServiceRequest, error) {
	query := `SELECT ` + serviceRequestColumns + ` FROM service_requests WHERE id=$1`
	return scanServiceRequest(r.pool.QueryRow(ctx, query, id))
}

func (r *serviceRequestRepository) List(ctx context.Context, filter ServiceRequestFilter) ([]domain.ServiceRequest, error) {
	base := `SELECT ` + serviceRequestColumns + ` FROM service_requests`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		clauses = append(clauses, fmt.Sprintf("assigned_to=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.ChargeType != nil {
		args = append(args, *filter.ChargeType)
		clauses = append(clauses, fmt.Sprintf("charge_type=$%d", len(args)))
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

	var result []domain.ServiceRequest
	for rows.Next() {
		sr, err := scanServiceRequest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *sr)
	}
	return result, rows.Err()
}

func (r *serviceRequestRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM service_requests WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanServiceRequest(row pgx.Row) (*domain.ServiceRequest, error) {
	var sr domain.ServiceRequest
	if err := row.Scan(
		&sr.ID,
		&sr.ServiceID,
		&sr.CustomerName,
		&sr.Phone,
		&sr.Address,
		&sr.City,
		&sr.LinkedLeadID,
		&sr.LinkedLeadKind,
		&sr.IssueType,
		&sr.IssueDescription,
		&sr.Priority,
		&sr.ChargeType,
		&sr.ChargeAmount,
		&sr.AssignedTo,
		&sr.CreatedBy,
		&sr.Status,
		&sr.ServiceDate,
		&sr.ServiceNotes,
		&sr.BeforePhotos,
		&sr.AfterPhotos,
		&sr.ResolvedAt,
		&sr.ResolutionNotes,
		&sr.PaymentStatus,
		&sr.PaymentDate,
		&sr.PaymentMode,
		&sr.CreatedAt,
		&sr.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sr, nil
}
