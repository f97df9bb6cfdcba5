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

// LeadFilter captures lead listing parameters. AssignedTo carries the
// visibility scope for non-admin actors.
type LeadFilter struct {
	Kind       *domain.WorkItemKind
	AssignedTo *string
	Status     *domain.LeadStatus
	City       *string
}

// LeadRepository encapsulates lead persistence for both pipelines.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	Update(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]domain.Lead, error)
	SetNextFollowupDate(ctx context.Context, id string, date *time.Time) error
	Delete(ctx context.Context, id string) error
}

type leadRepository struct {
	pool *pgxpool.Pool
}

// NewLeadRepository instantiates repository.
func NewLeadRepository(pool *pgxpool.Pool) LeadRepository {
	return &leadRepository{pool: pool}
}

const leadColumns = `id, kind, customer_name, phone, alt_phone, email, address, city, state, pincode,
    system_size, connection_type, current_bill, roof_type,
    land_size, crop_type, water_source, pipe_length,
    lead_source, referred_by, assigned_to, created_by, status,
    visit_date, visit_notes, visit_photos,
    quotation_amount, quotation_file, quotation_sent_at,
    deal_done_at, advance_amount,
    portal_status, portal_documents, meter_number, meter_applied_at, meter_installed_at,
    subsidy_amount, subsidy_status, subsidy_documents,
    installation_date, installation_team, installation_notes, installation_photos,
    total_amount, paid_amount, pending_amount, payment_status,
    review_code, customer_rating, customer_review,
    next_followup_date, created_at, updated_at`

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	const query = `
        INSERT INTO leads (kind, customer_name, phone, alt_phone, email, address, city, state, pincode,
            system_size, connection_type, current_bill, roof_type,
            land_size, crop_type, water_source, pipe_length,
            lead_source, referred_by, assigned_to, created_by, status,
            portal_status, subsidy_status,
            total_amount, paid_amount, pending_amount, payment_status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		lead.Kind,
		lead.CustomerName,
		lead.Phone,
		lead.AltPhone,
		lead.Email,
		lead.Address,
		lead.City,
		lead.State,
		lead.Pincode,
		lead.SystemSize,
		lead.ConnectionType,
		lead.CurrentBill,
		lead.RoofType,
		lead.LandSize,
		lead.CropType,
		lead.WaterSource,
		lead.PipeLength,
		lead.LeadSource,
		lead.ReferredBy,
		lead.AssignedTo,
		lead.CreatedBy,
		lead.Status,
		lead.PortalStatus,
		lead.SubsidyStatus,
		lead.TotalAmount,
		lead.PaidAmount,
		lead.PendingAmount,
		lead.PaymentStatus,
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
}

// Update writes every mutable column in one statement so a merged partial
// update lands all-or-nothing.
func (r *leadRepository) Update(ctx context.Context, lead *domain.Lead) error {
	const query = `
        UPDATE leads SET customer_name=$1, phone=$2, alt_phone=$3, email=$4, address=$5, city=$6,
            state=$7, pincode=$8,
            system_size=$9, connection_type=$10, current_bill=$11, roof_type=$12,
            land_size=$13, crop_type=$14, water_source=$15, pipe_length=$16,
            lead_source=$17, referred_by=$18, assigned_to=$19, status=$20,
            visit_date=$21, visit_notes=$22, visit_photos=$23,
            quotation_amount=$24, quotation_file=$25, quotation_sent_at=$26,
            deal_done_at=$27, advance_amount=$28,
            portal_status=$29, portal_documents=$30, meter_number=$31, meter_applied_at=$32, meter_installed_at=$33,
            subsidy_amount=$34, subsidy_status=$35, subsidy_documents=$36,
            installation_date=$37, installation_team=$38, installation_notes=$39, installation_photos=$40,
            total_amount=$41, paid_amount=$42, pending_amount=$43, payment_status=$44,
            review_code=$45, customer_rating=$46, customer_review=$47,
            next_followup_date=$48, updated_at=NOW()
        WHERE id=$49`
	cmd, err := r.pool.Exec(ctx, query,
		lead.CustomerName,
		lead.Phone,
		lead.AltPhone,
		lead.Email,
		lead.Address,
		lead.City,
		lead.State,
		lead.Pincode,
		lead.SystemSize,
		lead.ConnectionType,
		lead.CurrentBill,
		lead.RoofType,
		lead.LandSize,
		lead.CropType,
		lead.WaterSource,
		lead.PipeLength,
		lead.LeadSource,
		lead.ReferredBy,
		lead.AssignedTo,
		lead.Status,
		lead.VisitDate,
		lead.VisitNotes,
		lead.VisitPhotos,
		lead.QuotationAmount,
		lead.QuotationFile,
		lead.QuotationSentAt,
		lead.DealDoneAt,
		lead.AdvanceAmount,
		lead.PortalStatus,
		lead.PortalDocuments,
		lead.MeterNumber,
		lead.MeterAppliedAt,
		lead.MeterInstalledAt,
		lead.SubsidyAmount,
		lead.SubsidyStatus,
		lead.SubsidyDocuments,
		lead.InstallationDate,
		lead.InstallationTeam,
		lead.InstallationNotes,
		lead.InstallationPhotos,
		lead.TotalAmount,
		lead.PaidAmount,
		lead.PendingAmount,
		lead.PaymentStatus,
		lead.ReviewCode,
		lead.CustomerRating,
		lead.CustomerReview,
		lead.NextFollowupDate,
		lead.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id=$1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanLead(row)
}

func (r *leadRepository) List(ctx context.Context, filter LeadFilter) ([]domain.Lead, error) {
	base := `SELECT ` + leadColumns + ` FROM leads`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Kind != nil {
		args = append(args, *filter.Kind)
		clauses = append(clauses, fmt.Sprintf("kind=$%d", len(args)))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		clauses = append(clauses, fmt.Sprintf("assigned_to=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.City != nil {
		args = append(args, *filter.City)
		clauses = append(clauses, fmt.Sprintf("city=$%d", len(args)))
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY created_at DESC", base, strings.Join(clauses, " AND "))
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *lead)
	}
	return result, rows.Err()
}

// SetNextFollowupDate is the narrow write used by the followup linker's
// propagation step; it intentionally touches nothing else on the lead.
func (r *leadRepository) SetNextFollowupDate(ctx context.Context, id string, date *time.Time) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE leads SET next_followup_date=$1, updated_at=NOW() WHERE id=$2`, date, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *leadRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanLead(row pgx.Row) (*domain.Lead, error) {
	var lead domain.Lead
	if err := row.Scan(
		&lead.ID,
		&lead.Kind,
		&lead.CustomerName,
		&lead.Phone,
		&lead.AltPhone,
		&lead.Email,
		&lead.Address,
		&lead.City,
		&lead.State,
		&lead.Pincode,
		&lead.SystemSize,
		&lead.ConnectionType,
		&lead.CurrentBill,
		&lead.RoofType,
		&lead.LandSize,
		&lead.CropType,
		&lead.WaterSource,
		&lead.PipeLength,
		&lead.LeadSource,
		&lead.ReferredBy,
		&lead.AssignedTo,
		&lead.CreatedBy,
		&lead.Status,
		&lead.VisitDate,
		&lead.VisitNotes,
		&lead.VisitPhotos,
		&lead.QuotationAmount,
		&lead.QuotationFile,
		&lead.QuotationSentAt,
		&lead.DealDoneAt,
		&lead.AdvanceAmount,
		&lead.PortalStatus,
		&lead.PortalDocuments,
		&lead.MeterNumber,
		&lead.MeterAppliedAt,
		&lead.MeterInstalledAt,
		&lead.SubsidyAmount,
		&lead.SubsidyStatus,
		&lead.SubsidyDocuments,
		&lead.InstallationDate,
		&lead.InstallationTeam,
		&lead.InstallationNotes,
		&lead.InstallationPhotos,
		&lead.TotalAmount,
		&lead.PaidAmount,
		&lead.PendingAmount,
		&lead.PaymentStatus,
		&lead.ReviewCode,
		&lead.CustomerRating,
		&lead.CustomerReview,
		&lead.NextFollowupDate,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &lead, nil
}
