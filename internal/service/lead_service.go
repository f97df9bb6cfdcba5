package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-crm/internal/access"
	"github.com/spec-kit/field-crm/internal/domain"
	"github.com/spec-kit/field-crm/internal/events"
	"github.com/spec-kit/field-crm/internal/repository"
	"github.com/spec-kit/field-crm/internal/sequence"
	apperrors "github.com/spec-kit/field-crm/pkg/util/errorutil"
)

// LeadService coordinates the solar and sprinkler sales pipelines.
type LeadService struct {
	leads      repository.LeadRepository
	sequences  sequence.Allocator
	dispatcher events.Dispatcher
}

// LeadDependencies bundles collaborators for the lead service.
type LeadDependencies struct {
	LeadRepo   repository.LeadRepository
	Sequences  sequence.Allocator
	Dispatcher events.Dispatcher
}

// NewLeadService constructs the service.
func NewLeadService(deps LeadDependencies) *LeadService {
	return &LeadService{
		leads:      deps.LeadRepo,
		sequences:  deps.Sequences,
		dispatcher: deps.Dispatcher,
	}
}

// LeadCreateInput describes lead creation payload, shared by both kinds.
type LeadCreateInput struct {
	CustomerName string
	Phone        string
	AltPhone     *string
	Email        *string
	Address      string
	City         string
	State        string
	Pincode      string

	SystemSize     *float64
	ConnectionType *string
	CurrentBill    *float64
	RoofType       *string

	LandSize    *string
	CropType    *string
	WaterSource *string
	PipeLength  *float64

	LeadSource domain.LeadSource
	ReferredBy *string
}

// LeadUpdateInput is a merged partial update: customer details, pipeline
// stage fields, status and finances travel in one payload. Nil means
// "leave unchanged". PendingAmount and PaymentStatus are absent on purpose;
// they are derived.
type LeadUpdateInput struct {
	CustomerName *string
	Phone        *string
	AltPhone     *string
	Email        *string
	Address      *string
	City         *string
	State        *string
	Pincode      *string

	SystemSize     *float64
	ConnectionType *string
	CurrentBill    *float64
	RoofType       *string

	LandSize    *string
	CropType    *string
	WaterSource *string
	PipeLength  *float64

	LeadSource *domain.LeadSource
	ReferredBy *string
	AssignedTo *string

	Status *domain.LeadStatus

	VisitDate   *time.Time
	VisitNotes  *string
	VisitPhotos []string

	QuotationAmount *float64
	QuotationFile   *string
	QuotationSentAt *time.Time

	DealDoneAt    *time.Time
	AdvanceAmount *float64

	PortalStatus     *string
	PortalDocuments  []string
	MeterNumber      *string
	MeterAppliedAt   *time.Time
	MeterInstalledAt *time.Time
	SubsidyAmount    *float64
	SubsidyStatus    *string
	SubsidyDocuments []string

	InstallationDate   *time.Time
	InstallationTeam   *string
	InstallationNotes  *string
	InstallationPhotos []string

	TotalAmount *float64
	PaidAmount  *float64

	NextFollowupDate *time.Time
}

// LeadListInput describes listing filters applied on top of the visibility
// scope.
type LeadListInput struct {
	Status *domain.LeadStatus
	City   *string
}

// Create registers a new lead. A Sales creator is auto-assigned to the lead;
// an Admin creator leaves it unassigned.
func (s *LeadService) Create(ctx context.Context, actor *domain.User, kind domain.WorkItemKind, input LeadCreateInput) (*domain.Lead, error) {
	if !kind.LeadKind() {
		return nil, apperrors.NewValidationError("unknown lead kind", nil)
	}
	if err := validateLeadCreate(kind, input); err != nil {
		return nil, err
	}

	source := input.LeadSource
	if source == "" {
		source = domain.LeadSourceDirect
	}
	if !domain.ValidLeadSource(source) {
		return nil, apperrors.NewValidationError("invalid lead source", map[string]any{"leadSource": source})
	}

	lead := &domain.Lead{
		Kind:           kind,
		CustomerName:   strings.TrimSpace(input.CustomerName),
		Phone:          strings.TrimSpace(input.Phone),
		AltPhone:       input.AltPhone,
		Email:          input.Email,
		Address:        strings.TrimSpace(input.Address),
		City:           strings.TrimSpace(input.City),
		State:          strings.TrimSpace(input.State),
		Pincode:        strings.TrimSpace(input.Pincode),
		SystemSize:     input.SystemSize,
		ConnectionType: input.ConnectionType,
		CurrentBill:    input.CurrentBill,
		RoofType:       input.RoofType,
		LandSize:       input.LandSize,
		CropType:       input.CropType,
		WaterSource:    input.WaterSource,
		PipeLength:     input.PipeLength,
		LeadSource:     source,
		ReferredBy:     input.ReferredBy,
		CreatedBy:      actor.ID,
		Status:         domain.LeadStatusNew,
	}

	if actor.Role == domain.RoleSales {
		id := actor.ID
		lead.AssignedTo = &id
	}

	if kind == domain.KindSolarLead {
		portal := domain.PortalNotStarted
		subsidy := domain.SubsidyNotApplied
		lead.PortalStatus = &portal
		lead.SubsidyStatus = &subsidy
	}

	lead.PendingAmount, lead.PaymentStatus = domain.ReconcilePayment(lead.TotalAmount, lead.PaidAmount)

	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventLeadCreated,
		Kind:    kind,
		ItemID:  lead.ID,
		ActorID: actor.ID,
		Payload: events.LeadCreatedPayload{
			CustomerName: lead.CustomerName,
			City:         lead.City,
			Source:       lead.LeadSource,
			AssignedTo:   lead.AssignedTo,
		},
	})
	return lead, nil
}

// Get fetches a single lead within the actor's scope.
func (s *LeadService) Get(ctx context.Context, actor *domain.User, kind domain.WorkItemKind, id string) (*domain.Lead, error) {
	lead, err := s.fetch(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if err := access.Check(actor, lead.Kind, lead.AssignedTo); err != nil {
		return nil, err
	}
	return lead, nil
}

// List returns leads visible to the actor, newest first.
func (s *LeadService) List(ctx context.Context, actor *domain.User, kind domain.WorkItemKind, input LeadListInput) ([]domain.Lead, error) {
	filter := repository.LeadFilter{
		Kind:       &kind,
		AssignedTo: access.ScopeOwner(actor),
		Status:     input.Status,
		City:       input.City,
	}
	result, err := s.leads.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// Update applies a merged partial update. Status is validated against the
// kind's vocabulary and payment fields are reconciled before the single row
// write, so an invalid payload leaves the record untouched.
func (s *LeadService) Update(ctx context.Context, actor *domain.User, kind domain.WorkItemKind, id string, input LeadUpdateInput) (*domain.Lead, error) {
	lead, err := s.fetch(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if err := access.Check(actor, lead.Kind, lead.AssignedTo); err != nil {
		return nil, err
	}

	oldStatus := lead.Status
	if input.Status != nil {
		if !domain.ValidLeadStatus(lead.Kind, *input.Status) {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{
				"status":  *input.Status,
				"allowed": domain.LeadStatuses(lead.Kind),
			})
		}
		lead.Status = *input.Status
	}
	if input.LeadSource != nil {
		if !domain.ValidLeadSource(*input.LeadSource) {
			return nil, apperrors.NewValidationError("invalid lead source", map[string]any{"leadSource": *input.LeadSource})
		}
		lead.LeadSource = *input.LeadSource
	}

	applyLeadUpdate(lead, input)

	if input.TotalAmount != nil || input.PaidAmount != nil {
		lead.PendingAmount, lead.PaymentStatus = domain.ReconcilePayment(lead.TotalAmount, lead.PaidAmount)
	}

	if err := s.leads.Update(ctx, lead); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("lead", nil)
		}
		return nil, apperrors.MapError(err)
	}

	if input.Status != nil && lead.Status != oldStatus {
		s.publish(ctx, events.Event{
			Type:    events.EventLeadStatusChanged,
			Kind:    lead.Kind,
			ItemID:  lead.ID,
			ActorID: actor.ID,
			Payload: events.StatusChangedPayload{
				OldStatus: string(oldStatus),
				NewStatus: string(lead.Status),
			},
		})
	}
	return lead, nil
}

// Assign hands the lead to a user. Admin-only; the pipeline status is left
// untouched.
func (s *LeadService) Assign(ctx context.Context, actor *domain.User, kind domain.WorkItemKind, id, assigneeID string) (*domain.Lead, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(assigneeID) == "" {
		return nil, apperrors.NewValidationError("assignee id required", nil)
	}
	lead, err := s.fetch(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	lead.AssignedTo = &assigneeID
	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventLeadAssigned,
		Kind:    lead.Kind,
		ItemID:  lead.ID,
		ActorID: actor.ID,
		Payload: events.AssignedPayload{AssigneeID: assigneeID},
	})
	return lead, nil
}

// AddReview records a customer review against a completed sprinkler lead and
// mints a review code. Solar leads do not carry reviews.
func (s *LeadService) AddReview(ctx context.Context, actor *domain.User, id string, rating int, review string) (*domain.Lead, error) {
	lead, err := s.fetch(ctx, domain.KindSprinklerLead, id)
	if err != nil {
		return nil, err
	}
	if err := access.Check(actor, lead.Kind, lead.AssignedTo); err != nil {
		return nil, err
	}
	if rating < 1 || rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5", map[string]any{"rating": rating})
	}

	code, err := s.sequences.Next(ctx, sequence.PrefixReview)
	if err != nil {
		return nil, err
	}

	lead.ReviewCode = &code
	lead.CustomerRating = &rating
	if review != "" {
		lead.CustomerReview = &review
	}
	if err := s.leads.Update(ctx, lead); err != nil {
		return nil, apperrors.MapError(err)
	}
	return lead, nil
}

// Delete removes a lead. Admin-only; a second delete of the same id reports
// NotFound. Followups referencing the lead are left in place.
func (s *LeadService) Delete(ctx context.Context, actor *domain.User, kind domain.WorkItemKind, id string) error {
	if err := access.RequireAdmin(actor); err != nil {
		return err
	}
	lead, err := s.fetch(ctx, kind, id)
	if err != nil {
		return err
	}
	if err := s.leads.Delete(ctx, lead.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("lead", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

// fetch loads a lead and hides rows of the other pipeline behind NotFound,
// so a solar endpoint never serves a sprinkler row.
func (s *LeadService) fetch(ctx context.Context, kind domain.WorkItemKind, id string) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("lead", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if lead.Kind != kind {
		return nil, apperrors.NewNotFound("lead", nil)
	}
	return lead, nil
}

func (s *LeadService) publish(ctx context.Context, event events.Event) {
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

// validateLeadCreate applies the kind-specific required-field rule: a solar
// payload is rejected only when every required field is missing, a sprinkler
// payload requires each field individually.
func validateLeadCreate(kind domain.WorkItemKind, input LeadCreateInput) error {
	required := map[string]string{
		"customerName": input.CustomerName,
		"phone":        input.Phone,
		"address":      input.Address,
		"city":         input.City,
		"state":        input.State,
		"pincode":      input.Pincode,
	}

	if kind == domain.KindSolarLead {
		for _, v := range required {
			if strings.TrimSpace(v) != "" {
				return nil
			}
		}
		return apperrors.NewValidationError("customer details required", nil)
	}

	missing := map[string]any{}
	for field, v := range required {
		if strings.TrimSpace(v) == "" {
			missing[field] = "required"
		}
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("missing required fields", missing)
	}
	return nil
}

func applyLeadUpdate(lead *domain.Lead, input LeadUpdateInput) {
	if input.CustomerName != nil {
		lead.CustomerName = *input.CustomerName
	}
	if input.Phone != nil {
		lead.Phone = *input.Phone
	}
	if input.AltPhone != nil {
		lead.AltPhone = input.AltPhone
	}
	if input.Email != nil {
		lead.Email = input.Email
	}
	if input.Address != nil {
		lead.Address = *input.Address
	}
	if input.City != nil {
		lead.City = *input.City
	}
	if input.State != nil {
		lead.State = *input.State
	}
	if input.Pincode != nil {
		lead.Pincode = *input.Pincode
	}
	if input.SystemSize != nil {
		lead.SystemSize = input.SystemSize
	}
	if input.ConnectionType != nil {
		lead.ConnectionType = input.ConnectionType
	}
	if input.CurrentBill != nil {
		lead.CurrentBill = input.CurrentBill
	}
	if input.RoofType != nil {
		lead.RoofType = input.RoofType
	}
	if input.LandSize != nil {
		lead.LandSize = input.LandSize
	}
	if input.CropType != nil {
		lead.CropType = input.CropType
	}
	if input.WaterSource != nil {
		lead.WaterSource = input.WaterSource
	}
	if input.PipeLength != nil {
		lead.PipeLength = input.PipeLength
	}
	if input.ReferredBy != nil {
		lead.ReferredBy = input.ReferredBy
	}
	if input.AssignedTo != nil {
		// General updates may reassign; assign remains the explicit path.
		lead.AssignedTo = input.AssignedTo
	}
	if input.VisitDate != nil {
		lead.VisitDate = input.VisitDate
	}
	if input.VisitNotes != nil {
		lead.VisitNotes = input.VisitNotes
	}
	if input.VisitPhotos != nil {
		lead.VisitPhotos = input.VisitPhotos
	}
	if input.QuotationAmount != nil {
		lead.QuotationAmount = input.QuotationAmount
	}
	if input.QuotationFile != nil {
		lead.QuotationFile = input.QuotationFile
	}
	if input.QuotationSentAt != nil {
		lead.QuotationSentAt = input.QuotationSentAt
	}
	if input.DealDoneAt != nil {
		lead.DealDoneAt = input.DealDoneAt
	}
	if input.AdvanceAmount != nil {
		lead.AdvanceAmount = *input.AdvanceAmount
	}
	if input.PortalStatus != nil {
		lead.PortalStatus = input.PortalStatus
	}
	if input.PortalDocuments != nil {
		lead.PortalDocuments = input.PortalDocuments
	}
	if input.MeterNumber != nil {
		lead.MeterNumber = input.MeterNumber
	}
	if input.MeterAppliedAt != nil {
		lead.MeterAppliedAt = input.MeterAppliedAt
	}
	if input.MeterInstalledAt != nil {
		lead.MeterInstalledAt = input.MeterInstalledAt
	}
	if input.SubsidyAmount != nil {
		lead.SubsidyAmount = *input.SubsidyAmount
	}
	if input.SubsidyStatus != nil {
		lead.SubsidyStatus = input.SubsidyStatus
	}
	if input.SubsidyDocuments != nil {
		lead.SubsidyDocuments = input.SubsidyDocuments
	}
	if input.InstallationDate != nil {
		lead.InstallationDate = input.InstallationDate
	}
	if input.InstallationTeam != nil {
		lead.InstallationTeam = input.InstallationTeam
	}
	if input.InstallationNotes != nil {
		lead.InstallationNotes = input.InstallationNotes
	}
	if input.InstallationPhotos != nil {
		lead.InstallationPhotos = input.InstallationPhotos
	}
	if input.TotalAmount != nil {
		lead.TotalAmount = *input.TotalAmount
	}
	if input.PaidAmount != nil {
		lead.PaidAmount = *input.PaidAmount
	}
	if input.NextFollowupDate != nil {
		lead.NextFollowupDate = input.NextFollowupDate
	}
}
