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
	"github.com/spec-kit/field-crm/internal/storage"
	apperrors "github.com/spec-kit/field-crm/pkg/util/errorutil"
)

// ServiceRequestService coordinates field repair jobs.
type ServiceRequestService struct {
	requests   repository.ServiceRequestRepository
	sequences  sequence.Allocator
	files      storage.FileStore
	dispatcher events.Dispatcher
	now        func() time.Time
}

// ServiceRequestDependencies bundles collaborators.
type ServiceRequestDependencies struct {
	RequestRepo repository.ServiceRequestRepository
	Sequences   sequence.Allocator
	Files       storage.FileStore
	Dispatcher  events.Dispatcher
}

// NewServiceRequestService constructs the service.
func NewServiceRequestService(deps ServiceRequestDependencies) *ServiceRequestService {
	return &ServiceRequestService{
		requests:   deps.RequestRepo,
		sequences:  deps.Sequences,
		files:      deps.Files,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// ServiceRequestCreateInput describes a new repair job.
type ServiceRequestCreateInput struct {
	CustomerName     string
	Phone            string
	Address          string
	City             string
	LinkedLeadID     *string
	LinkedLeadKind   *domain.WorkItemKind
	IssueType        domain.IssueType
	IssueDescription string
	Priority         domain.Priority
	ChargeType       domain.ChargeType
	ChargeAmount     *float64
}

// ServiceRequestUpdateInput is a merged partial update.
type ServiceRequestUpdateInput struct {
	CustomerName     *string
	Phone            *string
	Address          *string
	City             *string
	IssueType        *domain.IssueType
	IssueDescription *string
	Priority         *domain.Priority
	Status           *domain.ServiceStatus
	ServiceDate      *time.Time
	ServiceNotes     *string
	ResolutionNotes  *string
}

// ServiceRequestListInput describes listing filters.
type ServiceRequestListInput struct {
	Status     *domain.ServiceStatus
	ChargeType *domain.ChargeType
	Priority   *domain.Priority
}

// PhotoStage names the two photo arrays on a service request.
type PhotoStage string

const (
	PhotoBefore PhotoStage = "before"
	PhotoAfter  PhotoStage = "after"
)

// PhotoUpload carries one uploaded file.
type PhotoUpload struct {
	Name string
	Data []byte
}

// Create registers a repair job and mints its human-readable service id.
// A counter failure aborts the create before anything is written.
func (s *ServiceRequestService) Create(ctx context.Context, actor *domain.User, input ServiceRequestCreateInput) (*domain.ServiceRequest, error) {
	if err := validateServiceCreate(input); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": priority})
	}

	serviceID, err := s.sequences.Next(ctx, sequence.PrefixService)
	if err != nil {
		return nil, err
	}

	sr := &domain.ServiceRequest{
		ServiceID:        serviceID,
		CustomerName:     strings.TrimSpace(input.CustomerName),
		Phone:            strings.TrimSpace(input.Phone),
		Address:          strings.TrimSpace(input.Address),
		City:             strings.TrimSpace(input.City),
		LinkedLeadID:     input.LinkedLeadID,
		LinkedLeadKind:   input.LinkedLeadKind,
		IssueType:        input.IssueType,
		IssueDescription: strings.TrimSpace(input.IssueDescription),
		Priority:         priority,
		ChargeType:       input.ChargeType,
		CreatedBy:        actor.ID,
		Status:           domain.ServiceStatusOpen,
	}

	switch input.ChargeType {
	case domain.ChargeFree:
		sr.ChargeAmount = 0
		sr.PaymentStatus = domain.ServicePaymentNotApplicable
	case domain.ChargePaid:
		if input.ChargeAmount != nil {
			sr.ChargeAmount = *input.ChargeAmount
		}
		sr.PaymentStatus = domain.ServicePaymentPending
	}

	if err := s.requests.Create(ctx, sr); err != nil {
		return nil, apperrors.MapError(err)
	}
	return sr, nil
}

// Get fetches a single request within the actor's scope.
func (s *ServiceRequestService) Get(ctx context.Context, actor *domain.User, id string) (*domain.ServiceRequest, error) {
	sr, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Check(actor, domain.KindServiceRequest, sr.AssignedTo); err != nil {
		return nil, err
	}
	return sr, nil
}

// List returns requests visible to the actor, newest first.
func (s *ServiceRequestService) List(ctx context.Context, actor *domain.User, input ServiceRequestListInput) ([]domain.ServiceRequest, error) {
	filter := repository.ServiceRequestFilter{
		AssignedTo: access.ScopeOwner(actor),
		Status:     input.Status,
		ChargeType: input.ChargeType,
		Priority:   input.Priority,
	}
	result, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// Update applies a merged partial update. A transition to Resolved stamps
// ResolvedAt exactly once; re-resolving keeps the original timestamp.
func (s *ServiceRequestService) Update(ctx context.Context, actor *domain.User, id string, input ServiceRequestUpdateInput) (*domain.ServiceRequest, error) {
	sr, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Check(actor, domain.KindServiceRequest, sr.AssignedTo); err != nil {
		return nil, err
	}

	oldStatus := sr.Status
	if input.Status != nil {
		if !domain.ValidServiceStatus(*input.Status) {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": *input.Status})
		}
		sr.Status = *input.Status
		if sr.Status == domain.ServiceStatusResolved && sr.ResolvedAt == nil {
			now := s.now()
			sr.ResolvedAt = &now
		}
	}
	if input.IssueType != nil {
		if !domain.ValidIssueType(*input.IssueType) {
			return nil, apperrors.NewValidationError("invalid issue type", map[string]any{"issueType": *input.IssueType})
		}
		sr.IssueType = *input.IssueType
	}
	if input.Priority != nil {
		if !domain.ValidPriority(*input.Priority) {
			return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": *input.Priority})
		}
		sr.Priority = *input.Priority
	}
	if input.CustomerName != nil {
		sr.CustomerName = *input.CustomerName
	}
	if input.Phone != nil {
		sr.Phone = *input.Phone
	}
	if input.Address != nil {
		sr.Address = *input.Address
	}
	if input.City != nil {
		sr.City = *input.City
	}
	if input.IssueDescription != nil {
		sr.IssueDescription = *input.IssueDescription
	}
	if input.ServiceDate != nil {
		sr.ServiceDate = input.ServiceDate
	}
	if input.ServiceNotes != nil {
		sr.ServiceNotes = input.ServiceNotes
	}
	if input.ResolutionNotes != nil {
		sr.ResolutionNotes = input.ResolutionNotes
	}

	if err := s.requests.Update(ctx, sr); err != nil {
		return nil, apperrors.MapError(err)
	}

	if input.Status != nil && sr.Status != oldStatus {
		s.publish(ctx, events.Event{
			Type:    events.EventStatusChanged,
			Kind:    domain.KindServiceRequest,
			ItemID:  sr.ID,
			ActorID: actor.ID,
			Payload: events.StatusChangedPayload{OldStatus: string(oldStatus), NewStatus: string(sr.Status)},
		})
	}
	return sr, nil
}

// Assign hands the job to a technician. Admin-only; forces status Assigned.
func (s *ServiceRequestService) Assign(ctx context.Context, actor *domain.User, id, assigneeID string) (*domain.ServiceRequest, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(assigneeID) == "" {
		return nil, apperrors.NewValidationError("assignee id required", nil)
	}
	sr, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	sr.AssignedTo = &assigneeID
	sr.Status = domain.ServiceStatusAssigned
	if err := s.requests.Update(ctx, sr); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventServiceAssigned,
		Kind:    domain.KindServiceRequest,
		ItemID:  sr.ID,
		ActorID: actor.ID,
		Payload: events.AssignedPayload{AssigneeID: assigneeID},
	})
	return sr, nil
}

// AddPayment records the collected charge and closes the job in the same
// write. Free jobs never accept payments.
func (s *ServiceRequestService) AddPayment(ctx context.Context, actor *domain.User, id string, amount float64, mode domain.PaymentMode) (*domain.ServiceRequest, error) {
	if amount <= 0 {
		return nil, apperrors.NewValidationError("payment amount must be positive", map[string]any{"amount": amount})
	}
	if !domain.ValidPaymentMode(mode) {
		return nil, apperrors.NewValidationError("invalid payment mode", map[string]any{"paymentMode": mode})
	}

	sr, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Check(actor, domain.KindServiceRequest, sr.AssignedTo); err != nil {
		return nil, err
	}
	if sr.ChargeType == domain.ChargeFree {
		return nil, apperrors.NewValidationError("cannot record payment on a free service", nil)
	}

	now := s.now()
	sr.ChargeAmount = amount
	sr.PaymentStatus = domain.ServicePaymentPaid
	sr.PaymentMode = &mode
	sr.PaymentDate = &now
	sr.Status = domain.ServiceStatusClosed

	if err := s.requests.Update(ctx, sr); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventPaymentRecorded,
		Kind:    domain.KindServiceRequest,
		ItemID:  sr.ID,
		ActorID: actor.ID,
		Payload: events.PaymentRecordedPayload{Amount: amount, Mode: mode},
	})
	return sr, nil
}

// UploadPhotos stores the files and appends their paths to the requested
// stage's photo array.
func (s *ServiceRequestService) UploadPhotos(ctx context.Context, actor *domain.User, id string, stage PhotoStage, uploads []PhotoUpload) (*domain.ServiceRequest, error) {
	if stage != PhotoBefore && stage != PhotoAfter {
		return nil, apperrors.NewValidationError("photo stage must be before or after", map[string]any{"stage": stage})
	}
	if len(uploads) == 0 {
		return nil, apperrors.NewValidationError("no files uploaded", nil)
	}

	sr, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Check(actor, domain.KindServiceRequest, sr.AssignedTo); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		path, err := s.files.Save(ctx, upload.Name, upload.Data)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}

	if stage == PhotoBefore {
		sr.BeforePhotos = append(sr.BeforePhotos, paths...)
	} else {
		sr.AfterPhotos = append(sr.AfterPhotos, paths...)
	}

	if err := s.requests.Update(ctx, sr); err != nil {
		return nil, apperrors.MapError(err)
	}
	return sr, nil
}

// Delete removes a request. Admin-only; second delete reports NotFound.
func (s *ServiceRequestService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if err := access.RequireAdmin(actor); err != nil {
		return err
	}
	if err := s.requests.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("service request", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *ServiceRequestService) fetch(ctx context.Context, id string) (*domain.ServiceRequest, error) {
	sr, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service request", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return sr, nil
}

func (s *ServiceRequestService) publish(ctx context.Context, event events.Event) {
	event.ID = uuid.NewString()
	event.Timestamp = s.now()
	_ = s.dispatcher.Publish(ctx, event)
}

func validateServiceCreate(input ServiceRequestCreateInput) error {
	missing := map[string]any{}
	for field, v := range map[string]string{
		"customerName":     input.CustomerName,
		"phone":            input.Phone,
		"address":          input.Address,
		"city":             input.City,
		"issueDescription": input.IssueDescription,
	} {
		if strings.TrimSpace(v) == "" {
			missing[field] = "required"
		}
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("missing required fields", missing)
	}
	if !domain.ValidIssueType(input.IssueType) {
		return apperrors.NewValidationError("invalid issue type", map[string]any{"issueType": input.IssueType})
	}
	if input.ChargeType != domain.ChargeFree && input.ChargeType != domain.ChargePaid {
		return apperrors.NewValidationError("charge type must be Free or Paid", map[string]any{"chargeType": input.ChargeType})
	}
	return nil
}
