package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-crm/internal/access"
	"github.com/spec-kit/field-crm/internal/domain"
	"github.com/spec-kit/field-crm/internal/events"
	"github.com/spec-kit/field-crm/internal/repository"
	apperrors "github.com/spec-kit/field-crm/pkg/util/errorutil"
)

// FollowupService links scheduled customer contacts to leads.
type FollowupService struct {
	followups  repository.FollowupRepository
	leads      repository.LeadRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// FollowupDependencies bundles collaborators for the followup service.
type FollowupDependencies struct {
	FollowupRepo repository.FollowupRepository
	LeadRepo     repository.LeadRepository
	Dispatcher   events.Dispatcher
}

// NewFollowupService constructs the service.
func NewFollowupService(deps FollowupDependencies) *FollowupService {
	return &FollowupService{
		followups:  deps.FollowupRepo,
		leads:      deps.LeadRepo,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// FollowupCreateInput describes a new scheduled contact.
type FollowupCreateInput struct {
	FollowupDate     time.Time
	Notes            *string
	NextFollowupDate *time.Time
}

// FollowupUpdateInput is a partial update; nil leaves a field unchanged.
type FollowupUpdateInput struct {
	FollowupDate     *time.Time
	Notes            *string
	CustomerResponse *domain.CustomerResponse
	ResponseNotes    *string
	NextFollowupDate *time.Time
	Status           *domain.FollowupStatus
}

// FollowupListInput describes listing filters.
type FollowupListInput struct {
	Status   *domain.FollowupStatus
	LeadKind *domain.WorkItemKind
	Today    bool
}

// Add schedules a followup against an existing lead. Customer name and
// phone are copied from the lead at this moment; the lead's
// nextFollowupDate is written after the followup row lands, so the two
// records can diverge only within the request.
func (s *FollowupService) Add(ctx context.Context, actor *domain.User, kind domain.WorkItemKind, leadID string, input FollowupCreateInput) (*domain.Followup, error) {
	if input.FollowupDate.IsZero() {
		return nil, apperrors.NewValidationError("followup date required", nil)
	}

	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("lead", nil)
		}
		return nil, apperrors.MapError(err)
	}
	if lead.Kind != kind {
		return nil, apperrors.NewNotFound("lead", nil)
	}
	if err := access.Check(actor, lead.Kind, lead.AssignedTo); err != nil {
		return nil, err
	}

	followup := &domain.Followup{
		LeadID:           lead.ID,
		LeadKind:         lead.Kind,
		CustomerName:     lead.CustomerName,
		CustomerPhone:    lead.Phone,
		FollowupDate:     input.FollowupDate,
		Notes:            input.Notes,
		NextFollowupDate: input.NextFollowupDate,
		Status:           domain.FollowupPending,
		CreatedBy:        actor.ID,
	}
	if err := s.followups.Create(ctx, followup); err != nil {
		return nil, apperrors.MapError(err)
	}

	if input.NextFollowupDate != nil {
		if err := s.propagate(ctx, lead.ID, input.NextFollowupDate); err != nil {
			return nil, err
		}
	}

	event := events.Event{
		ID:      uuid.NewString(),
		Type:    events.EventFollowupScheduled,
		Kind:    lead.Kind,
		ItemID:  lead.ID,
		ActorID: actor.ID,
		Payload: events.FollowupScheduledPayload{
			FollowupID:   followup.ID,
			FollowupDate: followup.FollowupDate,
		},
		Timestamp: s.now(),
	}
	_ = s.dispatcher.Publish(ctx, event)

	return followup, nil
}

// Get fetches a single followup; Sales actors see only the ones they created.
func (s *FollowupService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Followup, error) {
	followup, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(actor, followup); err != nil {
		return nil, err
	}
	return followup, nil
}

// Update applies a partial update and re-propagates nextFollowupDate to the
// parent lead when it changed. The parent may have been deleted in the
// meantime; the followup update still stands.
func (s *FollowupService) Update(ctx context.Context, actor *domain.User, id string, input FollowupUpdateInput) (*domain.Followup, error) {
	followup, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(actor, followup); err != nil {
		return nil, err
	}

	if input.Status != nil && !domain.ValidFollowupStatus(*input.Status) {
		return nil, apperrors.NewValidationError("invalid followup status", map[string]any{"status": *input.Status})
	}
	if input.CustomerResponse != nil && !domain.ValidCustomerResponse(*input.CustomerResponse) {
		return nil, apperrors.NewValidationError("invalid customer response", map[string]any{"customerResponse": *input.CustomerResponse})
	}

	if input.FollowupDate != nil {
		followup.FollowupDate = *input.FollowupDate
	}
	if input.Notes != nil {
		followup.Notes = input.Notes
	}
	if input.CustomerResponse != nil {
		followup.CustomerResponse = input.CustomerResponse
	}
	if input.ResponseNotes != nil {
		followup.ResponseNotes = input.ResponseNotes
	}
	if input.NextFollowupDate != nil {
		followup.NextFollowupDate = input.NextFollowupDate
	}
	if input.Status != nil {
		followup.Status = *input.Status
	}

	if err := s.followups.Update(ctx, followup); err != nil {
		return nil, apperrors.MapError(err)
	}

	if input.NextFollowupDate != nil {
		if err := s.propagate(ctx, followup.LeadID, input.NextFollowupDate); err != nil {
			return nil, err
		}
	}
	return followup, nil
}

// List returns followups visible to the actor, earliest due first. Today
// narrows the range to the actor's current local calendar day.
func (s *FollowupService) List(ctx context.Context, actor *domain.User, input FollowupListInput) ([]domain.Followup, error) {
	filter := repository.FollowupFilter{
		CreatedBy: access.ScopeOwner(actor),
		Status:    input.Status,
		LeadKind:  input.LeadKind,
	}
	if input.Today {
		now := s.now()
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end := start.Add(24*time.Hour - time.Nanosecond)
		filter.DueFrom = &start
		filter.DueTo = &end
	}

	result, err := s.followups.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// ListByLead returns the followup history of one lead, latest first. Sales
// actors get only the entries they created.
func (s *FollowupService) ListByLead(ctx context.Context, actor *domain.User, leadID string) ([]domain.Followup, error) {
	result, err := s.followups.ListByLead(ctx, leadID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if actor.Role == domain.RoleAdmin {
		return result, nil
	}
	scoped := result[:0]
	for _, followup := range result {
		if followup.CreatedBy == actor.ID {
			scoped = append(scoped, followup)
		}
	}
	return scoped, nil
}

// Delete removes a followup. Admin-only; second delete reports NotFound.
func (s *FollowupService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if err := access.RequireAdmin(actor); err != nil {
		return err
	}
	if err := s.followups.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("followup", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *FollowupService) fetch(ctx context.Context, id string) (*domain.Followup, error) {
	followup, err := s.followups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("followup", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return followup, nil
}

// checkOwner scopes followups by creator rather than assignee.
func (s *FollowupService) checkOwner(actor *domain.User, followup *domain.Followup) error {
	if actor.Role == domain.RoleAdmin {
		return nil
	}
	if actor.Role == domain.RoleSales && followup.CreatedBy == actor.ID {
		return nil
	}
	return apperrors.NewForbidden("access denied")
}

// propagate writes the followup's next date onto the parent lead. An absent
// parent is tolerated: followups are weak references and may outlive their
// lead.
func (s *FollowupService) propagate(ctx context.Context, leadID string, date *time.Time) error {
	if err := s.leads.SetNextFollowupDate(ctx, leadID, date); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return apperrors.MapError(err)
	}
	return nil
}
