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
	apperrors "github.com/spec-kit/field-crm/pkg/util/errorutil"
)

// TicketService coordinates post-installation plant tickets.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// TicketDependencies bundles collaborators.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// TicketCreateInput describes a new plant ticket. TicketID is caller-supplied
// and must be unique across the system.
type TicketCreateInput struct {
	TicketID   string
	ProposalID string
	Issue      string
	Priority   domain.Priority
}

// TicketUpdateInput is a merged partial update. Setting AssignedTo without an
// explicit Status moves the ticket to In Progress.
type TicketUpdateInput struct {
	Issue      *string
	Priority   *domain.Priority
	AssignedTo *string
	Status     *domain.TicketStatus
}

// TicketListInput describes listing filters.
type TicketListInput struct {
	Status   *domain.TicketStatus
	Priority *domain.Priority
}

// Create registers a ticket, rejecting duplicate ticket ids with Conflict.
func (s *TicketService) Create(ctx context.Context, actor *domain.User, input TicketCreateInput) (*domain.PlantTicket, error) {
	missing := map[string]any{}
	for field, v := range map[string]string{
		"ticketId":   input.TicketID,
		"proposalId": input.ProposalID,
		"issue":      input.Issue,
	} {
		if strings.TrimSpace(v) == "" {
			missing[field] = "required"
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", missing)
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": priority})
	}

	existing, err := s.tickets.GetByTicketID(ctx, input.TicketID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}
	if existing != nil {
		return nil, apperrors.NewConflict("ticket id already exists", map[string]any{"ticketId": input.TicketID})
	}

	ticket := &domain.PlantTicket{
		TicketID:   strings.TrimSpace(input.TicketID),
		ProposalID: input.ProposalID,
		Issue:      strings.TrimSpace(input.Issue),
		Priority:   priority,
		CreatedBy:  actor.ID,
		Status:     domain.TicketStatusOpen,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// Get fetches a single ticket.
func (s *TicketService) Get(ctx context.Context, actor *domain.User, id string) (*domain.PlantTicket, error) {
	return s.fetch(ctx, id)
}

// List returns tickets, newest first. Tickets carry no per-user scoping;
// any authenticated staff member sees them all.
func (s *TicketService) List(ctx context.Context, actor *domain.User, input TicketListInput) ([]domain.PlantTicket, error) {
	result, err := s.tickets.List(ctx, repository.TicketFilter{
		Status:   input.Status,
		Priority: input.Priority,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// Update applies a merged partial update. An assignment without an explicit
// status forces In Progress; Resolved stamps ResolvedAt exactly once.
func (s *TicketService) Update(ctx context.Context, actor *domain.User, id string, input TicketUpdateInput) (*domain.PlantTicket, error) {
	ticket, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := ticket.Status
	if input.Status != nil {
		if !domain.ValidTicketStatus(*input.Status) {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": *input.Status})
		}
		ticket.Status = *input.Status
	}
	if input.Priority != nil {
		if !domain.ValidPriority(*input.Priority) {
			return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": *input.Priority})
		}
		ticket.Priority = *input.Priority
	}
	if input.Issue != nil {
		ticket.Issue = *input.Issue
	}
	if input.AssignedTo != nil {
		ticket.AssignedTo = input.AssignedTo
		if input.Status == nil {
			ticket.Status = domain.TicketStatusInProgress
		}
	}
	if ticket.Status == domain.TicketStatusResolved && ticket.ResolvedAt == nil {
		now := s.now()
		ticket.ResolvedAt = &now
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	if ticket.Status != oldStatus {
		event := events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventStatusChanged,
			Kind:      domain.KindPlantTicket,
			ItemID:    ticket.ID,
			ActorID:   actor.ID,
			Timestamp: s.now(),
			Payload:   events.StatusChangedPayload{OldStatus: string(oldStatus), NewStatus: string(ticket.Status)},
		}
		_ = s.dispatcher.Publish(ctx, event)
	}
	return ticket, nil
}

// Delete removes a ticket. Admin-only; second delete reports NotFound.
func (s *TicketService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if err := access.RequireAdmin(actor); err != nil {
		return err
	}
	if err := s.tickets.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *TicketService) fetch(ctx context.Context, id string) (*domain.PlantTicket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}
