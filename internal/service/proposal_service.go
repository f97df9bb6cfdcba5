package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-crm/internal/access"
	"github.com/spec-kit/field-crm/internal/domain"
	"github.com/spec-kit/field-crm/internal/repository"
	apperrors "github.com/spec-kit/field-crm/pkg/util/errorutil"
)

// ProposalService manages priced plant offers.
type ProposalService struct {
	proposals repository.ProposalRepository
	customers repository.CustomerRepository
}

// ProposalDependencies bundles collaborators.
type ProposalDependencies struct {
	ProposalRepo repository.ProposalRepository
	CustomerRepo repository.CustomerRepository
}

// NewProposalService constructs the service.
func NewProposalService(deps ProposalDependencies) *ProposalService {
	return &ProposalService{proposals: deps.ProposalRepo, customers: deps.CustomerRepo}
}

// ProposalCreateInput describes a new proposal.
type ProposalCreateInput struct {
	CustomerID          string
	PlantCapacity       float64
	Price               float64
	Subsidy             float64
	InstallationAddress string
	Notes               *string
}

// ProposalUpdateInput is a partial update. FinalPrice is recomputed whenever
// price or subsidy moves.
type ProposalUpdateInput struct {
	PlantCapacity       *float64
	Price               *float64
	Subsidy             *float64
	InstallationAddress *string
	Status              *domain.ProposalStatus
	Notes               *string
}

// Create registers a proposal owned by the acting sales person.
func (s *ProposalService) Create(ctx context.Context, actor *domain.User, input ProposalCreateInput) (*domain.Proposal, error) {
	if strings.TrimSpace(input.CustomerID) == "" {
		return nil, apperrors.NewValidationError("customer id required", nil)
	}
	if input.PlantCapacity <= 0 || input.Price <= 0 {
		return nil, apperrors.NewValidationError("plant capacity and price must be positive", nil)
	}

	if _, err := s.customers.GetByID(ctx, input.CustomerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("customer", nil)
		}
		return nil, apperrors.MapError(err)
	}

	proposal := &domain.Proposal{
		CustomerID:          input.CustomerID,
		SalesPersonID:       actor.ID,
		PlantCapacity:       input.PlantCapacity,
		Price:               input.Price,
		Subsidy:             input.Subsidy,
		FinalPrice:          domain.ProposalFinalPrice(input.Price, input.Subsidy),
		InstallationAddress: strings.TrimSpace(input.InstallationAddress),
		Status:              domain.ProposalStatusDraft,
		Notes:               input.Notes,
	}
	if err := s.proposals.Create(ctx, proposal); err != nil {
		return nil, apperrors.MapError(err)
	}
	return proposal, nil
}

// List returns proposals: all of them for Admin, own for a sales person.
func (s *ProposalService) List(ctx context.Context, actor *domain.User) ([]domain.Proposal, error) {
	result, err := s.proposals.List(ctx, access.ScopeOwner(actor))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// Get fetches one proposal; non-admin actors see only their own.
func (s *ProposalService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Proposal, error) {
	proposal, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && proposal.SalesPersonID != actor.ID {
		return nil, apperrors.NewForbidden("access denied")
	}
	return proposal, nil
}

// Update applies a partial update.
func (s *ProposalService) Update(ctx context.Context, actor *domain.User, id string, input ProposalUpdateInput) (*domain.Proposal, error) {
	proposal, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Status != nil {
		if !domain.ValidProposalStatus(*input.Status) {
			return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": *input.Status})
		}
		proposal.Status = *input.Status
	}
	if input.PlantCapacity != nil {
		proposal.PlantCapacity = *input.PlantCapacity
	}
	if input.Price != nil {
		proposal.Price = *input.Price
	}
	if input.Subsidy != nil {
		proposal.Subsidy = *input.Subsidy
	}
	if input.Price != nil || input.Subsidy != nil {
		proposal.FinalPrice = domain.ProposalFinalPrice(proposal.Price, proposal.Subsidy)
	}
	if input.InstallationAddress != nil {
		proposal.InstallationAddress = *input.InstallationAddress
	}
	if input.Notes != nil {
		proposal.Notes = input.Notes
	}

	if err := s.proposals.Update(ctx, proposal); err != nil {
		return nil, apperrors.MapError(err)
	}
	return proposal, nil
}

// Delete removes a proposal. Admin-only; second delete reports NotFound.
func (s *ProposalService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if err := access.RequireAdmin(actor); err != nil {
		return err
	}
	if err := s.proposals.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("proposal", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *ProposalService) fetch(ctx context.Context, id string) (*domain.Proposal, error) {
	proposal, err := s.proposals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("proposal", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return proposal, nil
}
