package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-crm/internal/api/dto"
	"github.com/spec-kit/field-crm/internal/auth"
	"github.com/spec-kit/field-crm/internal/domain"
	"github.com/spec-kit/field-crm/internal/service"
	apperrors "github.com/spec-kit/field-crm/pkg/util/errorutil"
)

// ProposalsHandler manages proposal endpoints.
type ProposalsHandler struct {
	service *service.ProposalService
}

// NewProposalsHandler constructs handler.
func NewProposalsHandler(proposalService *service.ProposalService) *ProposalsHandler {
	return &ProposalsHandler{service: proposalService}
}

// Create POST /proposals.
func (h *ProposalsHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateProposalRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	proposal, err := h.service.Create(c.Context(), actor, service.ProposalCreateInput{
		CustomerID:          req.CustomerID,
		PlantCapacity:       req.PlantCapacity,
		Price:               req.Price,
		Subsidy:             req.Subsidy,
		InstallationAddress: req.InstallationAddress,
		Notes:               req.Notes,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": proposalResponse(proposal)})
}

// List GET /proposals.
func (h *ProposalsHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	proposals, err := h.service.List(c.Context(), actor)
	if err != nil {
		return err
	}
	items := make([]dto.ProposalResponse, 0, len(proposals))
	for i := range proposals {
		items = append(items, proposalResponse(&proposals[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /proposals/:id.
func (h *ProposalsHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	proposal, err := h.service.Get(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": proposalResponse(proposal)})
}

// Update PUT /proposals/:id.
func (h *ProposalsHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateProposalRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	proposal, err := h.service.Update(c.Context(), actor, c.Params("id"), service.ProposalUpdateInput{
		PlantCapacity:       req.PlantCapacity,
		Price:               req.Price,
		Subsidy:             req.Subsidy,
		InstallationAddress: req.InstallationAddress,
		Status:              req.Status,
		Notes:               req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": proposalResponse(proposal)})
}

// Delete DELETE /proposals/:id.
func (h *ProposalsHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "proposal deleted"}})
}

func proposalResponse(proposal *domain.Proposal) dto.ProposalResponse {
	return dto.ProposalResponse{
		ID:                  proposal.ID,
		CustomerID:          proposal.CustomerID,
		SalesPersonID:       proposal.SalesPersonID,
		PlantCapacity:       proposal.PlantCapacity,
		Price:               proposal.Price,
		Subsidy:             proposal.Subsidy,
		FinalPrice:          proposal.FinalPrice,
		InstallationAddress: proposal.InstallationAddress,
		Status:              proposal.Status,
		Notes:               proposal.Notes,
		CreatedAt:           proposal.CreatedAt,
		UpdatedAt:           proposal.UpdatedAt,
	}
}
