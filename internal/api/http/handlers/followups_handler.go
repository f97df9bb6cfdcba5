package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-crm/internal/api/dto"
	"github.com/spec-kit/field-crm/internal/auth"
	"github.com/spec-kit/field-crm/internal/domain"
	"github.com/spec-kit/field-crm/internal/service"
	apperrors "github.com/spec-kit/field-crm/pkg/util/errorutil"
)

// FollowupsHandler manages followup endpoints.
type FollowupsHandler struct {
	service *service.FollowupService
}

// NewFollowupsHandler constructs handler.
func NewFollowupsHandler(followupService *service.FollowupService) *FollowupsHandler {
	return &FollowupsHandler{service: followupService}
}

// Add POST /{kind}-leads/:id/followups. The route group fixes the kind.
func (h *FollowupsHandler) Add(kind domain.WorkItemKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := auth.ActorFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		var req dto.CreateFollowupRequest
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
		if err := dto.Validate(req); err != nil {
			return err
		}

		followup, err := h.service.Add(c.Context(), actor, kind, c.Params("id"), service.FollowupCreateInput{
			FollowupDate:     req.FollowupDate,
			Notes:            req.Notes,
			NextFollowupDate: req.NextFollowupDate,
		})
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": followupResponse(followup)})
	}
}

// ListByLead GET /{kind}-leads/:id/followups.
func (h *FollowupsHandler) ListByLead(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	followups, err := h.service.ListByLead(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": followupResponses(followups)})
}

// List GET /followups. Supports status, leadKind and today filters.
func (h *FollowupsHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var input service.FollowupListInput
	if v := c.Query("status"); v != "" {
		status := domain.FollowupStatus(v)
		input.Status = &status
	}
	if v := c.Query("leadKind"); v != "" {
		kind := domain.WorkItemKind(v)
		input.LeadKind = &kind
	}
	input.Today = c.QueryBool("today")

	followups, err := h.service.List(c.Context(), actor, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": followupResponses(followups)})
}

// Get GET /followups/:id.
func (h *FollowupsHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	followup, err := h.service.Get(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": followupResponse(followup)})
}

// Update PUT /followups/:id.
func (h *FollowupsHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateFollowupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	followup, err := h.service.Update(c.Context(), actor, c.Params("id"), service.FollowupUpdateInput{
		FollowupDate:     req.FollowupDate,
		Notes:            req.Notes,
		CustomerResponse: req.CustomerResponse,
		ResponseNotes:    req.ResponseNotes,
		NextFollowupDate: req.NextFollowupDate,
		Status:           req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": followupResponse(followup)})
}

// Delete DELETE /followups/:id.
func (h *FollowupsHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "followup deleted"}})
}

func followupResponse(followup *domain.Followup) dto.FollowupResponse {
	return dto.FollowupResponse{
		ID:               followup.ID,
		LeadID:           followup.LeadID,
		LeadKind:         followup.LeadKind,
		CustomerName:     followup.CustomerName,
		CustomerPhone:    followup.CustomerPhone,
		FollowupDate:     followup.FollowupDate,
		Notes:            followup.Notes,
		CustomerResponse: followup.CustomerResponse,
		ResponseNotes:    followup.ResponseNotes,
		NextFollowupDate: followup.NextFollowupDate,
		Status:           followup.Status,
		CreatedBy:        followup.CreatedBy,
		CreatedAt:        followup.CreatedAt,
		UpdatedAt:        followup.UpdatedAt,
	}
}

func followupResponses(followups []domain.Followup) []dto.FollowupResponse {
	items := make([]dto.FollowupResponse, 0, len(followups))
	for i := range followups {
		items = append(items, followupResponse(&followups[i]))
	}
	return items
}
