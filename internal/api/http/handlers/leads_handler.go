package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-crm/internal/api/dto"
	"github.com/spec-kit/field-crm/internal/auth"
	"github.com/spec-kit/field-crm/internal/domain"
	"github.com/spec-kit/field-crm/internal/service"
	apperrors "github.com/spec-kit/field-crm/pkg/util/errorutil"
)

// LeadsHandler serves one sales pipeline; the solar and sprinkler route
// groups each mount their own instance.
type LeadsHandler struct {
	service *service.LeadService
	kind    domain.WorkItemKind
}

// NewLeadsHandler constructs handler for a pipeline kind.
func NewLeadsHandler(leadService *service.LeadService, kind domain.WorkItemKind) *LeadsHandler {
	return &LeadsHandler{service: leadService, kind: kind}
}

// Create POST /{kind}-leads.
func (h *LeadsHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	lead, err := h.service.Create(c.Context(), actor, h.kind, service.LeadCreateInput{
		CustomerName:   req.CustomerName,
		Phone:          req.Phone,
		AltPhone:       req.AltPhone,
		Email:          req.Email,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		Pincode:        req.Pincode,
		SystemSize:     req.SystemSize,
		ConnectionType: req.ConnectionType,
		CurrentBill:    req.CurrentBill,
		RoofType:       req.RoofType,
		LandSize:       req.LandSize,
		CropType:       req.CropType,
		WaterSource:    req.WaterSource,
		PipeLength:     req.PipeLength,
		LeadSource:     req.LeadSource,
		ReferredBy:     req.ReferredBy,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": leadResponse(lead)})
}

// List GET /{kind}-leads.
func (h *LeadsHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var input service.LeadListInput
	if v := c.Query("status"); v != "" {
		status := domain.LeadStatus(v)
		input.Status = &status
	}
	if v := c.Query("city"); v != "" {
		city := v
		input.City = &city
	}

	leads, err := h.service.List(c.Context(), actor, h.kind, input)
	if err != nil {
		return err
	}
	items := make([]dto.LeadResponse, 0, len(leads))
	for i := range leads {
		items = append(items, leadResponse(&leads[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /{kind}-leads/:id.
func (h *LeadsHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	lead, err := h.service.Get(c.Context(), actor, h.kind, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leadResponse(lead)})
}

// Update PUT /{kind}-leads/:id.
func (h *LeadsHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	lead, err := h.service.Update(c.Context(), actor, h.kind, c.Params("id"), service.LeadUpdateInput{
		CustomerName:       req.CustomerName,
		Phone:              req.Phone,
		AltPhone:           req.AltPhone,
		Email:              req.Email,
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		Pincode:            req.Pincode,
		SystemSize:         req.SystemSize,
		ConnectionType:     req.ConnectionType,
		CurrentBill:        req.CurrentBill,
		RoofType:           req.RoofType,
		LandSize:           req.LandSize,
		CropType:           req.CropType,
		WaterSource:        req.WaterSource,
		PipeLength:         req.PipeLength,
		LeadSource:         req.LeadSource,
		ReferredBy:         req.ReferredBy,
		AssignedTo:         req.AssignedTo,
		Status:             req.Status,
		VisitDate:          req.VisitDate,
		VisitNotes:         req.VisitNotes,
		VisitPhotos:        req.VisitPhotos,
		QuotationAmount:    req.QuotationAmount,
		QuotationFile:      req.QuotationFile,
		QuotationSentAt:    req.QuotationSentAt,
		DealDoneAt:         req.DealDoneAt,
		AdvanceAmount:      req.AdvanceAmount,
		PortalStatus:       req.PortalStatus,
		PortalDocuments:    req.PortalDocuments,
		MeterNumber:        req.MeterNumber,
		MeterAppliedAt:     req.MeterAppliedAt,
		MeterInstalledAt:   req.MeterInstalledAt,
		SubsidyAmount:      req.SubsidyAmount,
		SubsidyStatus:      req.SubsidyStatus,
		SubsidyDocuments:   req.SubsidyDocuments,
		InstallationDate:   req.InstallationDate,
		InstallationTeam:   req.InstallationTeam,
		InstallationNotes:  req.InstallationNotes,
		InstallationPhotos: req.InstallationPhotos,
		TotalAmount:        req.TotalAmount,
		PaidAmount:         req.PaidAmount,
		NextFollowupDate:   req.NextFollowupDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leadResponse(lead)})
}

// Assign PATCH /{kind}-leads/:id/assign.
func (h *LeadsHandler) Assign(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	lead, err := h.service.Assign(c.Context(), actor, h.kind, c.Params("id"), req.AssignedTo)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leadResponse(lead)})
}

// AddReview POST /sprinkler-leads/:id/review. Registered only on the
// sprinkler group.
func (h *LeadsHandler) AddReview(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AddReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	lead, err := h.service.AddReview(c.Context(), actor, c.Params("id"), req.Rating, req.Review)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leadResponse(lead)})
}

// Delete DELETE /{kind}-leads/:id.
func (h *LeadsHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.Context(), actor, h.kind, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "lead deleted"}})
}

func leadResponse(lead *domain.Lead) dto.LeadResponse {
	return dto.LeadResponse{
		ID:                 lead.ID,
		Kind:               lead.Kind,
		CustomerName:       lead.CustomerName,
		Phone:              lead.Phone,
		AltPhone:           lead.AltPhone,
		Email:              lead.Email,
		Address:            lead.Address,
		City:               lead.City,
		State:              lead.State,
		Pincode:            lead.Pincode,
		SystemSize:         lead.SystemSize,
		ConnectionType:     lead.ConnectionType,
		CurrentBill:        lead.CurrentBill,
		RoofType:           lead.RoofType,
		LandSize:           lead.LandSize,
		CropType:           lead.CropType,
		WaterSource:        lead.WaterSource,
		PipeLength:         lead.PipeLength,
		LeadSource:         lead.LeadSource,
		ReferredBy:         lead.ReferredBy,
		AssignedTo:         lead.AssignedTo,
		CreatedBy:          lead.CreatedBy,
		Status:             lead.Status,
		VisitDate:          lead.VisitDate,
		VisitNotes:         lead.VisitNotes,
		VisitPhotos:        lead.VisitPhotos,
		QuotationAmount:    lead.QuotationAmount,
		QuotationFile:      lead.QuotationFile,
		QuotationSentAt:    lead.QuotationSentAt,
		DealDoneAt:         lead.DealDoneAt,
		AdvanceAmount:      lead.AdvanceAmount,
		PortalStatus:       lead.PortalStatus,
		PortalDocuments:    lead.PortalDocuments,
		MeterNumber:        lead.MeterNumber,
		MeterAppliedAt:     lead.MeterAppliedAt,
		MeterInstalledAt:   lead.MeterInstalledAt,
		SubsidyAmount:      lead.SubsidyAmount,
		SubsidyStatus:      lead.SubsidyStatus,
		SubsidyDocuments:   lead.SubsidyDocuments,
		InstallationDate:   lead.InstallationDate,
		InstallationTeam:   lead.InstallationTeam,
		InstallationNotes:  lead.InstallationNotes,
		InstallationPhotos: lead.InstallationPhotos,
		TotalAmount:        lead.TotalAmount,
		PaidAmount:         lead.PaidAmount,
		PendingAmount:      lead.PendingAmount,
		PaymentStatus:      lead.PaymentStatus,
		ReviewCode:         lead.ReviewCode,
		CustomerRating:     lead.CustomerRating,
		CustomerReview:     lead.CustomerReview,
		NextFollowupDate:   lead.NextFollowupDate,
		CreatedAt:          lead.CreatedAt,
		UpdatedAt:          lead.UpdatedAt,
	}
}
