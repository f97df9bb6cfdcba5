package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-crm/internal/api/dto"
	"github.com/spec-kit/field-crm/internal/auth"
	"github.com/spec-kit/field-crm/internal/domain"
	"github.com/spec-kit/field-crm/internal/service"
	apperrors "github.com/spec-kit/field-crm/pkg/util/errorutil"
)

// ServicesHandler manages service request endpoints.
type ServicesHandler struct {
	service *service.ServiceRequestService
}

// NewServicesHandler constructs handler.
func NewServicesHandler(requestService *service.ServiceRequestService) *ServicesHandler {
	return &ServicesHandler{service: requestService}
}

// Create POST /services.
func (h *ServicesHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	sr, err := h.service.Create(c.Context(), actor, service.ServiceRequestCreateInput{
		CustomerName:     req.CustomerName,
		Phone:            req.Phone,
		Address:          req.Address,
		City:             req.City,
		LinkedLeadID:     req.LinkedLeadID,
		LinkedLeadKind:   req.LinkedLeadKind,
		IssueType:        req.IssueType,
		IssueDescription: req.IssueDescription,
		Priority:         req.Priority,
		ChargeType:       req.ChargeType,
		ChargeAmount:     req.ChargeAmount,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": serviceResponse(sr)})
}

// List GET /services.
func (h *ServicesHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var input service.ServiceRequestListInput
	if v := c.Query("status"); v != "" {
		status := domain.ServiceStatus(v)
		input.Status = &status
	}
	if v := c.Query("chargeType"); v != "" {
		chargeType := domain.ChargeType(v)
		input.ChargeType = &chargeType
	}
	if v := c.Query("priority"); v != "" {
		priority := domain.Priority(v)
		input.Priority = &priority
	}

	requests, err := h.service.List(c.Context(), actor, input)
	if err != nil {
		return err
	}
	items := make([]dto.ServiceRequestResponse, 0, len(requests))
	for i := range requests {
		items = append(items, serviceResponse(&requests[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /services/:id.
func (h *ServicesHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	sr, err := h.service.Get(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": serviceResponse(sr)})
}

// Update PUT /services/:id.
func (h *ServicesHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	sr, err := h.service.Update(c.Context(), actor, c.Params("id"), service.ServiceRequestUpdateInput{
		CustomerName:     req.CustomerName,
		Phone:            req.Phone,
		Address:          req.Address,
		City:             req.City,
		IssueType:        req.IssueType,
		IssueDescription: req.IssueDescription,
		Priority:         req.Priority,
		Status:           req.Status,
		ServiceDate:      req.ServiceDate,
		ServiceNotes:     req.ServiceNotes,
		ResolutionNotes:  req.ResolutionNotes,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": serviceResponse(sr)})
}

// Assign PATCH /services/:id/assign.
func (h *ServicesHandler) Assign(c *fiber.Ctx) error {
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

	sr, err := h.service.Assign(c.Context(), actor, c.Params("id"), req.AssignedTo)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": serviceResponse(sr)})
}

// AddPayment POST /services/:id/payment.
func (h *ServicesHandler) AddPayment(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AddPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	sr, err := h.service.AddPayment(c.Context(), actor, c.Params("id"), req.Amount, req.Mode)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": serviceResponse(sr)})
}

// UploadPhotos POST /services/:id/photos. Multipart form with a "type" field
// (before|after) and one or more "photos" files.
func (h *ServicesHandler) UploadPhotos(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.NewValidationError("multipart form required", nil)
	}
	stage := service.PhotoStage(c.FormValue("type"))

	files := form.File["photos"]
	uploads := make([]service.PhotoUpload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return apperrors.NewValidationError("unreadable file", map[string]any{"file": fh.Filename})
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return apperrors.NewValidationError("unreadable file", map[string]any{"file": fh.Filename})
		}
		uploads = append(uploads, service.PhotoUpload{Name: fh.Filename, Data: data})
	}

	sr, err := h.service.UploadPhotos(c.Context(), actor, c.Params("id"), stage, uploads)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": serviceResponse(sr)})
}

// Delete DELETE /services/:id.
func (h *ServicesHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "service request deleted"}})
}

func serviceResponse(sr *domain.ServiceRequest) dto.ServiceRequestResponse {
	return dto.ServiceRequestResponse{
		ID:               sr.ID,
		ServiceID:        sr.ServiceID,
		CustomerName:     sr.CustomerName,
		Phone:            sr.Phone,
		Address:          sr.Address,
		City:             sr.City,
		LinkedLeadID:     sr.LinkedLeadID,
		LinkedLeadKind:   sr.LinkedLeadKind,
		IssueType:        sr.IssueType,
		IssueDescription: sr.IssueDescription,
		Priority:         sr.Priority,
		ChargeType:       sr.ChargeType,
		ChargeAmount:     sr.ChargeAmount,
		AssignedTo:       sr.AssignedTo,
		CreatedBy:        sr.CreatedBy,
		Status:           sr.Status,
		ServiceDate:      sr.ServiceDate,
		ServiceNotes:     sr.ServiceNotes,
		BeforePhotos:     sr.BeforePhotos,
		AfterPhotos:      sr.AfterPhotos,
		ResolvedAt:       sr.ResolvedAt,
		ResolutionNotes:  sr.ResolutionNotes,
		PaymentStatus:    sr.PaymentStatus,
		PaymentDate:      sr.PaymentDate,
		PaymentMode:      sr.PaymentMode,
		CreatedAt:        sr.CreatedAt,
		UpdatedAt:        sr.UpdatedAt,
	}
}
