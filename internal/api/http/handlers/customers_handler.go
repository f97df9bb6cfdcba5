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

// CustomersHandler manages plant owner endpoints.
type CustomersHandler struct {
	service *service.CustomerService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customerService *service.CustomerService) *CustomersHandler {
	return &CustomersHandler{service: customerService}
}

// Create POST /customers. Accepts multipart form with an optional image.
func (h *CustomersHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	input := service.CustomerCreateInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if name, data, err := formImage(c); err != nil {
		return err
	} else if data != nil {
		input.ImageName = name
		input.ImageData = data
	}

	customer, err := h.service.Create(c.Context(), actor, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": customerResponse(customer)})
}

// List GET /customers.
func (h *CustomersHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	customers, err := h.service.List(c.Context(), actor)
	if err != nil {
		return err
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, customerResponse(&customers[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /customers/:id.
func (h *CustomersHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	customer, err := h.service.Get(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer)})
}

// Update PUT /customers/:id.
func (h *CustomersHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.CustomerUpdateInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if name, data, err := formImage(c); err != nil {
		return err
	} else if data != nil {
		input.ImageName = name
		input.ImageData = data
	}

	customer, err := h.service.Update(c.Context(), actor, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer)})
}

// Delete DELETE /customers/:id.
func (h *CustomersHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.Context(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "customer deleted"}})
}

// formImage pulls the optional "image" multipart file. Returns nil data when
// the request carries no image.
func formImage(c *fiber.Ctx) (string, []byte, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return "", nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, apperrors.NewValidationError("unreadable file", map[string]any{"file": fh.Filename})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, apperrors.NewValidationError("unreadable file", map[string]any{"file": fh.Filename})
	}
	return fh.Filename, data, nil
}

func customerResponse(customer *domain.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Phone:     customer.Phone,
		Address:   customer.Address,
		Image:     customer.Image,
		CreatedBy: customer.CreatedBy,
		CreatedAt: customer.CreatedAt,
		UpdatedAt: customer.UpdatedAt,
	}
}
