package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-crm/internal/access"
	"github.com/spec-kit/field-crm/internal/domain"
	"github.com/spec-kit/field-crm/internal/repository"
	"github.com/spec-kit/field-crm/internal/storage"
	apperrors "github.com/spec-kit/field-crm/pkg/util/errorutil"
)

// CustomerService manages plant owner records.
type CustomerService struct {
	customers repository.CustomerRepository
	files     storage.FileStore
}

// CustomerDependencies bundles collaborators.
type CustomerDependencies struct {
	CustomerRepo repository.CustomerRepository
	Files        storage.FileStore
}

// NewCustomerService constructs the service.
func NewCustomerService(deps CustomerDependencies) *CustomerService {
	return &CustomerService{customers: deps.CustomerRepo, files: deps.Files}
}

// CustomerCreateInput describes a new customer. Image carries the raw upload
// when present.
type CustomerCreateInput struct {
	Name      string
	Phone     string
	Address   string
	ImageName string
	ImageData []byte
}

// CustomerUpdateInput is a partial update.
type CustomerUpdateInput struct {
	Name      *string
	Phone     *string
	Address   *string
	ImageName string
	ImageData []byte
}

// Create registers a customer, storing the profile image when supplied.
func (s *CustomerService) Create(ctx context.Context, actor *domain.User, input CustomerCreateInput) (*domain.Customer, error) {
	missing := map[string]any{}
	for field, v := range map[string]string{
		"name":    input.Name,
		"phone":   input.Phone,
		"address": input.Address,
	} {
		if strings.TrimSpace(v) == "" {
			missing[field] = "required"
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", missing)
	}

	customer := &domain.Customer{
		Name:      strings.TrimSpace(input.Name),
		Phone:     strings.TrimSpace(input.Phone),
		Address:   strings.TrimSpace(input.Address),
		CreatedBy: actor.ID,
	}
	if len(input.ImageData) > 0 {
		path, err := s.files.Save(ctx, input.ImageName, input.ImageData)
		if err != nil {
			return nil, err
		}
		customer.Image = &path
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, apperrors.MapError(err)
	}
	return customer, nil
}

// List returns every customer, newest first.
func (s *CustomerService) List(ctx context.Context, actor *domain.User) ([]domain.Customer, error) {
	result, err := s.customers.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// Get fetches one customer.
func (s *CustomerService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Customer, error) {
	return s.fetch(ctx, id)
}

// Update applies a partial update, replacing the stored image when a new one
// is uploaded.
func (s *CustomerService) Update(ctx context.Context, actor *domain.User, id string, input CustomerUpdateInput) (*domain.Customer, error) {
	customer, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if len(input.ImageData) > 0 {
		path, err := s.files.Save(ctx, input.ImageName, input.ImageData)
		if err != nil {
			return nil, err
		}
		customer.Image = &path
	}

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, apperrors.MapError(err)
	}
	return customer, nil
}

// Delete removes a customer. Admin-only; second delete reports NotFound.
func (s *CustomerService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if err := access.RequireAdmin(actor); err != nil {
		return err
	}
	if err := s.customers.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("customer", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *CustomerService) fetch(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("customer", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return customer, nil
}
