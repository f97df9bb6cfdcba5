package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-crm/internal/access"
	"github.com/spec-kit/field-crm/internal/auth"
	"github.com/spec-kit/field-crm/internal/domain"
	"github.com/spec-kit/field-crm/internal/repository"
	apperrors "github.com/spec-kit/field-crm/pkg/util/errorutil"
)

// StaffService manages staff accounts. Every operation is Admin-only.
type StaffService struct {
	users      repository.UserRepository
	bcryptCost int
}

// StaffDependencies bundles collaborators.
type StaffDependencies struct {
	UserRepo   repository.UserRepository
	BcryptCost int
}

// NewStaffService constructs the service.
func NewStaffService(deps StaffDependencies) *StaffService {
	return &StaffService{users: deps.UserRepo, bcryptCost: deps.BcryptCost}
}

// StaffCreateInput describes a new staff account.
type StaffCreateInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     domain.Role
	Image    *string
}

// StaffUpdateInput is a partial update; password changes go through their
// own path.
type StaffUpdateInput struct {
	Name  *string
	Phone *string
	Role  *domain.Role
	Image *string
}

// Create registers a staff account with the given role.
func (s *StaffService) Create(ctx context.Context, actor *domain.User, input StaffCreateInput) (*domain.User, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}

	missing := map[string]any{}
	for field, v := range map[string]string{
		"name":     input.Name,
		"email":    input.Email,
		"password": input.Password,
		"phone":    input.Phone,
	} {
		if strings.TrimSpace(v) == "" {
			missing[field] = "required"
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", missing)
	}
	if !domain.ValidRole(input.Role) {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": input.Role})
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(input.Phone),
		Role:         input.Role,
		Image:        input.Image,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// List returns every staff account, newest first.
func (s *StaffService) List(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}
	result, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// Get fetches one staff account.
func (s *StaffService) Get(ctx context.Context, actor *domain.User, id string) (*domain.User, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.fetch(ctx, id)
}

// Update applies a partial update to a staff account.
func (s *StaffService) Update(ctx context.Context, actor *domain.User, id string, input StaffUpdateInput) (*domain.User, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}
	user, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Role != nil {
		if !domain.ValidRole(*input.Role) {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": *input.Role})
		}
		user.Role = *input.Role
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Image != nil {
		user.Image = input.Image
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// SetStatus toggles an account Active/Inactive. An inactive account fails
// authentication on its next request.
func (s *StaffService) SetStatus(ctx context.Context, actor *domain.User, id string, status domain.UserStatus) (*domain.User, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if status != domain.UserStatusActive && status != domain.UserStatusInactive {
		return nil, apperrors.NewValidationError("status must be Active or Inactive", map[string]any{"status": status})
	}
	user, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Status = status
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Delete removes a staff account. Second delete reports NotFound.
func (s *StaffService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if err := access.RequireAdmin(actor); err != nil {
		return err
	}
	if actor.ID == id {
		return apperrors.NewValidationError("cannot delete own account", nil)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", nil)
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *StaffService) fetch(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}
