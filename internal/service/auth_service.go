package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-crm/internal/auth"
	"github.com/spec-kit/field-crm/internal/domain"
	"github.com/spec-kit/field-crm/internal/repository"
	apperrors "github.com/spec-kit/field-crm/pkg/util/errorutil"
)

// AuthService handles login, registration and profile self-service.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
}

// AuthDependencies bundles collaborators.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Tokens     *auth.TokenManager
	BcryptCost int
}

// NewAuthService constructs the service.
func NewAuthService(deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokens:     deps.Tokens,
		bcryptCost: deps.BcryptCost,
	}
}

// LoginResult carries the issued token and the authenticated user.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// Login verifies credentials and issues a JWT. Wrong email and wrong
// password are indistinguishable to the caller; an inactive account is
// rejected explicitly.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if user.Status == domain.UserStatusInactive {
		return nil, apperrors.NewForbidden("account inactive")
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// RegisterAdminInput describes the bootstrap admin payload.
type RegisterAdminInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Image    *string
}

// RegisterAdmin creates an Admin account. Duplicate email reports Conflict.
func (s *AuthService) RegisterAdmin(ctx context.Context, input RegisterAdminInput) (*domain.User, error) {
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
		Role:         domain.RoleAdmin,
		Image:        input.Image,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Profile returns the actor's own account.
func (s *AuthService) Profile(ctx context.Context, actor *domain.User) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ProfileUpdateInput is a partial self-service update. Role and status are
// absent on purpose; only staff management changes them.
type ProfileUpdateInput struct {
	Name  *string
	Phone *string
	Image *string
}

// UpdateProfile applies a partial update to the actor's own account.
func (s *AuthService) UpdateProfile(ctx context.Context, actor *domain.User, input ProfileUpdateInput) (*domain.User, error) {
	user, err := s.Profile(ctx, actor)
	if err != nil {
		return nil, err
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

// ChangePassword verifies the current password before storing the new one.
func (s *AuthService) ChangePassword(ctx context.Context, actor *domain.User, current, next string) error {
	if strings.TrimSpace(next) == "" {
		return apperrors.NewValidationError("new password required", nil)
	}

	user, err := s.Profile(ctx, actor)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, current); err != nil {
		return apperrors.NewUnauthorized("current password incorrect")
	}

	hash, err := auth.HashPassword(next, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	user.PasswordHash = hash

	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
