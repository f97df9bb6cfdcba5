package dto

import (
	"time"

	"github.com/spec-kit/field-crm/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the token and the authenticated user.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// RegisterAdminRequest payload for the bootstrap admin endpoint.
type RegisterAdminRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Phone    string  `json:"phone" validate:"required"`
	Image    *string `json:"image"`
}

// CreateStaffRequest payload.
type CreateStaffRequest struct {
	Name     string      `json:"name" validate:"required"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=6"`
	Phone    string      `json:"phone" validate:"required"`
	Role     domain.Role `json:"role" validate:"required,oneof=Admin Sales Service"`
	Image    *string     `json:"image"`
}

// UpdateStaffRequest is a partial update payload.
type UpdateStaffRequest struct {
	Name  *string      `json:"name"`
	Phone *string      `json:"phone"`
	Role  *domain.Role `json:"role" validate:"omitempty,oneof=Admin Sales Service"`
	Image *string      `json:"image"`
}

// SetStaffStatusRequest payload.
type SetStaffStatusRequest struct {
	Status domain.UserStatus `json:"status" validate:"required,oneof=Active Inactive"`
}

// UpdateProfileRequest is the self-service partial update payload.
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Image *string `json:"image"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// UserResponse representation; the password hash never leaves the server.
type UserResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
	Role      domain.Role       `json:"role"`
	Image     *string           `json:"image,omitempty"`
	Status    domain.UserStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// NewUserResponse maps a user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		Image:     user.Image,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
