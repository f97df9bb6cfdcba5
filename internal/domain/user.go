package domain

import "time"

// Role determines which work-item kinds a user may act on.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleSales   Role = "Sales"
	RoleService Role = "Service"
)

// UserStatus represents account lifecycle states.
type UserStatus string

const (
	UserStatusActive   UserStatus = "Active"
	UserStatusInactive UserStatus = "Inactive"
)

// User is a staff account. Every authorization decision in the system is
// derived from its ID and Role.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Role         Role
	Image        *string
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleSales, RoleService:
		return true
	}
	return false
}
