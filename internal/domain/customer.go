package domain

import "time"

// Customer is a plant owner record referenced by proposals.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Address   string
	Image     *string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
