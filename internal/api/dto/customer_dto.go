package dto

import (
	"time"

	"github.com/spec-kit/field-crm/internal/domain"
)

// CreateCustomerRequest payload; the image travels as multipart form data.
type CreateCustomerRequest struct {
	Name    string `json:"name" form:"name" validate:"required"`
	Phone   string `json:"phone" form:"phone" validate:"required"`
	Address string `json:"address" form:"address" validate:"required"`
}

// UpdateCustomerRequest is a partial update payload.
type UpdateCustomerRequest struct {
	Name    *string `json:"name" form:"name"`
	Phone   *string `json:"phone" form:"phone"`
	Address *string `json:"address" form:"address"`
}

// CustomerResponse representation.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Image     *string   `json:"image,omitempty"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateProposalRequest payload.
type CreateProposalRequest struct {
	CustomerID          string   `json:"customerId" validate:"required"`
	PlantCapacity       float64  `json:"plantCapacity" validate:"required,gt=0"`
	Price               float64  `json:"price" validate:"required,gt=0"`
	Subsidy             float64  `json:"subsidy" validate:"gte=0"`
	InstallationAddress string   `json:"installationAddress" validate:"required"`
	Notes               *string  `json:"notes"`
}

// UpdateProposalRequest is a partial update payload.
type UpdateProposalRequest struct {
	PlantCapacity       *float64               `json:"plantCapacity" validate:"omitempty,gt=0"`
	Price               *float64               `json:"price" validate:"omitempty,gt=0"`
	Subsidy             *float64               `json:"subsidy" validate:"omitempty,gte=0"`
	InstallationAddress *string                `json:"installationAddress"`
	Status              *domain.ProposalStatus `json:"status"`
	Notes               *string                `json:"notes"`
}

// ProposalResponse representation.
type ProposalResponse struct {
	ID            string  `json:"id"`
	CustomerID    string  `json:"customerId"`
	SalesPersonID string  `json:"salesPersonId"`
	PlantCapacity float64 `json:"plantCapacity"`
	Price         float64 `json:"price"`
	Subsidy       float64 `json:"subsidy"`
	FinalPrice    float64 `json:"finalPrice"`

	InstallationAddress string `json:"installationAddress"`

	Status domain.ProposalStatus `json:"status"`
	Notes  *string               `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
