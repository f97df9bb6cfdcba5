package dto

import (
	"time"

	"github.com/spec-kit/field-crm/internal/domain"
)

// CreateServiceRequest payload.
type CreateServiceRequest struct {
	CustomerName     string               `json:"customerName" validate:"required"`
	Phone            string               `json:"phone" validate:"required"`
	Address          string               `json:"address" validate:"required"`
	City             string               `json:"city" validate:"required"`
	LinkedLeadID     *string              `json:"linkedLeadId"`
	LinkedLeadKind   *domain.WorkItemKind `json:"linkedLeadKind" validate:"omitempty,oneof=Solar Sprinkler"`
	IssueType        domain.IssueType     `json:"issueType" validate:"required"`
	IssueDescription string               `json:"issueDescription" validate:"required"`
	Priority         domain.Priority      `json:"priority"`
	ChargeType       domain.ChargeType    `json:"chargeType" validate:"required,oneof=Free Paid"`
	ChargeAmount     *float64             `json:"chargeAmount" validate:"omitempty,gte=0"`
}

// UpdateServiceRequest is a partial update payload.
type UpdateServiceRequest struct {
	CustomerName     *string               `json:"customerName"`
	Phone            *string               `json:"phone"`
	Address          *string               `json:"address"`
	City             *string               `json:"city"`
	IssueType        *domain.IssueType     `json:"issueType"`
	IssueDescription *string               `json:"issueDescription"`
	Priority         *domain.Priority      `json:"priority"`
	Status           *domain.ServiceStatus `json:"status"`
	ServiceDate      *time.Time            `json:"serviceDate"`
	ServiceNotes     *string               `json:"serviceNotes"`
	ResolutionNotes  *string               `json:"resolutionNotes"`
}

// AddPaymentRequest payload.
type AddPaymentRequest struct {
	Amount float64            `json:"amount" validate:"required,gt=0"`
	Mode   domain.PaymentMode `json:"paymentMode" validate:"required,oneof=Cash Online UPI"`
}

// ServiceRequestResponse representation.
type ServiceRequestResponse struct {
	ID        string `json:"id"`
	ServiceID string `json:"serviceId"`

	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`

	LinkedLeadID   *string              `json:"linkedLeadId,omitempty"`
	LinkedLeadKind *domain.WorkItemKind `json:"linkedLeadKind,omitempty"`

	IssueType        domain.IssueType `json:"issueType"`
	IssueDescription string           `json:"issueDescription"`
	Priority         domain.Priority  `json:"priority"`

	ChargeType   domain.ChargeType `json:"chargeType"`
	ChargeAmount float64           `json:"chargeAmount"`

	AssignedTo *string `json:"assignedTo"`
	CreatedBy  string  `json:"createdBy"`

	Status domain.ServiceStatus `json:"status"`

	ServiceDate  *time.Time `json:"serviceDate,omitempty"`
	ServiceNotes *string    `json:"serviceNotes,omitempty"`

	BeforePhotos []string `json:"beforePhotos,omitempty"`
	AfterPhotos  []string `json:"afterPhotos,omitempty"`

	ResolvedAt      *time.Time `json:"resolvedAt,omitempty"`
	ResolutionNotes *string    `json:"resolutionNotes,omitempty"`

	PaymentStatus domain.ServicePaymentStatus `json:"paymentStatus"`
	PaymentDate   *time.Time                  `json:"paymentDate,omitempty"`
	PaymentMode   *domain.PaymentMode         `json:"paymentMode,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
