package dto

import (
	"time"

	"github.com/spec-kit/field-crm/internal/domain"
)

// CreateFollowupRequest payload.
type CreateFollowupRequest struct {
	FollowupDate     time.Time  `json:"followupDate" validate:"required"`
	Notes            *string    `json:"notes"`
	NextFollowupDate *time.Time `json:"nextFollowupDate"`
}

// UpdateFollowupRequest is a partial update payload.
type UpdateFollowupRequest struct {
	FollowupDate     *time.Time               `json:"followupDate"`
	Notes            *string                  `json:"notes"`
	CustomerResponse *domain.CustomerResponse `json:"customerResponse"`
	ResponseNotes    *string                  `json:"responseNotes"`
	NextFollowupDate *time.Time               `json:"nextFollowupDate"`
	Status           *domain.FollowupStatus   `json:"status"`
}

// FollowupResponse representation.
type FollowupResponse struct {
	ID       string              `json:"id"`
	LeadID   string              `json:"leadId"`
	LeadKind domain.WorkItemKind `json:"leadKind"`

	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`

	FollowupDate time.Time `json:"followupDate"`
	Notes        *string   `json:"notes,omitempty"`

	CustomerResponse *domain.CustomerResponse `json:"customerResponse,omitempty"`
	ResponseNotes    *string                  `json:"responseNotes,omitempty"`

	NextFollowupDate *time.Time `json:"nextFollowupDate,omitempty"`

	Status    domain.FollowupStatus `json:"status"`
	CreatedBy string                `json:"createdBy"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
