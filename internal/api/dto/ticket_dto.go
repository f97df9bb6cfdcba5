package dto

import (
	"time"

	"github.com/spec-kit/field-crm/internal/domain"
)

// CreateTicketRequest payload. TicketID is caller-supplied and unique.
type CreateTicketRequest struct {
	TicketID   string          `json:"ticketId" validate:"required"`
	ProposalID string          `json:"proposalId" validate:"required"`
	Issue      string          `json:"issue" validate:"required"`
	Priority   domain.Priority `json:"priority"`
}

// UpdateTicketRequest is a partial update payload.
type UpdateTicketRequest struct {
	Issue      *string              `json:"issue"`
	Priority   *domain.Priority     `json:"priority"`
	AssignedTo *string              `json:"assignedTo"`
	Status     *domain.TicketStatus `json:"status"`
}

// TicketResponse representation.
type TicketResponse struct {
	ID         string `json:"id"`
	TicketID   string `json:"ticketId"`
	ProposalID string `json:"proposalId"`

	Issue    string          `json:"issue"`
	Priority domain.Priority `json:"priority"`

	AssignedTo *string `json:"assignedTo"`
	CreatedBy  string  `json:"createdBy"`

	Status     domain.TicketStatus `json:"status"`
	ResolvedAt *time.Time          `json:"resolvedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
