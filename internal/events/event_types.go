package events

import (
	"time"

	"github.com/spec-kit/field-crm/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLeadCreated       EventType = "lead_created"
	EventLeadStatusChanged EventType = "lead_status_changed"
	EventLeadAssigned      EventType = "lead_assigned"
	EventFollowupScheduled EventType = "followup_scheduled"
	EventServiceAssigned   EventType = "service_assigned"
	EventPaymentRecorded   EventType = "payment_recorded"
	// EventStatusChanged covers service requests and plant tickets; the
	// Event's Kind field tells subscribers which one moved.
	EventStatusChanged EventType = "status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string              `json:"id"`
	Type      EventType           `json:"type"`
	Kind      domain.WorkItemKind `json:"kind"`
	ItemID    string              `json:"item_id"`
	ActorID   string              `json:"actor_id"`
	Timestamp time.Time           `json:"timestamp"`
	Payload   interface{}         `json:"payload"`
}

// LeadCreatedPayload payload.
type LeadCreatedPayload struct {
	CustomerName string            `json:"customer_name"`
	City         string            `json:"city"`
	Source       domain.LeadSource `json:"source"`
	AssignedTo   *string           `json:"assigned_to,omitempty"`
}

// StatusChangedPayload payload, shared by every kind.
type StatusChangedPayload struct {
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// AssignedPayload payload.
type AssignedPayload struct {
	AssigneeID string `json:"assignee_id"`
}

// FollowupScheduledPayload payload.
type FollowupScheduledPayload struct {
	FollowupID   string    `json:"followup_id"`
	FollowupDate time.Time `json:"followup_date"`
}

// PaymentRecordedPayload payload.
type PaymentRecordedPayload struct {
	Amount float64            `json:"amount"`
	Mode   domain.PaymentMode `json:"mode"`
}
