package domain

import "time"

// TicketStatus is the plant ticket lifecycle vocabulary.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "Open"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusProposed   TicketStatus = "Proposed"
	TicketStatusResolved   TicketStatus = "Resolved"
)

// PlantTicket is a post-installation issue raised against an installed
// plant (a proposal). TicketID is supplied by the caller and unique.
type PlantTicket struct {
	ID         string
	TicketID   string
	ProposalID string

	Issue    string
	Priority Priority

	AssignedTo *string
	CreatedBy  string

	Status     TicketStatus
	ResolvedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
