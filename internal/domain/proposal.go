package domain

import "time"

// ProposalStatus is the proposal lifecycle vocabulary.
type ProposalStatus string

const (
	ProposalStatusDraft     ProposalStatus = "Draft"
	ProposalStatusSent      ProposalStatus = "Sent"
	ProposalStatusApproved  ProposalStatus = "Approved"
	ProposalStatusRejected  ProposalStatus = "Rejected"
	ProposalStatusInstalled ProposalStatus = "Installed"
)

// Proposal is a priced plant offer for a customer. FinalPrice is derived
// (price - subsidy) on create and on any update touching price or subsidy.
type Proposal struct {
	ID            string
	CustomerID    string
	SalesPersonID string

	PlantCapacity float64
	Price         float64
	Subsidy       float64
	FinalPrice    float64

	InstallationAddress string

	Status ProposalStatus
	Notes  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
