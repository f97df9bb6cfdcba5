package domain

import "time"

// FollowupStatus tracks whether a scheduled contact happened.
type FollowupStatus string

const (
	FollowupPending   FollowupStatus = "Pending"
	FollowupDone      FollowupStatus = "Done"
	FollowupCancelled FollowupStatus = "Cancelled"
)

// ValidFollowupStatus reports whether s is a known followup status.
func ValidFollowupStatus(s FollowupStatus) bool {
	switch s {
	case FollowupPending, FollowupDone, FollowupCancelled:
		return true
	}
	return false
}

// CustomerResponse records the outcome of a completed followup.
type CustomerResponse string

const (
	ResponseInterested    CustomerResponse = "Interested"
	ResponseNotInterested CustomerResponse = "Not Interested"
	ResponseCallLater     CustomerResponse = "Call Later"
	ResponseNoResponse    CustomerResponse = "No Response"
	ResponseDealDone      CustomerResponse = "Deal Done"
)

// ValidCustomerResponse reports whether r is a known response.
func ValidCustomerResponse(r CustomerResponse) bool {
	switch r {
	case ResponseInterested, ResponseNotInterested, ResponseCallLater, ResponseNoResponse, ResponseDealDone:
		return true
	}
	return false
}

// Followup is a scheduled customer contact against a lead. LeadID/LeadKind
// is a weak reference: deleting the lead orphans its followups.
// CustomerName and CustomerPhone are copied from the lead at creation time
// and are not re-synced if the lead later changes.
type Followup struct {
	ID       string
	LeadID   string
	LeadKind WorkItemKind

	CustomerName  string
	CustomerPhone string

	FollowupDate time.Time
	Notes        *string

	CustomerResponse *CustomerResponse
	ResponseNotes    *string

	NextFollowupDate *time.Time

	Status    FollowupStatus
	CreatedBy string

	CreatedAt time.Time
	UpdatedAt time.Time
}
