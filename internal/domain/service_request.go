package domain

import "time"

// ServiceStatus is the service request lifecycle vocabulary.
type ServiceStatus string

const (
	ServiceStatusOpen       ServiceStatus = "Open"
	ServiceStatusAssigned   ServiceStatus = "Assigned"
	ServiceStatusInProgress ServiceStatus = "In Progress"
	ServiceStatusResolved   ServiceStatus = "Resolved"
	ServiceStatusClosed     ServiceStatus = "Closed"
)

// ChargeType distinguishes warranty work from billable visits.
type ChargeType string

const (
	ChargeFree ChargeType = "Free"
	ChargePaid ChargeType = "Paid"
)

// Priority is the urgency shared by service requests and plant tickets.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// ValidPriority reports whether p is a known priority.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// IssueType categorizes the reported problem.
type IssueType string

const (
	IssueNoPowerGeneration IssueType = "No Power Generation"
	IssueInverterError     IssueType = "Inverter Error"
	IssuePanelDamage       IssueType = "Panel Damage"
	IssueWiring            IssueType = "Wiring Issue"
	IssueMeter             IssueType = "Meter Issue"
	IssueCleaning          IssueType = "Cleaning Required"
	IssueSprinklerBlockage IssueType = "Sprinkler Blockage"
	IssuePipeDamage        IssueType = "Pipe Damage"
	IssueMotor             IssueType = "Motor Issue"
	IssueOther             IssueType = "Other"
)

// ValidIssueType reports whether t is a known issue type.
func ValidIssueType(t IssueType) bool {
	switch t {
	case IssueNoPowerGeneration, IssueInverterError, IssuePanelDamage, IssueWiring,
		IssueMeter, IssueCleaning, IssueSprinklerBlockage, IssuePipeDamage, IssueMotor, IssueOther:
		return true
	}
	return false
}

// PaymentMode enumerates accepted payment channels.
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "Cash"
	PaymentModeOnline PaymentMode = "Online"
	PaymentModeUPI    PaymentMode = "UPI"
)

// ValidPaymentMode reports whether m is a known payment mode.
func ValidPaymentMode(m PaymentMode) bool {
	switch m {
	case PaymentModeCash, PaymentModeOnline, PaymentModeUPI:
		return true
	}
	return false
}

// ServiceRequest is a field repair job. ServiceID is a human-readable
// identifier minted by the sequence allocator at creation.
type ServiceRequest struct {
	ID        string
	ServiceID string

	CustomerName string
	Phone        string
	Address      string
	City         string

	LinkedLeadID   *string
	LinkedLeadKind *WorkItemKind

	IssueType        IssueType
	IssueDescription string
	Priority         Priority

	ChargeType   ChargeType
	ChargeAmount float64

	AssignedTo *string
	CreatedBy  string

	Status ServiceStatus

	ServiceDate  *time.Time
	ServiceNotes *string

	BeforePhotos []string
	AfterPhotos  []string

	ResolvedAt      *time.Time
	ResolutionNotes *string

	PaymentStatus ServicePaymentStatus
	PaymentDate   *time.Time
	PaymentMode   *PaymentMode

	CreatedAt time.Time
	UpdatedAt time.Time
}
