package domain

import "time"

// LeadStatus is a member of the per-kind lead pipeline vocabulary.
type LeadStatus string

const (
	LeadStatusNew            LeadStatus = "New"
	LeadStatusVisit          LeadStatus = "Visit"
	LeadStatusQuotationSent  LeadStatus = "Quotation Sent"
	LeadStatusFollowup       LeadStatus = "Followup"
	LeadStatusDealDone       LeadStatus = "Deal Done"
	LeadStatusPortalUpdate   LeadStatus = "Portal Update"
	LeadStatusInstallation   LeadStatus = "Installation"
	LeadStatusMeterProcess   LeadStatus = "Meter Process"
	LeadStatusSubsidyForm    LeadStatus = "Subsidy Form"
	LeadStatusPaymentPending LeadStatus = "Payment Pending"
	LeadStatusCompleted      LeadStatus = "Completed"
	LeadStatusCancelled      LeadStatus = "Cancelled"
)

// LeadSource enumerates where a lead came from.
type LeadSource string

const (
	LeadSourceDirect    LeadSource = "Direct"
	LeadSourceReference LeadSource = "Reference"
	LeadSourceOnline    LeadSource = "Online"
	LeadSourceWhatsApp  LeadSource = "WhatsApp"
	LeadSourceOther     LeadSource = "Other"
)

// ValidLeadSource reports whether s is a known lead source.
func ValidLeadSource(s LeadSource) bool {
	switch s {
	case LeadSourceDirect, LeadSourceReference, LeadSourceOnline, LeadSourceWhatsApp, LeadSourceOther:
		return true
	}
	return false
}

// Lead is the unified aggregate for both sales pipelines. Solar and
// Sprinkler rows live in one table discriminated by Kind; kind-specific
// fields are nullable and unused by the other kind.
type Lead struct {
	ID   string
	Kind WorkItemKind

	// Customer
	CustomerName string
	Phone        string
	AltPhone     *string
	Email        *string
	Address      string
	City         string
	State        string
	Pincode      string

	// Solar specific
	SystemSize     *float64
	ConnectionType *string
	CurrentBill    *float64
	RoofType       *string

	// Sprinkler specific
	LandSize    *string
	CropType    *string
	WaterSource *string
	PipeLength  *float64

	// Source
	LeadSource LeadSource
	ReferredBy *string

	// Assignment
	AssignedTo *string
	CreatedBy  string

	Status LeadStatus

	// Visit
	VisitDate   *time.Time
	VisitNotes  *string
	VisitPhotos []string

	// Quotation
	QuotationAmount *float64
	QuotationFile   *string
	QuotationSentAt *time.Time

	// Deal
	DealDoneAt    *time.Time
	AdvanceAmount float64

	// Solar portal/meter/subsidy pipeline
	PortalStatus     *string
	PortalDocuments  []string
	MeterNumber      *string
	MeterAppliedAt   *time.Time
	MeterInstalledAt *time.Time
	SubsidyAmount    float64
	SubsidyStatus    *string
	SubsidyDocuments []string

	// Installation
	InstallationDate   *time.Time
	InstallationTeam   *string
	InstallationNotes  *string
	InstallationPhotos []string

	// Payment summary; PendingAmount and PaymentStatus are derived.
	TotalAmount   float64
	PaidAmount    float64
	PendingAmount float64
	PaymentStatus PaymentStatus

	// Sprinkler customer review
	ReviewCode     *string
	CustomerRating *int
	CustomerReview *string

	NextFollowupDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Solar portal status values.
const (
	PortalNotStarted = "Not Started"
	PortalSubmitted  = "Submitted"
	PortalApproved   = "Approved"
	PortalRejected   = "Rejected"
)

// Solar subsidy status values.
const (
	SubsidyNotApplied = "Not Applied"
	SubsidyApplied    = "Applied"
	SubsidyApprovedSt = "Approved"
	SubsidyReceived   = "Received"
)
