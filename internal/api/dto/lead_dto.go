package dto

import (
	"time"

	"github.com/spec-kit/field-crm/internal/domain"
)

// CreateLeadRequest payload, shared by the solar and sprinkler endpoints.
// Kind-specific required-field rules are enforced by the service.
type CreateLeadRequest struct {
	CustomerName string  `json:"customerName"`
	Phone        string  `json:"phone"`
	AltPhone     *string `json:"altPhone"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Pincode      string  `json:"pincode"`

	SystemSize     *float64 `json:"systemSize"`
	ConnectionType *string  `json:"connectionType" validate:"omitempty,oneof=Residential Commercial Industrial"`
	CurrentBill    *float64 `json:"currentBill"`
	RoofType       *string  `json:"roofType" validate:"omitempty,oneof=RCC Sheet Tile Ground"`

	LandSize    *string  `json:"landSize"`
	CropType    *string  `json:"cropType"`
	WaterSource *string  `json:"waterSource" validate:"omitempty,oneof=Borewell Canal River Pond Well"`
	PipeLength  *float64 `json:"pipeLength"`

	LeadSource domain.LeadSource `json:"leadSource"`
	ReferredBy *string           `json:"referredBy"`
}

// UpdateLeadRequest is the merged partial update payload: customer details,
// stage fields, status and finances may all arrive together. Absent fields
// are left unchanged.
type UpdateLeadRequest struct {
	CustomerName *string `json:"customerName"`
	Phone        *string `json:"phone"`
	AltPhone     *string `json:"altPhone"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Pincode      *string `json:"pincode"`

	SystemSize     *float64 `json:"systemSize"`
	ConnectionType *string  `json:"connectionType" validate:"omitempty,oneof=Residential Commercial Industrial"`
	CurrentBill    *float64 `json:"currentBill"`
	RoofType       *string  `json:"roofType" validate:"omitempty,oneof=RCC Sheet Tile Ground"`

	LandSize    *string  `json:"landSize"`
	CropType    *string  `json:"cropType"`
	WaterSource *string  `json:"waterSource" validate:"omitempty,oneof=Borewell Canal River Pond Well"`
	PipeLength  *float64 `json:"pipeLength"`

	LeadSource *domain.LeadSource `json:"leadSource"`
	ReferredBy *string            `json:"referredBy"`
	AssignedTo *string            `json:"assignedTo"`

	Status *domain.LeadStatus `json:"status"`

	VisitDate   *time.Time `json:"visitDate"`
	VisitNotes  *string    `json:"visitNotes"`
	VisitPhotos []string   `json:"visitPhotos"`

	QuotationAmount *float64   `json:"quotationAmount"`
	QuotationFile   *string    `json:"quotationFile"`
	QuotationSentAt *time.Time `json:"quotationSentAt"`

	DealDoneAt    *time.Time `json:"dealDoneAt"`
	AdvanceAmount *float64   `json:"advanceAmount"`

	PortalStatus     *string    `json:"portalStatus" validate:"omitempty,oneof='Not Started' Submitted Approved Rejected"`
	PortalDocuments  []string   `json:"portalDocuments"`
	MeterNumber      *string    `json:"meterNumber"`
	MeterAppliedAt   *time.Time `json:"meterAppliedAt"`
	MeterInstalledAt *time.Time `json:"meterInstalledAt"`
	SubsidyAmount    *float64   `json:"subsidyAmount"`
	SubsidyStatus    *string    `json:"subsidyStatus" validate:"omitempty,oneof='Not Applied' Applied Approved Received"`
	SubsidyDocuments []string   `json:"subsidyDocuments"`

	InstallationDate   *time.Time `json:"installationDate"`
	InstallationTeam   *string    `json:"installationTeam"`
	InstallationNotes  *string    `json:"installationNotes"`
	InstallationPhotos []string   `json:"installationPhotos"`

	TotalAmount *float64 `json:"totalAmount" validate:"omitempty,gte=0"`
	PaidAmount  *float64 `json:"paidAmount" validate:"omitempty,gte=0"`

	NextFollowupDate *time.Time `json:"nextFollowupDate"`
}

// AssignRequest payload, shared by leads and service requests.
type AssignRequest struct {
	AssignedTo string `json:"assignedTo" validate:"required"`
}

// AddReviewRequest payload for sprinkler leads.
type AddReviewRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review"`
}

// LeadResponse is the full lead representation.
type LeadResponse struct {
	ID   string              `json:"id"`
	Kind domain.WorkItemKind `json:"kind"`

	CustomerName string  `json:"customerName"`
	Phone        string  `json:"phone"`
	AltPhone     *string `json:"altPhone,omitempty"`
	Email        *string `json:"email,omitempty"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Pincode      string  `json:"pincode"`

	SystemSize     *float64 `json:"systemSize,omitempty"`
	ConnectionType *string  `json:"connectionType,omitempty"`
	CurrentBill    *float64 `json:"currentBill,omitempty"`
	RoofType       *string  `json:"roofType,omitempty"`

	LandSize    *string  `json:"landSize,omitempty"`
	CropType    *string  `json:"cropType,omitempty"`
	WaterSource *string  `json:"waterSource,omitempty"`
	PipeLength  *float64 `json:"pipeLength,omitempty"`

	LeadSource domain.LeadSource `json:"leadSource"`
	ReferredBy *string           `json:"referredBy,omitempty"`

	AssignedTo *string `json:"assignedTo"`
	CreatedBy  string  `json:"createdBy"`

	Status domain.LeadStatus `json:"status"`

	VisitDate   *time.Time `json:"visitDate,omitempty"`
	VisitNotes  *string    `json:"visitNotes,omitempty"`
	VisitPhotos []string   `json:"visitPhotos,omitempty"`

	QuotationAmount *float64   `json:"quotationAmount,omitempty"`
	QuotationFile   *string    `json:"quotationFile,omitempty"`
	QuotationSentAt *time.Time `json:"quotationSentAt,omitempty"`

	DealDoneAt    *time.Time `json:"dealDoneAt,omitempty"`
	AdvanceAmount float64    `json:"advanceAmount"`

	PortalStatus     *string    `json:"portalStatus,omitempty"`
	PortalDocuments  []string   `json:"portalDocuments,omitempty"`
	MeterNumber      *string    `json:"meterNumber,omitempty"`
	MeterAppliedAt   *time.Time `json:"meterAppliedAt,omitempty"`
	MeterInstalledAt *time.Time `json:"meterInstalledAt,omitempty"`
	SubsidyAmount    float64    `json:"subsidyAmount"`
	SubsidyStatus    *string    `json:"subsidyStatus,omitempty"`
	SubsidyDocuments []string   `json:"subsidyDocuments,omitempty"`

	InstallationDate   *time.Time `json:"installationDate,omitempty"`
	InstallationTeam   *string    `json:"installationTeam,omitempty"`
	InstallationNotes  *string    `json:"installationNotes,omitempty"`
	InstallationPhotos []string   `json:"installationPhotos,omitempty"`

	TotalAmount   float64              `json:"totalAmount"`
	PaidAmount    float64              `json:"paidAmount"`
	PendingAmount float64              `json:"pendingAmount"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`

	ReviewCode     *string `json:"reviewCode,omitempty"`
	CustomerRating *int    `json:"customerRating,omitempty"`
	CustomerReview *string `json:"customerReview,omitempty"`

	NextFollowupDate *time.Time `json:"nextFollowupDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
