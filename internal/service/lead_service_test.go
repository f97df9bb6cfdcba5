package service

import (
	"context"
	"testing"

	"github.com/spec-kit/field-crm/internal/domain"
	"github.com/spec-kit/field-crm/internal/events"
	apperrors "github.com/spec-kit/field-crm/pkg/util/errorutil"
)

func newLeadService() (*LeadService, *fakeLeadRepo) {
	repo := newFakeLeadRepo()
	svc := NewLeadService(LeadDependencies{
		LeadRepo:   repo,
		Sequences:  newFakeAllocator(),
		Dispatcher: events.NewInMemoryDispatcher(),
	})
	return svc, repo
}

func seedLead(t *testing.T, repo *fakeLeadRepo, kind domain.WorkItemKind, assignedTo *string) *domain.Lead {
	t.Helper()
	lead := &domain.Lead{
		Kind:         kind,
		CustomerName: "Ramesh Kumar",
		Phone:        "9876543210",
		Address:      "12 MG Road",
		City:         "Pune",
		State:        "MH",
		Pincode:      "411001",
		LeadSource:   domain.LeadSourceDirect,
		CreatedBy:    "creator",
		Status:       domain.LeadStatusNew,
		AssignedTo:   assignedTo,
	}
	lead.PendingAmount, lead.PaymentStatus = domain.ReconcilePayment(0, 0)
	if err := repo.Create(context.Background(), lead); err != nil {
		t.Fatalf("seed lead: %v", err)
	}
	return lead
}

func fullCreateInput() LeadCreateInput {
	return LeadCreateInput{
		CustomerName: "Ramesh Kumar",
		Phone:        "9876543210",
		Address:      "12 MG Road",
		City:         "Pune",
		State:        "MH",
		Pincode:      "411001",
	}
}

func TestLeadCreateSalesAutoAssigned(t *testing.T) {
	svc, _ := newLeadService()
	actor := salesActor()

	lead, err := svc.Create(context.Background(), actor, domain.KindSolarLead, fullCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if lead.AssignedTo == nil || *lead.AssignedTo != actor.ID {
		t.Errorf("sales creator should be auto-assigned, got %v", lead.AssignedTo)
	}
	if lead.Status != domain.LeadStatusNew {
		t.Errorf("status = %s, want New", lead.Status)
	}
	if lead.PaymentStatus != domain.PaymentPending {
		t.Errorf("payment status = %s, want Pending", lead.PaymentStatus)
	}
}

func TestLeadCreateAdminUnassigned(t *testing.T) {
	svc, _ := newLeadService()

	lead, err := svc.Create(context.Background(), adminActor(), domain.KindSolarLead, fullCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if lead.AssignedTo != nil {
		t.Errorf("admin-created lead should stay unassigned, got %v", *lead.AssignedTo)
	}
}

func TestLeadCreateSolarDefaults(t *testing.T) {
	svc, _ := newLeadService()

	lead, err := svc.Create(context.Background(), adminActor(), domain.KindSolarLead, fullCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if lead.PortalStatus == nil || *lead.PortalStatus != domain.PortalNotStarted {
		t.Errorf("portal status = %v, want Not Started", lead.PortalStatus)
	}
	if lead.SubsidyStatus == nil || *lead.SubsidyStatus != domain.SubsidyNotApplied {
		t.Errorf("subsidy status = %v, want Not Applied", lead.SubsidyStatus)
	}
	if lead.LeadSource != domain.LeadSourceDirect {
		t.Errorf("lead source = %s, want Direct default", lead.LeadSource)
	}
}

func TestLeadCreateSolarRequiredFields(t *testing.T) {
	svc, _ := newLeadService()
	ctx := context.Background()

	// Solar accepts any partial payload as long as one field is present.
	if _, err := svc.Create(ctx, adminActor(), domain.KindSolarLead, LeadCreateInput{City: "Pune"}); err != nil {
		t.Errorf("partial solar payload rejected: %v", err)
	}

	_, err := svc.Create(ctx, adminActor(), domain.KindSolarLead, LeadCreateInput{})
	if !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Errorf("empty solar payload should fail validation, got %v", err)
	}
}

func TestLeadCreateSprinklerRequiredFields(t *testing.T) {
	svc, _ := newLeadService()
	input := fullCreateInput()
	input.Pincode = ""

	_, err := svc.Create(context.Background(), adminActor(), domain.KindSprinklerLead, input)
	if !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("sprinkler payload missing pincode should fail, got %v", err)
	}
}

func TestLeadGetHidesOtherKind(t *testing.T) {
	svc, repo := newLeadService()
	lead := seedLead(t, repo, domain.KindSprinklerLead, nil)

	_, err := svc.Get(context.Background(), adminActor(), domain.KindSolarLead, lead.ID)
	if !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("sprinkler row on solar endpoint should be NOT_FOUND, got %v", err)
	}
}

func TestLeadGetForbiddenAfterExistence(t *testing.T) {
	svc, repo := newLeadService()
	other := "someone-else"
	lead := seedLead(t, repo, domain.KindSolarLead, &other)
	actor := salesActor()

	_, err := svc.Get(context.Background(), actor, domain.KindSolarLead, lead.ID)
	if !apperrors.IsCode(err, "FORBIDDEN") {
		t.Errorf("existing out-of-scope lead should be FORBIDDEN, got %v", err)
	}

	_, err = svc.Get(context.Background(), actor, domain.KindSolarLead, "missing-id")
	if !apperrors.IsCode(err, "NOT_FOUND") {
		t.Errorf("missing lead should be NOT_FOUND, got %v", err)
	}
}

func TestLeadUpdateForbiddenForUnassignedSales(t *testing.T) {
	svc, repo := newLeadService()
	other := "someone-else"
	lead := seedLead(t, repo, domain.KindSolarLead, &other)

	city := "Nagpur"
	_, err := svc.Update(context.Background(), salesActor(), domain.KindSolarLead, lead.ID, LeadUpdateInput{City: &city})
	if !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("sales actor not assigned to the lead should be FORBIDDEN, got %v", err)
	}

	stored, err := repo.GetByID(context.Background(), lead.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.City != "Pune" {
		t.Errorf("city = %s, record should be unchanged", stored.City)
	}
}

func TestLeadUpdateInvalidStatusLeavesRecordUntouched(t *testing.T) {
	svc, repo := newLeadService()
	lead := seedLead(t, repo, domain.KindSprinklerLead, nil)

	bad := domain.LeadStatusMeterProcess // solar-only
	_, err := svc.Update(context.Background(), adminActor(), domain.KindSprinklerLead, lead.ID, LeadUpdateInput{Status: &bad})
	if !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("expected VALIDATION_FAILED, got %v", err)
	}

	stored, err := repo.GetByID(context.Background(), lead.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Status != domain.LeadStatusNew {
		t.Errorf("status = %s, record should be unchanged", stored.Status)
	}
}

func TestLeadUpdateReconcilesPayment(t *testing.T) {
	svc, repo := newLeadService()
	lead := seedLead(t, repo, domain.KindSolarLead, nil)

	total, paid := 100000.0, 40000.0
	updated, err := svc.Update(context.Background(), adminActor(), domain.KindSolarLead, lead.ID, LeadUpdateInput{
		TotalAmount: &total,
		PaidAmount:  &paid,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.PendingAmount != 60000 {
		t.Errorf("pending = %v, want 60000", updated.PendingAmount)
	}
	if updated.PaymentStatus != domain.PaymentPartial {
		t.Errorf("payment status = %s, want Partial", updated.PaymentStatus)
	}
}

func TestLeadUpdateStatusWithinVocabulary(t *testing.T) {
	svc, repo := newLeadService()
	lead := seedLead(t, repo, domain.KindSolarLead, nil)

	status := domain.LeadStatusMeterProcess
	updated, err := svc.Update(context.Background(), adminActor(), domain.KindSolarLead, lead.ID, LeadUpdateInput{Status: &status})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != domain.LeadStatusMeterProcess {
		t.Errorf("status = %s, want Meter Process", updated.Status)
	}
}

func TestLeadAssignAdminOnly(t *testing.T) {
	svc, repo := newLeadService()
	lead := seedLead(t, repo, domain.KindSolarLead, nil)

	_, err := svc.Assign(context.Background(), salesActor(), domain.KindSolarLead, lead.ID, "assignee")
	if !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("sales assign should be FORBIDDEN, got %v", err)
	}

	updated, err := svc.Assign(context.Background(), adminActor(), domain.KindSolarLead, lead.ID, "assignee")
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if updated.AssignedTo == nil || *updated.AssignedTo != "assignee" {
		t.Errorf("assignedTo = %v, want assignee", updated.AssignedTo)
	}
	if updated.Status != domain.LeadStatusNew {
		t.Errorf("assign must not touch status, got %s", updated.Status)
	}
}

func TestLeadAddReview(t *testing.T) {
	svc, repo := newLeadService()
	lead := seedLead(t, repo, domain.KindSprinklerLead, nil)

	updated, err := svc.AddReview(context.Background(), adminActor(), lead.ID, 5, "great work")
	if err != nil {
		t.Fatalf("AddReview: %v", err)
	}
	if updated.ReviewCode == nil || *updated.ReviewCode != "REV-2026-001" {
		t.Errorf("review code = %v, want REV-2026-001", updated.ReviewCode)
	}
	if updated.CustomerRating == nil || *updated.CustomerRating != 5 {
		t.Errorf("rating = %v, want 5", updated.CustomerRating)
	}
}

func TestLeadAddReviewRejectsBadRating(t *testing.T) {
	svc, repo := newLeadService()
	lead := seedLead(t, repo, domain.KindSprinklerLead, nil)

	_, err := svc.AddReview(context.Background(), adminActor(), lead.ID, 0, "")
	if !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("rating 0 should fail validation, got %v", err)
	}
}

func TestLeadAddReviewSolarNotFound(t *testing.T) {
	svc, repo := newLeadService()
	lead := seedLead(t, repo, domain.KindSolarLead, nil)

	_, err := svc.AddReview(context.Background(), adminActor(), lead.ID, 4, "")
	if !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("solar lead has no reviews, want NOT_FOUND, got %v", err)
	}
}

func TestLeadDeleteIdempotence(t *testing.T) {
	svc, repo := newLeadService()
	lead := seedLead(t, repo, domain.KindSolarLead, nil)
	ctx := context.Background()

	if err := svc.Delete(ctx, salesActor(), domain.KindSolarLead, lead.ID); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("sales delete should be FORBIDDEN, got %v", err)
	}
	if err := svc.Delete(ctx, adminActor(), domain.KindSolarLead, lead.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	err := svc.Delete(ctx, adminActor(), domain.KindSolarLead, lead.ID)
	if !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("second delete should be NOT_FOUND, got %v", err)
	}
}

func TestLeadListScopedForSales(t *testing.T) {
	svc, repo := newLeadService()
	actor := salesActor()
	mine := actor.ID
	other := "someone-else"
	seedLead(t, repo, domain.KindSolarLead, &mine)
	seedLead(t, repo, domain.KindSolarLead, &other)
	seedLead(t, repo, domain.KindSolarLead, nil)

	result, err := svc.List(context.Background(), actor, domain.KindSolarLead, LeadListInput{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("sales sees %d leads, want 1", len(result))
	}
	if result[0].AssignedTo == nil || *result[0].AssignedTo != actor.ID {
		t.Error("sales list contains a lead not assigned to the actor")
	}

	all, err := svc.List(context.Background(), adminActor(), domain.KindSolarLead, LeadListInput{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("admin sees %d leads, want 3", len(all))
	}
}
