package service

import (
	"context"
	"testing"
	"time"

	"github.com/spec-kit/field-crm/internal/domain"
	"github.com/spec-kit/field-crm/internal/events"
	apperrors "github.com/spec-kit/field-crm/pkg/util/errorutil"
)

func newFollowupService() (*FollowupService, *fakeFollowupRepo, *fakeLeadRepo) {
	followupRepo := newFakeFollowupRepo()
	leadRepo := newFakeLeadRepo()
	svc := NewFollowupService(FollowupDependencies{
		FollowupRepo: followupRepo,
		LeadRepo:     leadRepo,
		Dispatcher:   events.NewInMemoryDispatcher(),
	})
	return svc, followupRepo, leadRepo
}

func TestFollowupAddSnapshotsCustomer(t *testing.T) {
	svc, _, leadRepo := newFollowupService()
	lead := seedLead(t, leadRepo, domain.KindSolarLead, nil)
	due := time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC)

	followup, err := svc.Add(context.Background(), adminActor(), domain.KindSolarLead, lead.ID, FollowupCreateInput{FollowupDate: due})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if followup.CustomerName != lead.CustomerName || followup.CustomerPhone != lead.Phone {
		t.Errorf("snapshot = %s/%s, want %s/%s", followup.CustomerName, followup.CustomerPhone, lead.CustomerName, lead.Phone)
	}
	if followup.Status != domain.FollowupPending {
		t.Errorf("status = %s, want Pending", followup.Status)
	}
	if followup.LeadKind != domain.KindSolarLead {
		t.Errorf("lead kind = %s, want Solar", followup.LeadKind)
	}
}

func TestFollowupAddRequiresDate(t *testing.T) {
	svc, _, leadRepo := newFollowupService()
	lead := seedLead(t, leadRepo, domain.KindSolarLead, nil)

	_, err := svc.Add(context.Background(), adminActor(), domain.KindSolarLead, lead.ID, FollowupCreateInput{})
	if !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("missing date should fail, got %v", err)
	}
}

func TestFollowupAddMissingLead(t *testing.T) {
	svc, _, _ := newFollowupService()

	_, err := svc.Add(context.Background(), adminActor(), domain.KindSolarLead, "missing", FollowupCreateInput{FollowupDate: time.Now()})
	if !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("missing lead should be NOT_FOUND, got %v", err)
	}
}

func TestFollowupAddKindMismatch(t *testing.T) {
	svc, _, leadRepo := newFollowupService()
	lead := seedLead(t, leadRepo, domain.KindSprinklerLead, nil)

	_, err := svc.Add(context.Background(), adminActor(), domain.KindSolarLead, lead.ID, FollowupCreateInput{FollowupDate: time.Now()})
	if !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("kind mismatch should be NOT_FOUND, got %v", err)
	}
}

func TestFollowupAddForbiddenForUnassignedSales(t *testing.T) {
	svc, _, leadRepo := newFollowupService()
	other := "someone-else"
	lead := seedLead(t, leadRepo, domain.KindSolarLead, &other)

	_, err := svc.Add(context.Background(), salesActor(), domain.KindSolarLead, lead.ID, FollowupCreateInput{FollowupDate: time.Now()})
	if !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("sales actor not assigned to the lead should be FORBIDDEN, got %v", err)
	}
}

func TestFollowupAddPropagatesNextDate(t *testing.T) {
	svc, _, leadRepo := newFollowupService()
	lead := seedLead(t, leadRepo, domain.KindSolarLead, nil)
	next := time.Date(2026, 9, 8, 10, 0, 0, 0, time.UTC)

	_, err := svc.Add(context.Background(), adminActor(), domain.KindSolarLead, lead.ID, FollowupCreateInput{
		FollowupDate:     time.Now(),
		NextFollowupDate: &next,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	stored, err := leadRepo.GetByID(context.Background(), lead.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.NextFollowupDate == nil || !stored.NextFollowupDate.Equal(next) {
		t.Errorf("lead nextFollowupDate = %v, want %v", stored.NextFollowupDate, next)
	}
}

func TestFollowupAddWithoutNextDateLeavesLeadAlone(t *testing.T) {
	svc, _, leadRepo := newFollowupService()
	lead := seedLead(t, leadRepo, domain.KindSolarLead, nil)

	if _, err := svc.Add(context.Background(), adminActor(), domain.KindSolarLead, lead.ID, FollowupCreateInput{FollowupDate: time.Now()}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	stored, _ := leadRepo.GetByID(context.Background(), lead.ID)
	if stored.NextFollowupDate != nil {
		t.Errorf("lead nextFollowupDate = %v, want untouched nil", stored.NextFollowupDate)
	}
}

func TestFollowupUpdateRepropagates(t *testing.T) {
	svc, _, leadRepo := newFollowupService()
	lead := seedLead(t, leadRepo, domain.KindSolarLead, nil)
	first := time.Date(2026, 9, 8, 10, 0, 0, 0, time.UTC)

	followup, err := svc.Add(context.Background(), adminActor(), domain.KindSolarLead, lead.ID, FollowupCreateInput{
		FollowupDate:     time.Now(),
		NextFollowupDate: &first,
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	second := first.AddDate(0, 0, 7)
	if _, err := svc.Update(context.Background(), adminActor(), followup.ID, FollowupUpdateInput{NextFollowupDate: &second}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	stored, _ := leadRepo.GetByID(context.Background(), lead.ID)
	if stored.NextFollowupDate == nil || !stored.NextFollowupDate.Equal(second) {
		t.Errorf("lead nextFollowupDate = %v, want %v", stored.NextFollowupDate, second)
	}
}

func TestFollowupUpdateToleratesOrphan(t *testing.T) {
	svc, _, leadRepo := newFollowupService()
	lead := seedLead(t, leadRepo, domain.KindSolarLead, nil)

	followup, err := svc.Add(context.Background(), adminActor(), domain.KindSolarLead, lead.ID, FollowupCreateInput{FollowupDate: time.Now()})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Parent lead goes away; the followup update must still stand.
	if err := leadRepo.Delete(context.Background(), lead.ID); err != nil {
		t.Fatalf("delete lead: %v", err)
	}

	next := time.Now().AddDate(0, 0, 3)
	done := domain.FollowupDone
	updated, err := svc.Update(context.Background(), adminActor(), followup.ID, FollowupUpdateInput{
		Status:           &done,
		NextFollowupDate: &next,
	})
	if err != nil {
		t.Fatalf("orphaned followup update failed: %v", err)
	}
	if updated.Status != domain.FollowupDone {
		t.Errorf("status = %s, want Done", updated.Status)
	}
}

func TestFollowupUpdateRejectsBadEnums(t *testing.T) {
	svc, _, leadRepo := newFollowupService()
	lead := seedLead(t, leadRepo, domain.KindSolarLead, nil)
	followup, err := svc.Add(context.Background(), adminActor(), domain.KindSolarLead, lead.ID, FollowupCreateInput{FollowupDate: time.Now()})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	bad := domain.FollowupStatus("Finished")
	if _, err := svc.Update(context.Background(), adminActor(), followup.ID, FollowupUpdateInput{Status: &bad}); !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Errorf("invalid status accepted: %v", err)
	}
	badResp := domain.CustomerResponse("Maybe")
	if _, err := svc.Update(context.Background(), adminActor(), followup.ID, FollowupUpdateInput{CustomerResponse: &badResp}); !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Errorf("invalid customer response accepted: %v", err)
	}
}

func TestFollowupGetScopedByCreator(t *testing.T) {
	svc, _, leadRepo := newFollowupService()
	owner := salesActor()
	ownerID := owner.ID
	lead := seedLead(t, leadRepo, domain.KindSolarLead, &ownerID)

	followup, err := svc.Add(context.Background(), owner, domain.KindSolarLead, lead.ID, FollowupCreateInput{FollowupDate: time.Now()})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if _, err := svc.Get(context.Background(), owner, followup.ID); err != nil {
		t.Errorf("creator blocked from own followup: %v", err)
	}
	if _, err := svc.Get(context.Background(), adminActor(), followup.ID); err != nil {
		t.Errorf("admin blocked: %v", err)
	}
	if _, err := svc.Get(context.Background(), salesActor(), followup.ID); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Errorf("other sales user should be FORBIDDEN, got %v", err)
	}
}

func TestFollowupListToday(t *testing.T) {
	svc, followupRepo, _ := newFollowupService()
	fixed := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	seed := func(due time.Time) {
		f := &domain.Followup{
			LeadID:       "lead-1",
			LeadKind:     domain.KindSolarLead,
			CustomerName: "Ramesh Kumar",
			FollowupDate: due,
			Status:       domain.FollowupPending,
			CreatedBy:    "creator",
		}
		if err := followupRepo.Create(context.Background(), f); err != nil {
			t.Fatalf("seed followup: %v", err)
		}
	}
	seed(time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC))
	seed(time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC))
	seed(time.Date(2026, 8, 27, 23, 0, 0, 0, time.UTC))

	result, err := svc.List(context.Background(), adminActor(), FollowupListInput{Today: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("today filter returned %d followups, want 1", len(result))
	}
}

func TestFollowupDeleteAdminOnly(t *testing.T) {
	svc, _, leadRepo := newFollowupService()
	lead := seedLead(t, leadRepo, domain.KindSolarLead, nil)
	followup, err := svc.Add(context.Background(), adminActor(), domain.KindSolarLead, lead.ID, FollowupCreateInput{FollowupDate: time.Now()})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := svc.Delete(context.Background(), salesActor(), followup.ID); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("sales delete should be FORBIDDEN, got %v", err)
	}
	if err := svc.Delete(context.Background(), adminActor(), followup.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(context.Background(), adminActor(), followup.ID); !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("second delete should be NOT_FOUND, got %v", err)
	}
}
