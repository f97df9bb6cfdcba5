package access

import (
	"testing"

	"github.com/spec-kit/field-crm/internal/domain"
	apperrors "github.com/spec-kit/field-crm/pkg/util/errorutil"
)

func strPtr(s string) *string { return &s }

func TestCanAccess(t *testing.T) {
	admin := &domain.User{ID: "u-admin", Role: domain.RoleAdmin}
	sales := &domain.User{ID: "u-sales", Role: domain.RoleSales}
	svc := &domain.User{ID: "u-svc", Role: domain.RoleService}

	tests := []struct {
		name       string
		actor      *domain.User
		kind       domain.WorkItemKind
		assignedTo *string
		want       bool
	}{
		{"admin sees any lead", admin, domain.KindSolarLead, strPtr("someone-else"), true},
		{"admin sees unassigned", admin, domain.KindSprinklerLead, nil, true},
		{"admin sees service requests", admin, domain.KindServiceRequest, nil, true},
		{"sales sees own solar lead", sales, domain.KindSolarLead, strPtr("u-sales"), true},
		{"sales sees own sprinkler lead", sales, domain.KindSprinklerLead, strPtr("u-sales"), true},
		{"sales blocked from others lead", sales, domain.KindSolarLead, strPtr("u-other"), false},
		{"sales blocked from unassigned lead", sales, domain.KindSolarLead, nil, false},
		{"sales blocked from service requests", sales, domain.KindServiceRequest, strPtr("u-sales"), false},
		{"sales blocked from tickets", sales, domain.KindPlantTicket, strPtr("u-sales"), false},
		{"service sees own request", svc, domain.KindServiceRequest, strPtr("u-svc"), true},
		{"service blocked from others request", svc, domain.KindServiceRequest, strPtr("u-other"), false},
		{"service blocked from leads", svc, domain.KindSolarLead, strPtr("u-svc"), false},
		{"nil actor", nil, domain.KindSolarLead, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAccess(tt.actor, tt.kind, tt.assignedTo); got != tt.want {
				t.Errorf("CanAccess = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckReturnsForbidden(t *testing.T) {
	sales := &domain.User{ID: "u-sales", Role: domain.RoleSales}
	err := Check(sales, domain.KindSolarLead, strPtr("u-other"))
	if !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
	if err := Check(sales, domain.KindSolarLead, strPtr("u-sales")); err != nil {
		t.Fatalf("unexpected error for owned record: %v", err)
	}
}

func TestScopeOwner(t *testing.T) {
	admin := &domain.User{ID: "u-admin", Role: domain.RoleAdmin}
	if ScopeOwner(admin) != nil {
		t.Error("admin list scope should be unrestricted")
	}
	sales := &domain.User{ID: "u-sales", Role: domain.RoleSales}
	owner := ScopeOwner(sales)
	if owner == nil || *owner != "u-sales" {
		t.Errorf("sales list scope = %v, want own id", owner)
	}
}

func TestRequireAdmin(t *testing.T) {
	if err := RequireAdmin(&domain.User{ID: "a", Role: domain.RoleAdmin}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := RequireAdmin(&domain.User{ID: "s", Role: domain.RoleSales})
	if !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
}
