package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/field-crm/internal/domain"
	apperrors "github.com/spec-kit/field-crm/pkg/util/errorutil"
)

func newStaffService() (*StaffService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	svc := NewStaffService(StaffDependencies{UserRepo: repo, BcryptCost: bcrypt.MinCost})
	return svc, repo
}

func staffCreateInput() StaffCreateInput {
	return StaffCreateInput{
		Name:     "Field Tech",
		Email:    "tech@example.com",
		Password: "secret123",
		Phone:    "9833333333",
		Role:     domain.RoleService,
	}
}

func TestStaffCreateAdminOnly(t *testing.T) {
	svc, _ := newStaffService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, salesActor(), staffCreateInput()); !apperrors.IsCode(err, "FORBIDDEN") {
		t.Fatalf("sales create should be FORBIDDEN, got %v", err)
	}

	user, err := svc.Create(ctx, adminActor(), staffCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.Role != domain.RoleService {
		t.Errorf("role = %s, want Service", user.Role)
	}
	if user.Status != domain.UserStatusActive {
		t.Errorf("status = %s, want Active", user.Status)
	}
}

func TestStaffCreateValidation(t *testing.T) {
	svc, _ := newStaffService()
	ctx := context.Background()

	input := staffCreateInput()
	input.Role = "Manager"
	if _, err := svc.Create(ctx, adminActor(), input); !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Errorf("unknown role accepted: %v", err)
	}

	input = staffCreateInput()
	input.Email = ""
	if _, err := svc.Create(ctx, adminActor(), input); !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Errorf("missing email accepted: %v", err)
	}
}

func TestStaffCreateDuplicateEmail(t *testing.T) {
	svc, _ := newStaffService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, adminActor(), staffCreateInput()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, adminActor(), staffCreateInput()); !apperrors.IsCode(err, "CONFLICT") {
		t.Fatalf("duplicate email should be CONFLICT, got %v", err)
	}
}

func TestStaffSetStatus(t *testing.T) {
	svc, _ := newStaffService()
	ctx := context.Background()
	user, err := svc.Create(ctx, adminActor(), staffCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.SetStatus(ctx, adminActor(), user.ID, domain.UserStatusInactive)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if updated.Status != domain.UserStatusInactive {
		t.Errorf("status = %s, want Inactive", updated.Status)
	}

	if _, err := svc.SetStatus(ctx, adminActor(), user.ID, "Suspended"); !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Errorf("unknown status accepted: %v", err)
	}
}

func TestStaffDeleteGuards(t *testing.T) {
	svc, _ := newStaffService()
	ctx := context.Background()
	admin := adminActor()

	if err := svc.Delete(ctx, admin, admin.ID); !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("self-delete should fail validation, got %v", err)
	}

	user, err := svc.Create(ctx, admin, staffCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, admin, user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, admin, user.ID); !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("second delete should be NOT_FOUND, got %v", err)
	}
}

func TestStaffUpdateRole(t *testing.T) {
	svc, _ := newStaffService()
	ctx := context.Background()
	user, err := svc.Create(ctx, adminActor(), staffCreateInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	role := domain.RoleSales
	updated, err := svc.Update(ctx, adminActor(), user.ID, StaffUpdateInput{Role: &role})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Role != domain.RoleSales {
		t.Errorf("role = %s, want Sales", updated.Role)
	}
}
