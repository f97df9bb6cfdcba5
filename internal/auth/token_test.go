package auth

import (
	"testing"

	"github.com/spec-kit/field-crm/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, expiresAt, err := tm.GenerateToken("user-1", domain.RoleSales)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if expiresAt.IsZero() {
		t.Error("zero expiry")
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("user id = %s, want user-1", claims.UserID)
	}
	if claims.Role != domain.RoleSales {
		t.Errorf("role = %s, want Sales", claims.Role)
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 60).GenerateToken("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := NewTokenManager("secret-b", 60).ParseToken(token); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret123", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := ComparePassword(hash, "secret123"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Error("wrong password accepted")
	}
}
