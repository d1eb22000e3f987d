package auth

import (
	"context"
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("super-secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}

	if err := CheckPassword(hash, "super-secret"); err != nil {
		t.Fatalf("expected password to match, got %v", err)
	}

	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"
	claims := Claims{UserID: "u1", TenantID: "t1", RoleName: RoleHR}

	token, err := GenerateToken(secret, claims, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	parsed, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if parsed.UserID != claims.UserID || parsed.TenantID != claims.TenantID || parsed.RoleName != claims.RoleName {
		t.Fatalf("claims mismatch: %+v", parsed)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("right-secret", Claims{UserID: "u1"}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("wrong-secret", token); err == nil {
		t.Fatal("expected parse error with wrong secret")
	}
}

func TestStaticPermissions(t *testing.T) {
	perms := StaticPermissions{}

	ok, err := perms.HasPermission(context.Background(), RoleHR, PermPayrollRun)
	if err != nil || !ok {
		t.Fatalf("expected hr to run payroll, got %v (%v)", ok, err)
	}

	ok, err = perms.HasPermission(context.Background(), RoleEmployee, PermPayrollRun)
	if err != nil || ok {
		t.Fatalf("expected employee to be denied payroll run, got %v (%v)", ok, err)
	}

	ok, err = perms.HasPermission(context.Background(), "unknown-role", PermPayrollRead)
	if err != nil || ok {
		t.Fatalf("expected unknown role to be denied, got %v (%v)", ok, err)
	}
}

func TestRolePermissionsNonEmpty(t *testing.T) {
	for role, perms := range RolePermissions {
		if len(perms) == 0 {
			t.Fatalf("role %s has no permissions", role)
		}
	}
}
