package identity

import (
	"testing"
	"time"
)

func TestToken_RoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	a := Account{ID: "acc-1", Role: RoleDriver, DriverID: "drv-1"}

	tok, err := IssueToken(secret, a, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	claims, err := VerifyToken(secret, tok)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Subject != "acc-1" {
		t.Errorf("subject = %q, want acc-1", claims.Subject)
	}
	if claims.Role != RoleDriver || claims.DriverID != "drv-1" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestToken_WrongSecret(t *testing.T) {
	tok, err := IssueToken([]byte("secret-a"), Account{ID: "acc-1", Role: RoleAdmin}, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := VerifyToken([]byte("secret-b"), tok); err == nil {
		t.Error("expected verification to fail with the wrong secret")
	}
}

func TestToken_Expired(t *testing.T) {
	secret := []byte("test-secret")
	tok, err := IssueToken(secret, Account{ID: "acc-1", Role: RoleAdmin}, -time.Minute)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := VerifyToken(secret, tok); err == nil {
		t.Error("expected expired token to fail verification")
	}
}
