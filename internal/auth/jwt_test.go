package auth

import (
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	parser := NewParser("test-secret")

	raw, err := issuer.Issue(42, "jane.doe", "admin,manager")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := parser.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Username != "jane.doe" {
		t.Errorf("expected username jane.doe, got %s", claims.Username)
	}
	if claims.Roles != "admin,manager" {
		t.Errorf("expected roles admin,manager, got %s", claims.Roles)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewIssuer("secret-a", time.Hour)
	parser := NewParser("secret-b")

	raw, err := issuer.Issue(1, "u", "staff")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := parser.Parse(raw); err == nil {
		t.Fatal("expected parse to fail with wrong secret")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	issuer := NewIssuer("secret", -time.Minute)
	parser := NewParser("secret")

	raw, err := issuer.Issue(1, "u", "staff")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := parser.Parse(raw); err == nil {
		t.Fatal("expected parse to fail for expired token")
	}
}
