package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssueValidateRoundtrip(t *testing.T) {
	svc := NewHMACService("secret", "talent-match", time.Hour)
	caller := uuid.New()

	tok, err := svc.Issue(caller, "job-service", []string{"matching"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.Validate(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.CallerID != caller {
		t.Fatalf("caller id mismatch: %s", claims.CallerID)
	}
	if claims.Service != "job-service" {
		t.Fatalf("service mismatch: %s", claims.Service)
	}
	if !claims.Allows("matching") {
		t.Fatalf("expected matching scope")
	}
	if claims.Allows("admin") {
		t.Fatalf("scope admin must not be granted")
	}
}

func TestValidate_Expired(t *testing.T) {
	svc := NewHMACService("secret", "talent-match", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }
	tok, err := svc.Issue(uuid.New(), "", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Validate(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	tok, err := NewHMACService("one", "talent-match", time.Hour).Issue(uuid.New(), "", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewHMACService("two", "talent-match", time.Hour).Validate(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestUnscopedTokenAllowsEverything(t *testing.T) {
	svc := NewHMACService("secret", "talent-match", time.Hour)
	tok, err := svc.Issue(uuid.New(), "legacy", nil)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := svc.Validate(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !claims.Allows("matching") {
		t.Fatalf("unscoped token must pass scope checks")
	}
}
