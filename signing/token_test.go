package signing

import (
	"errors"
	"testing"
	"time"

	"agreementflow/agreement"
)

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue("ag-42", agreement.SignerClient)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	inv, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if inv.AgreementID != "ag-42" || inv.Role != agreement.SignerClient {
		t.Errorf("unexpected invitation %+v", inv)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issued := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	svc := NewTokenService("test-secret", time.Hour).
		WithClock(func() time.Time { return issued })

	token, err := svc.Issue("ag-42", agreement.SignerAgency)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc.WithClock(func() time.Time { return issued.Add(2 * time.Hour) })
	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", time.Hour).Issue("ag-1", agreement.SignerAgency)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewTokenService("secret-b", time.Hour).Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestIssueValidatesInput(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	if _, err := svc.Issue("", agreement.SignerAgency); err == nil {
		t.Errorf("missing agreement id must error")
	}
	if _, err := svc.Issue("ag-1", "employer"); err == nil {
		t.Errorf("unknown role must error")
	}
}

func TestAccessCodeRoundTrip(t *testing.T) {
	hash, err := HashAccessCode("s3cure-code")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := VerifyAccessCode(hash, "s3cure-code"); err != nil {
		t.Errorf("matching code rejected: %v", err)
	}
	if err := VerifyAccessCode(hash, "wrong-code"); !errors.Is(err, ErrAccessCodeMismatch) {
		t.Errorf("expected ErrAccessCodeMismatch, got %v", err)
	}
}

func TestAccessCodeMinimumLength(t *testing.T) {
	if _, err := HashAccessCode("abc"); err == nil {
		t.Errorf("short access code must be rejected")
	}
}
