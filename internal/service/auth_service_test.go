package service

import (
	"errors"
	"strings"
	"testing"
)

func TestGuestLoginRoundTrip(t *testing.T) {
	svc := NewAuthService("test-secret")

	resp, err := svc.GuestLogin("Ada")
	if err != nil {
		t.Fatalf("GuestLogin: %v", err)
	}
	if resp.Account != "Ada" {
		t.Errorf("Account = %q, want Ada", resp.Account)
	}

	claims, err := svc.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Account != "Ada" {
		t.Errorf("claims.Account = %q, want Ada", claims.Account)
	}
}

func TestGuestLoginGeneratesIdentity(t *testing.T) {
	svc := NewAuthService("test-secret")

	resp, err := svc.GuestLogin("")
	if err != nil {
		t.Fatalf("GuestLogin: %v", err)
	}
	if !strings.HasPrefix(resp.Account, "guest_") {
		t.Errorf("Account = %q, want a guest_ prefix", resp.Account)
	}

	other, _ := svc.GuestLogin("")
	if other.Account == resp.Account {
		t.Error("two anonymous logins share an identity")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService("test-secret")

	if _, err := svc.ValidateToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("garbage token returned %v", err)
	}
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	minter := NewAuthService("secret-a")
	verifier := NewAuthService("secret-b")

	resp, err := minter.GuestLogin("Ada")
	if err != nil {
		t.Fatalf("GuestLogin: %v", err)
	}
	if _, err := verifier.ValidateToken(resp.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("foreign-secret token returned %v", err)
	}
}
