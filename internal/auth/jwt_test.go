package auth

import (
	"testing"
	"time"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", "chatledger-test", 15*time.Minute, time.Hour)

	access, refresh, exp, err := tm.GeneratePair("u1")
	if err != nil {
		t.Fatalf("GeneratePair() error = %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Error("access expiry is not in the future")
	}

	claims, isRefresh, err := tm.Parse(access)
	if err != nil {
		t.Fatalf("Parse(access) error = %v", err)
	}
	if isRefresh {
		t.Error("access token parsed as refresh")
	}
	if claims.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", claims.UserID)
	}

	claims, isRefresh, err = tm.Parse(refresh)
	if err != nil {
		t.Fatalf("Parse(refresh) error = %v", err)
	}
	if !isRefresh {
		t.Error("refresh token not recognized as refresh")
	}
	if claims.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", claims.UserID)
	}
}

func TestTokenManager_RejectsForeignToken(t *testing.T) {
	tm := NewTokenManager("secret-a", "chatledger-test", time.Minute, time.Hour)
	other := NewTokenManager("secret-b", "chatledger-test", time.Minute, time.Hour)

	access, _, _, err := other.GeneratePair("u1")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := tm.Parse(access); err == nil {
		t.Error("Parse() accepted a token signed with a different secret")
	}
}
