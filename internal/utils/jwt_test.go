package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	principalID := uuid.New()

	token, jti, err := GenerateToken(secret, principalID, KindMerchant, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if jti == "" {
		t.Fatal("expected a non-empty jti")
	}

	info, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if info.PrincipalID != principalID {
		t.Errorf("principal id = %s, want %s", info.PrincipalID, principalID)
	}
	if info.Kind != KindMerchant {
		t.Errorf("kind = %s, want %s", info.Kind, KindMerchant)
	}
	if info.JTI != jti {
		t.Errorf("jti = %s, want %s", info.JTI, jti)
	}
	if info.ExpiresAt.IsZero() {
		t.Error("expected a populated expiry")
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, _, err := GenerateToken("secret-a", uuid.New(), KindAdmin, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ParseToken("secret-b", token); err == nil {
		t.Error("token signed with a different secret should not parse")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, _, err := GenerateToken("test-secret", uuid.New(), KindCustomer, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ParseToken("test-secret", token); err == nil {
		t.Error("expired token should not parse")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken("test-secret", "not-a-token"); err == nil {
		t.Error("garbage should not parse")
	}
}
