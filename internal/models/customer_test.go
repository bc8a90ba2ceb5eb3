package models

import (
	"testing"
	"time"
)

func TestTierForSpend(t *testing.T) {
	cases := []struct {
		total float64
		want  Tier
	}{
		{0, TierBronze},
		{499.99, TierBronze},
		{500, TierSilver},
		{1499.99, TierSilver},
		{1500, TierGold},
		{4999.99, TierGold},
		{5000, TierPlatinum},
		{100000, TierPlatinum},
	}

	for _, tc := range cases {
		if got := TierForSpend(tc.total); got != tc.want {
			t.Errorf("TierForSpend(%v) = %s, want %s", tc.total, got, tc.want)
		}
	}
}

func TestVerificationCodeExpired(t *testing.T) {
	now := time.Now()
	code := VerificationCode{ExpiresAt: now.Add(5 * time.Minute)}

	if code.Expired(now) {
		t.Error("code should not be expired before its expiry")
	}
	if !code.Expired(now.Add(5 * time.Minute)) {
		t.Error("code should be expired exactly at its expiry")
	}
	if !code.Expired(now.Add(10 * time.Minute)) {
		t.Error("code should be expired after its expiry")
	}
}
