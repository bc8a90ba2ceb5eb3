package services

import (
	"strings"
	"testing"

	"github.com/example/dasturxon/internal/models"
)

func TestValidateTransitionOptionsRejection(t *testing.T) {
	fields := ValidateTransitionOptions(models.OrderRejected, TransitionOptions{})
	if _, ok := fields["reason"]; !ok {
		t.Error("rejecting without a reason should fail validation")
	}

	fields = ValidateTransitionOptions(models.OrderRejected, TransitionOptions{Reason: "out of ingredients"})
	if len(fields) != 0 {
		t.Errorf("valid rejection should pass, got %v", fields)
	}

	fields = ValidateTransitionOptions(models.OrderRejected, TransitionOptions{Reason: strings.Repeat("a", 500)})
	if len(fields) != 0 {
		t.Errorf("500-char reason should pass, got %v", fields)
	}

	fields = ValidateTransitionOptions(models.OrderRejected, TransitionOptions{Reason: strings.Repeat("a", 501)})
	if _, ok := fields["reason"]; !ok {
		t.Error("501-char reason should fail validation")
	}
}

func TestValidateTransitionOptionsEstimatedMinutes(t *testing.T) {
	for _, minutes := range []int{0, 1, 30, 300} {
		fields := ValidateTransitionOptions(models.OrderConfirmed, TransitionOptions{EstimatedMinutes: minutes})
		if len(fields) != 0 {
			t.Errorf("estimated_minutes=%d should pass, got %v", minutes, fields)
		}
	}

	for _, minutes := range []int{-5, 301, 1000} {
		fields := ValidateTransitionOptions(models.OrderConfirmed, TransitionOptions{EstimatedMinutes: minutes})
		if _, ok := fields["estimated_minutes"]; !ok {
			t.Errorf("estimated_minutes=%d should fail validation", minutes)
		}
	}

	// ETA is only read on confirmation.
	fields := ValidateTransitionOptions(models.OrderPreparing, TransitionOptions{EstimatedMinutes: 5000})
	if len(fields) != 0 {
		t.Errorf("estimated_minutes is ignored outside confirmation, got %v", fields)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{10.006, 10.01},
		{10.004, 10.0},
		{0, 0},
		{99.999, 100.0},
	}
	for _, tc := range cases {
		if got := round2(tc.in); got != tc.want {
			t.Errorf("round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	number := generateOrderNumber()
	if !strings.HasPrefix(number, "DT-") {
		t.Errorf("order number %q should carry the DT- prefix", number)
	}
	if len(number) <= len("DT-") {
		t.Errorf("order number %q is missing its numeric part", number)
	}
}
