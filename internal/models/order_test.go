package models

import "testing"

func TestOrderStatusHappyPath(t *testing.T) {
	path := []OrderStatus{
		OrderPending, OrderConfirmed, OrderPreparing,
		OrderReady, OrderOutForDelivery, OrderDelivered,
	}

	for i := 0; i < len(path)-1; i++ {
		if !path[i].CanTransitionTo(path[i+1]) {
			t.Errorf("expected %s -> %s to be allowed", path[i], path[i+1])
		}
	}
}

func TestOrderStatusRejectBranch(t *testing.T) {
	if !OrderPending.CanTransitionTo(OrderRejected) {
		t.Error("pending -> rejected should be allowed")
	}
	if !OrderConfirmed.CanTransitionTo(OrderRejected) {
		t.Error("confirmed -> rejected should be allowed")
	}

	for _, from := range []OrderStatus{OrderPreparing, OrderReady, OrderOutForDelivery, OrderDelivered} {
		if from.CanTransitionTo(OrderRejected) {
			t.Errorf("%s -> rejected should not be allowed", from)
		}
	}
}

func TestOrderStatusCancelFromNonTerminal(t *testing.T) {
	for _, from := range []OrderStatus{OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderOutForDelivery} {
		if !from.CanTransitionTo(OrderCancelled) {
			t.Errorf("%s -> cancelled should be allowed", from)
		}
	}

	for _, from := range []OrderStatus{OrderDelivered, OrderRejected, OrderCancelled} {
		if from.CanTransitionTo(OrderCancelled) {
			t.Errorf("terminal %s -> cancelled should not be allowed", from)
		}
	}
}

func TestOrderStatusNoBackwardTransitions(t *testing.T) {
	forward := []OrderStatus{
		OrderPending, OrderConfirmed, OrderPreparing,
		OrderReady, OrderOutForDelivery, OrderDelivered,
	}

	for i := 1; i < len(forward); i++ {
		for j := 0; j < i; j++ {
			if forward[i].CanTransitionTo(forward[j]) {
				t.Errorf("backward %s -> %s should not be allowed", forward[i], forward[j])
			}
		}
	}
}

func TestOrderStatusTerminalStates(t *testing.T) {
	cases := map[OrderStatus]bool{
		OrderPending:        false,
		OrderConfirmed:      false,
		OrderPreparing:      false,
		OrderReady:          false,
		OrderOutForDelivery: false,
		OrderDelivered:      true,
		OrderRejected:       true,
		OrderCancelled:      true,
	}

	for status, want := range cases {
		if got := status.IsTerminal(); got != want {
			t.Errorf("IsTerminal(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestStatusTimestampColumn(t *testing.T) {
	cases := map[OrderStatus]string{
		OrderConfirmed:      "confirmed_at",
		OrderPreparing:      "prepared_at",
		OrderReady:          "ready_at",
		OrderOutForDelivery: "out_for_delivery_at",
		OrderDelivered:      "delivered_at",
		OrderRejected:       "rejected_at",
		OrderCancelled:      "cancelled_at",
	}

	for status, want := range cases {
		column, ok := StatusTimestampColumn(status)
		if !ok || column != want {
			t.Errorf("StatusTimestampColumn(%s) = %q, %v; want %q", status, column, ok, want)
		}
	}

	if _, ok := StatusTimestampColumn(OrderPending); ok {
		t.Error("pending should not have a timestamp column")
	}
}
