package orders

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusProcessing, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},
		{StatusPending, StatusShipped, false},
		{StatusDelivered, StatusPending, false},
		{StatusShipped, StatusProcessing, false},
		{"unknown", StatusPending, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestNewOrder_Totals(t *testing.T) {
	o, err := NewOrder("c1", []ItemInput{
		{ProductID: "p1", Name: "Tomato", Qty: 3, PriceCents: 500},
		{ProductID: "p2", Name: "Lettuce", Qty: 2, PriceCents: 300},
	})
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}
	if o.Status != StatusPending {
		t.Errorf("status = %s, want pending", o.Status)
	}
	if o.Items[0].TotalCents != 1500 || o.Items[1].TotalCents != 600 {
		t.Errorf("line totals = %d, %d", o.Items[0].TotalCents, o.Items[1].TotalCents)
	}
	if o.TotalCents != 2100 {
		t.Errorf("total = %d, want 2100", o.TotalCents)
	}
}

func TestNewOrder_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		clientID string
		items    []ItemInput
	}{
		{"missing client", "", []ItemInput{{ProductID: "p1", Qty: 1}}},
		{"no items", "c1", nil},
		{"zero qty", "c1", []ItemInput{{ProductID: "p1", Qty: 0}}},
		{"negative price", "c1", []ItemInput{{ProductID: "p1", Qty: 1, PriceCents: -1}}},
		{"missing product id", "c1", []ItemInput{{Qty: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewOrder(tt.clientID, tt.items); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
