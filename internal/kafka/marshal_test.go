package kafka

import (
	"encoding/json"
	"testing"
)

func TestUnwrapPayload(t *testing.T) {
	type statusPayload struct {
		OrderID string `json:"order_id"`
		To      string `json:"to"`
	}

	p, err := UnwrapPayload[statusPayload](json.RawMessage(`{"order_id":"ord-1","to":"shipped"}`))
	if err != nil {
		t.Fatalf("UnwrapPayload: %v", err)
	}
	if p.OrderID != "ord-1" || p.To != "shipped" {
		t.Errorf("payload = %+v", p)
	}

	if _, err := UnwrapPayload[statusPayload](json.RawMessage(`{`)); err == nil {
		t.Error("expected error for malformed payload")
	}
}
