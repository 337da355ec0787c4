package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderCreated       = "OrderCreated"
	EventOrderStatusUpdated = "OrderStatusUpdated"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"` // e.g. "admin-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order_id
	Payload       json.RawMessage `json:"payload"`
}

type OrderCreatedPayload struct {
	OrderID    string     `json:"order_id"`
	ClientID   string     `json:"client_id"`
	Items      []LineItem `json:"items"`
	TotalCents int        `json:"total_cents"`
}

type OrderStatusUpdatedPayload struct {
	OrderID    string `json:"order_id"`
	ClientID   string `json:"client_id"`
	From       Status `json:"from"`
	To         Status `json:"to"`
	TotalCents int    `json:"total_cents"`
}
