package orders

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

type LineItem struct {
	ProductID  string `bson:"product_id" json:"product_id"`
	Name       string `bson:"name" json:"name"`
	Image      string `bson:"image" json:"image"`
	Qty        int    `bson:"qty" json:"qty"`
	PriceCents int    `bson:"price_cents" json:"price_cents"`
	TotalCents int    `bson:"total_cents" json:"total_cents"`
}

type Order struct {
	ID         string     `bson:"_id" json:"id"`
	ClientID   string     `bson:"client_id" json:"client_id"`
	Items      []LineItem `bson:"items" json:"items"`
	TotalCents int        `bson:"total_cents" json:"total_cents"`
	Status     Status     `bson:"status" json:"status"`
	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
}

type ItemInput struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	Image      string `json:"image"`
	Qty        int    `json:"qty"`
	PriceCents int    `json:"price_cents"`
}

// NewOrder builds a pending order, computing each line total and the overall
// total from the inputs.
func NewOrder(clientID string, items []ItemInput) (Order, error) {
	if clientID == "" {
		return Order{}, fmt.Errorf("%w: client_id is required", ErrInvalidInput)
	}
	if len(items) == 0 {
		return Order{}, fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
	}

	o := Order{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	for _, in := range items {
		if in.ProductID == "" {
			return Order{}, fmt.Errorf("%w: item product_id is required", ErrInvalidInput)
		}
		if in.Qty <= 0 {
			return Order{}, fmt.Errorf("%w: invalid qty for product %s", ErrInvalidInput, in.ProductID)
		}
		if in.PriceCents < 0 {
			return Order{}, fmt.Errorf("%w: invalid price for product %s", ErrInvalidInput, in.ProductID)
		}
		line := LineItem{
			ProductID:  in.ProductID,
			Name:       in.Name,
			Image:      in.Image,
			Qty:        in.Qty,
			PriceCents: in.PriceCents,
			TotalCents: in.Qty * in.PriceCents,
		}
		o.Items = append(o.Items, line)
		o.TotalCents += line.TotalCents
	}
	return o, nil
}
