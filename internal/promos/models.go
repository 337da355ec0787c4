package promos

import "time"

// ScopeAll applies a promotion to the whole catalog instead of one product.
const ScopeAll = "all"

type Kind string

const (
	KindPercentage Kind = "percentage"
	KindFixed      Kind = "fixed"
)

type Promotion struct {
	ID         string    `bson:"_id" json:"id"`
	Scope      string    `bson:"scope" json:"scope"` // product id or "all"
	Kind       Kind      `bson:"kind" json:"kind"`
	Value      int       `bson:"value" json:"value"` // percent for percentage, cents for fixed
	StartsAt   time.Time `bson:"starts_at" json:"starts_at"`
	EndsAt     time.Time `bson:"ends_at" json:"ends_at"`
	UsageCount int       `bson:"usage_count" json:"usage_count"`
	UsageCap   int       `bson:"usage_cap" json:"usage_cap"` // 0 = unlimited
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

type PromotionInput struct {
	Scope    string    `json:"scope"`
	Kind     Kind      `json:"kind"`
	Value    int       `json:"value"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	UsageCap int       `json:"usage_cap"`
}
