package clients

import "time"

type Client struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone" json:"phone"`
	Address   string    `bson:"address" json:"address"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type ClientInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Favorite is an entry in a client's favorites sub-collection: a product
// reference plus the display fields the dashboard shows without a join.
type Favorite struct {
	ID        string    `bson:"_id" json:"id"`
	ClientID  string    `bson:"client_id" json:"client_id"`
	ProductID string    `bson:"product_id" json:"product_id"`
	Name      string    `bson:"name" json:"name"`
	Image     string    `bson:"image" json:"image"`
	AddedAt   time.Time `bson:"added_at" json:"added_at"`
}

type Coupon struct {
	ID         string    `bson:"_id" json:"id"`
	ClientID   string    `bson:"client_id" json:"client_id"`
	Code       string    `bson:"code" json:"code"`
	PercentOff int       `bson:"percent_off" json:"percent_off"`
	ExpiresAt  time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

type Notification struct {
	ID        string    `bson:"_id" json:"id"`
	ClientID  string    `bson:"client_id" json:"client_id"`
	Title     string    `bson:"title" json:"title"`
	Body      string    `bson:"body" json:"body"`
	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
