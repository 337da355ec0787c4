package notifications

import "time"

type Notification struct {
	ID        string    `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Body      string    `bson:"body" json:"body"`
	Kind      string    `bson:"kind" json:"kind"` // info, stock, order
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
