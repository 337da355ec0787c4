package orders

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agroshop/admin-api/internal/watch"
)

const CollOrders = "orders"

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type Repo struct {
	Orders *mongo.Collection
	Watch  *watch.Hub
}

func NewRepo(db *mongo.Database, hub *watch.Hub) *Repo {
	return &Repo{Orders: db.Collection(CollOrders), Watch: hub}
}

func (r *Repo) Create(ctx context.Context, clientID string, items []ItemInput) (Order, error) {
	o, err := NewOrder(clientID, items)
	if err != nil {
		return Order{}, err
	}
	if _, err := r.Orders.InsertOne(ctx, o); err != nil {
		return Order{}, err
	}
	r.Watch.Publish(ctx, CollOrders, watch.KindUpsert, o.ID, o)
	return o, nil
}

func (r *Repo) Get(ctx context.Context, id string) (Order, error) {
	var o Order
	err := r.Orders.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Order{}, ErrNotFound
	}
	return o, err
}

// List returns orders newest first, optionally restricted to one client.
func (r *Repo) List(ctx context.Context, clientID string) ([]Order, error) {
	filter := bson.M{}
	if clientID != "" {
		filter["client_id"] = clientID
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.Orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Order
	for cur.Next(ctx) {
		var o Order
		if err := cur.Decode(&o); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, cur.Err()
}

// UpdateStatus moves the order along the pipeline. The transition table is
// checked against the currently stored status; the previous status is
// returned for the event payload.
func (r *Repo) UpdateStatus(ctx context.Context, id string, to Status) (Order, Status, error) {
	if !IsKnown(to) {
		return Order{}, "", fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, to)
	}
	o, err := r.Get(ctx, id)
	if err != nil {
		return Order{}, "", err
	}
	from := o.Status
	if !CanTransition(from, to) {
		return Order{}, "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	if _, err := r.Orders.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": to}}); err != nil {
		return Order{}, "", err
	}
	o.Status = to
	r.Watch.Publish(ctx, CollOrders, watch.KindUpsert, o.ID, o)
	return o, from, nil
}
