package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agroshop/admin-api/internal/watch"
)

const CollNotifications = "notifications"

type Repo struct {
	Notifications *mongo.Collection
	Watch         *watch.Hub
}

func NewRepo(db *mongo.Database, hub *watch.Hub) *Repo {
	return &Repo{Notifications: db.Collection(CollNotifications), Watch: hub}
}

func (r *Repo) Insert(ctx context.Context, title, body, kind string) (Notification, error) {
	n := Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Body:      body,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.Notifications.InsertOne(ctx, n); err != nil {
		return Notification{}, err
	}
	r.Watch.Publish(ctx, CollNotifications, watch.KindUpsert, n.ID, n)
	return n, nil
}

func (r *Repo) List(ctx context.Context) ([]Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.Notifications.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Notification
	for cur.Next(ctx) {
		var n Notification
		if err := cur.Decode(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, cur.Err()
}
