package clients

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agroshop/admin-api/internal/watch"
)

// Sub-collections are parent-scoped collections filtered by client_id.
const (
	CollClients             = "clients"
	CollClientFavorites     = "client_favorites"
	CollClientCoupons       = "client_coupons"
	CollClientNotifications = "client_notifications"
)

var (
	ErrNotFound     = errors.New("client not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Repo struct {
	Clients       *mongo.Collection
	Favorites     *mongo.Collection
	Coupons       *mongo.Collection
	Notifications *mongo.Collection
	Watch         *watch.Hub
}

func NewRepo(db *mongo.Database, hub *watch.Hub) *Repo {
	return &Repo{
		Clients:       db.Collection(CollClients),
		Favorites:     db.Collection(CollClientFavorites),
		Coupons:       db.Collection(CollClientCoupons),
		Notifications: db.Collection(CollClientNotifications),
		Watch:         hub,
	}
}

func (r *Repo) Create(ctx context.Context, in ClientInput) (Client, error) {
	if in.Name == "" {
		return Client{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	c := Client{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.Clients.InsertOne(ctx, c); err != nil {
		return Client{}, err
	}
	r.Watch.Publish(ctx, CollClients, watch.KindUpsert, c.ID, c)
	return c, nil
}

func (r *Repo) Get(ctx context.Context, id string) (Client, error) {
	var c Client
	err := r.Clients.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Client{}, ErrNotFound
	}
	return c, err
}

func (r *Repo) List(ctx context.Context) ([]Client, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.Clients.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Client
	for cur.Next(ctx) {
		var c Client
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, cur.Err()
}

func (r *Repo) Update(ctx context.Context, id string, in ClientInput) (Client, error) {
	if in.Name == "" {
		return Client{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	res, err := r.Clients.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"name":    in.Name,
		"email":   in.Email,
		"phone":   in.Phone,
		"address": in.Address,
	}})
	if err != nil {
		return Client{}, err
	}
	if res.MatchedCount == 0 {
		return Client{}, ErrNotFound
	}
	c, err := r.Get(ctx, id)
	if err == nil {
		r.Watch.Publish(ctx, CollClients, watch.KindUpsert, c.ID, c)
	}
	return c, err
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	res, err := r.Clients.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	r.Watch.Publish(ctx, CollClients, watch.KindDelete, id, nil)
	return nil
}

func (r *Repo) AddFavorite(ctx context.Context, clientID, productID, name, image string) (Favorite, error) {
	if productID == "" {
		return Favorite{}, fmt.Errorf("%w: product_id is required", ErrInvalidInput)
	}
	f := Favorite{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		ProductID: productID,
		Name:      name,
		Image:     image,
		AddedAt:   time.Now().UTC(),
	}
	_, err := r.Favorites.InsertOne(ctx, f)
	return f, err
}

func (r *Repo) ListFavorites(ctx context.Context, clientID string) ([]Favorite, error) {
	cur, err := r.Favorites.Find(ctx, bson.M{"client_id": clientID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Favorite
	for cur.Next(ctx) {
		var f Favorite
		if err := cur.Decode(&f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, cur.Err()
}

func (r *Repo) AddCoupon(ctx context.Context, clientID, code string, percentOff int, expiresAt time.Time) (Coupon, error) {
	if code == "" || percentOff <= 0 || percentOff > 100 {
		return Coupon{}, fmt.Errorf("%w: bad coupon", ErrInvalidInput)
	}
	c := Coupon{
		ID:         uuid.NewString(),
		ClientID:   clientID,
		Code:       code,
		PercentOff: percentOff,
		ExpiresAt:  expiresAt,
		CreatedAt:  time.Now().UTC(),
	}
	_, err := r.Coupons.InsertOne(ctx, c)
	return c, err
}

func (r *Repo) ListCoupons(ctx context.Context, clientID string) ([]Coupon, error) {
	cur, err := r.Coupons.Find(ctx, bson.M{"client_id": clientID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Coupon
	for cur.Next(ctx) {
		var c Coupon
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, cur.Err()
}

func (r *Repo) AddNotification(ctx context.Context, clientID, title, body string) (Notification, error) {
	if title == "" {
		return Notification{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	n := Notification{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.Notifications.InsertOne(ctx, n); err != nil {
		return Notification{}, err
	}
	r.Watch.Publish(ctx, CollClientNotifications, watch.KindUpsert, n.ID, n)
	return n, nil
}

func (r *Repo) ListNotifications(ctx context.Context, clientID string) ([]Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.Notifications.Find(ctx, bson.M{"client_id": clientID}, opts)
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
