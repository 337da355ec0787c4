package promos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agroshop/admin-api/internal/watch"
)

const CollPromotions = "promotions"

var (
	ErrNotFound     = errors.New("promotion not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotActive    = errors.New("promotion not active")
)

type Repo struct {
	Promotions *mongo.Collection
	Watch      *watch.Hub
	Now        func() time.Time
}

func NewRepo(db *mongo.Database, hub *watch.Hub) *Repo {
	return &Repo{
		Promotions: db.Collection(CollPromotions),
		Watch:      hub,
		Now:        func() time.Time { return time.Now().UTC() },
	}
}

func validate(in PromotionInput) error {
	switch {
	case in.Scope == "":
		return fmt.Errorf("%w: scope is required (product id or %q)", ErrInvalidInput, ScopeAll)
	case in.Kind != KindPercentage && in.Kind != KindFixed:
		return fmt.Errorf("%w: kind must be percentage or fixed", ErrInvalidInput)
	case in.Kind == KindPercentage && (in.Value <= 0 || in.Value > 100):
		return fmt.Errorf("%w: percentage must be in 1..100", ErrInvalidInput)
	case in.Kind == KindFixed && in.Value <= 0:
		return fmt.Errorf("%w: fixed discount must be positive", ErrInvalidInput)
	case !in.EndsAt.After(in.StartsAt):
		return fmt.Errorf("%w: ends_at must follow starts_at", ErrInvalidInput)
	case in.UsageCap < 0:
		return fmt.Errorf("%w: usage cap must not be negative", ErrInvalidInput)
	}
	return nil
}

func (r *Repo) Create(ctx context.Context, in PromotionInput) (Promotion, error) {
	if err := validate(in); err != nil {
		return Promotion{}, err
	}
	p := Promotion{
		ID:        uuid.NewString(),
		Scope:     in.Scope,
		Kind:      in.Kind,
		Value:     in.Value,
		StartsAt:  in.StartsAt,
		EndsAt:    in.EndsAt,
		UsageCap:  in.UsageCap,
		CreatedAt: r.Now(),
	}
	if _, err := r.Promotions.InsertOne(ctx, p); err != nil {
		return Promotion{}, err
	}
	r.Watch.Publish(ctx, CollPromotions, watch.KindUpsert, p.ID, p)
	return p, nil
}

func (r *Repo) Get(ctx context.Context, id string) (Promotion, error) {
	var p Promotion
	err := r.Promotions.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Promotion{}, ErrNotFound
	}
	return p, err
}

func (r *Repo) List(ctx context.Context) ([]Promotion, error) {
	cur, err := r.Promotions.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Promotion
	for cur.Next(ctx) {
		var p Promotion
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cur.Err()
}

func (r *Repo) Update(ctx context.Context, id string, in PromotionInput) (Promotion, error) {
	if err := validate(in); err != nil {
		return Promotion{}, err
	}
	res, err := r.Promotions.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"scope":     in.Scope,
		"kind":      in.Kind,
		"value":     in.Value,
		"starts_at": in.StartsAt,
		"ends_at":   in.EndsAt,
		"usage_cap": in.UsageCap,
	}})
	if err != nil {
		return Promotion{}, err
	}
	if res.MatchedCount == 0 {
		return Promotion{}, ErrNotFound
	}
	p, err := r.Get(ctx, id)
	if err == nil {
		r.Watch.Publish(ctx, CollPromotions, watch.KindUpsert, p.ID, p)
	}
	return p, err
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	res, err := r.Promotions.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	r.Watch.Publish(ctx, CollPromotions, watch.KindDelete, id, nil)
	return nil
}

// Redeem bumps the usage counter of an active promotion. The check and the
// increment are separate operations; under concurrent redeems a capped
// promotion can overshoot slightly, which the best-effort model accepts.
func (r *Repo) Redeem(ctx context.Context, id string) (Promotion, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return Promotion{}, err
	}
	if st := DeriveStatus(p, r.Now()); st != StatusActive {
		return Promotion{}, fmt.Errorf("%w: status is %s", ErrNotActive, st)
	}
	if _, err := r.Promotions.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$inc": bson.M{"usage_count": 1}}); err != nil {
		return Promotion{}, err
	}
	p.UsageCount++
	r.Watch.Publish(ctx, CollPromotions, watch.KindUpsert, p.ID, p)
	return p, nil
}
