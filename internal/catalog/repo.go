package catalog

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

const (
	CollProducts   = "products"
	CollCategories = "categories"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Repo struct {
	Products   *mongo.Collection
	Categories *mongo.Collection
	Watch      *watch.Hub
}

func NewRepo(db *mongo.Database, hub *watch.Hub) *Repo {
	return &Repo{
		Products:   db.Collection(CollProducts),
		Categories: db.Collection(CollCategories),
		Watch:      hub,
	}
}

func validateProductInput(in ProductInput) error {
	switch {
	case in.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case in.CategoryID == "":
		return fmt.Errorf("%w: category_id is required", ErrInvalidInput)
	case in.PriceCents < 0:
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	case in.Stock < 0 || in.MaxStock < 0:
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	case in.Stock > in.MaxStock:
		return fmt.Errorf("%w: stock exceeds max stock", ErrInvalidInput)
	}
	return nil
}

// CreateProduct inserts the product, then bumps the category's product
// counter as a second independent write. There is no transaction across the
// two documents: if the counter update fails the product stays and the
// counter is stale.
func (r *Repo) CreateProduct(ctx context.Context, in ProductInput) (Product, error) {
	if err := validateProductInput(in); err != nil {
		return Product{}, err
	}

	now := time.Now().UTC()
	min := MinStockFor(in.MaxStock)
	p := Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		CategoryID:  in.CategoryID,
		Unit:        in.Unit,
		Stock:       in.Stock,
		MinStock:    min,
		MaxStock:    in.MaxStock,
		Images:      []string{},
		Published:   in.Published,
		Status:      DeriveStatus(in.Stock, min),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.Products.InsertOne(ctx, p); err != nil {
		return Product{}, err
	}

	if _, err := r.Categories.UpdateOne(ctx,
		bson.M{"_id": in.CategoryID},
		bson.M{"$inc": bson.M{"product_count": 1}},
	); err != nil {
		return p, fmt.Errorf("product created, category counter not updated: %w", err)
	}

	r.Watch.Publish(ctx, CollProducts, watch.KindUpsert, p.ID, p)
	return p, nil
}

func (r *Repo) GetProduct(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.Products.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Product{}, ErrNotFound
	}
	return p, err
}

// ListProducts returns products, optionally restricted to one category.
// Listing recomputes the displayed status with the two-way rule, matching
// what the catalog screens always showed.
func (r *Repo) ListProducts(ctx context.Context, categoryID string) ([]Product, error) {
	filter := bson.M{}
	if categoryID != "" {
		filter["category_id"] = categoryID
	}
	cur, err := r.Products.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Product
	for cur.Next(ctx) {
		var p Product
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		p.Status = DeriveListedStatus(p.Stock, p.MinStock)
		out = append(out, p)
	}
	return out, cur.Err()
}

func (r *Repo) UpdateProduct(ctx context.Context, id string, in ProductInput) (Product, error) {
	if err := validateProductInput(in); err != nil {
		return Product{}, err
	}
	min := MinStockFor(in.MaxStock)
	update := bson.M{"$set": bson.M{
		"name":        in.Name,
		"description": in.Description,
		"price_cents": in.PriceCents,
		"category_id": in.CategoryID,
		"unit":        in.Unit,
		"stock":       in.Stock,
		"min_stock":   min,
		"max_stock":   in.MaxStock,
		"published":   in.Published,
		"status":      DeriveStatus(in.Stock, min),
		"updated_at":  time.Now().UTC(),
	}}
	res, err := r.Products.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return Product{}, err
	}
	if res.MatchedCount == 0 {
		return Product{}, ErrNotFound
	}
	p, err := r.GetProduct(ctx, id)
	if err == nil {
		r.Watch.Publish(ctx, CollProducts, watch.KindUpsert, p.ID, p)
	}
	return p, err
}

// AdjustStock sets the quantity and recomputes the status with the three-way
// rule from the value being persisted. A concurrent out-of-band write can
// still leave status stale; each writer only answers for its own value.
func (r *Repo) AdjustStock(ctx context.Context, id string, qty int) (Product, error) {
	if qty < 0 {
		return Product{}, fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}
	p, err := r.GetProduct(ctx, id)
	if err != nil {
		return Product{}, err
	}
	status := DeriveStatus(qty, p.MinStock)
	_, err = r.Products.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"stock":      qty,
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return Product{}, err
	}
	p.Stock = qty
	p.Status = status
	r.Watch.Publish(ctx, CollProducts, watch.KindUpsert, p.ID, p)
	return p, nil
}

func (r *Repo) SetPublished(ctx context.Context, id string, published bool) error {
	res, err := r.Products.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"published":  published,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	if p, err := r.GetProduct(ctx, id); err == nil {
		r.Watch.Publish(ctx, CollProducts, watch.KindUpsert, id, p)
	}
	return nil
}

func (r *Repo) AddImage(ctx context.Context, id, url string) error {
	res, err := r.Products.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"images": url},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct removes the product then decrements the category counter,
// again as two independent writes.
func (r *Repo) DeleteProduct(ctx context.Context, id string) error {
	p, err := r.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if _, err := r.Products.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return err
	}
	if _, err := r.Categories.UpdateOne(ctx,
		bson.M{"_id": p.CategoryID},
		bson.M{"$inc": bson.M{"product_count": -1}},
	); err != nil {
		return fmt.Errorf("product deleted, category counter not updated: %w", err)
	}
	r.Watch.Publish(ctx, CollProducts, watch.KindDelete, id, nil)
	return nil
}

func (r *Repo) CreateCategory(ctx context.Context, name string) (Category, error) {
	if name == "" {
		return Category{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	c := Category{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.Categories.InsertOne(ctx, c); err != nil {
		return Category{}, err
	}
	r.Watch.Publish(ctx, CollCategories, watch.KindUpsert, c.ID, c)
	return c, nil
}

func (r *Repo) ListCategories(ctx context.Context) ([]Category, error) {
	cur, err := r.Categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Category
	for cur.Next(ctx) {
		var c Category
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, cur.Err()
}

func (r *Repo) DeleteCategory(ctx context.Context, id string) error {
	res, err := r.Categories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	r.Watch.Publish(ctx, CollCategories, watch.KindDelete, id, nil)
	return nil
}
