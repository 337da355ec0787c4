package catalog

import "time"

type Category struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	ProductCount int       `bson:"product_count" json:"product_count"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

type Product struct {
	ID          string      `bson:"_id" json:"id"`
	Name        string      `bson:"name" json:"name"`
	Description string      `bson:"description" json:"description"`
	PriceCents  int         `bson:"price_cents" json:"price_cents"`
	CategoryID  string      `bson:"category_id" json:"category_id"`
	Unit        string      `bson:"unit" json:"unit"` // kg, box, bunch, ...
	Stock       int         `bson:"stock" json:"stock"`
	MinStock    int         `bson:"min_stock" json:"min_stock"`
	MaxStock    int         `bson:"max_stock" json:"max_stock"`
	Images      []string    `bson:"images" json:"images"`
	Published   bool        `bson:"published" json:"published"`
	Status      StockStatus `bson:"status" json:"status"`
	CreatedAt   time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `bson:"updated_at" json:"updated_at"`
}

type ProductInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int    `json:"price_cents"`
	CategoryID  string `json:"category_id"`
	Unit        string `json:"unit"`
	Stock       int    `json:"stock"`
	MaxStock    int    `json:"max_stock"`
	Published   bool   `json:"published"`
}
