package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a supplier-owned catalog entry. BasePrice is in paise.
type Product struct {
	ID          uuid.UUID  `json:"id"`
	SupplierID  uuid.UUID  `json:"supplierId"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Unit        string     `json:"unit"`
	BasePrice   int64      `json:"basePrice"`
	ImgEmoji    string     `json:"imgEmoji,omitempty"`
	IsAvailable bool       `json:"isAvailable"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// ProductWithDeals is a catalog listing entry with its active deals.
type ProductWithDeals struct {
	Product
	Deals []Deal `json:"deals"`
}

// CreateProductRequest is the body for POST /products.
type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
	BasePrice   int64  `json:"basePrice"`
	ImgEmoji    string `json:"imgEmoji"`
	IsAvailable *bool  `json:"isAvailable"`
}

// UpdateProductRequest is the body for PUT /products/:id. Nil fields are
// left unchanged.
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Unit        *string `json:"unit"`
	BasePrice   *int64  `json:"basePrice"`
	ImgEmoji    *string `json:"imgEmoji"`
	IsAvailable *bool   `json:"isAvailable"`
}
