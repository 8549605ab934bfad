package models

import (
	"time"

	"github.com/google/uuid"
)

// Deal is a threshold discount on a product. Discount is a fraction in
// (0,1); it unlocks when the pooled demand for the product reaches
// Threshold units.
type Deal struct {
	ID        uuid.UUID  `json:"id"`
	ProductID uuid.UUID  `json:"productId"`
	Threshold int        `json:"threshold"`
	Discount  float64    `json:"discount"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// CreateDealRequest is the body for POST /deals/products/:productId.
type CreateDealRequest struct {
	Threshold int     `json:"threshold"`
	Discount  float64 `json:"discount"`
}

// UpdateDealRequest is the body for PUT /deals/:id. Nil fields are left
// unchanged.
type UpdateDealRequest struct {
	Threshold *int     `json:"threshold"`
	Discount  *float64 `json:"discount"`
	IsActive  *bool    `json:"isActive"`
}
