package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one vendor's requested quantity of one product. FinalPrice
// is the post-discount unit price in paise, set exactly once when the
// line is finalized.
type CartItem struct {
	ID          uuid.UUID  `json:"id"`
	VendorID    uuid.UUID  `json:"vendorId"`
	ProductID   uuid.UUID  `json:"productId"`
	Quantity    int        `json:"quantity"`
	IsFinalized bool       `json:"isFinalized"`
	FinalPrice  *int64     `json:"finalPrice,omitempty"`
	AddedAt     time.Time  `json:"addedAt"`
	FinalizedAt *time.Time `json:"finalizedAt,omitempty"`
}

// CartItemWithProduct is a cart line joined with its product for the
// vendor-facing cart view.
type CartItemWithProduct struct {
	CartItem
	Product Product `json:"product"`
}

// CartView is the vendor's active cart with an estimated total at base
// prices (deals are only resolved at finalization).
type CartView struct {
	Items          []CartItemWithProduct `json:"items"`
	TotalItems     int                   `json:"totalItems"`
	EstimatedTotal int64                 `json:"estimatedTotal"`
}

// AddCartItemRequest is the body for POST /cart/items.
type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// UpdateCartItemRequest is the body for PUT /cart/items/:id.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}
