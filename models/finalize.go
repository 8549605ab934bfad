package models

import (
	"github.com/google/uuid"
)

// PendingLine is one unfinalized cart line joined with the product data
// the engine needs: base price, supplier, and the product's active deals.
type PendingLine struct {
	LineID      uuid.UUID
	VendorID    uuid.UUID
	ProductID   uuid.UUID
	SupplierID  uuid.UUID
	ProductName string
	Unit        string
	BasePrice   int64
	Quantity    int
	Deals       []Deal
}

// PricedLine is a pending line after deal resolution: FinalPrice is the
// pooled post-discount unit price in paise.
type PricedLine struct {
	PendingLine
	Discount   float64
	FinalPrice int64
}

// DebitFailure records one vendor whose wallet could not be debited. The
// vendor's lines are still finalized and routed; the failure is reported,
// not fatal.
type DebitFailure struct {
	VendorID  uuid.UUID `json:"vendorId"`
	AmountDue int64     `json:"amountDue"`
	Available int64     `json:"available"`
	Reason    string    `json:"reason"`
}

// BuyerTotal is one vendor's owed total for the batch, in paise.
type BuyerTotal struct {
	VendorID uuid.UUID `json:"vendorId"`
	Total    int64     `json:"total"`
}

// SupplierSummary aggregates one supplier's share of the batch for the
// supplier-facing notification.
type SupplierSummary struct {
	SupplierID      uuid.UUID `json:"supplierId"`
	TotalOrders     int       `json:"totalOrders"`
	ProductsSummary string    `json:"productsSummary"`
}

// FinalizeResult is the batch report for one engine invocation.
type FinalizeResult struct {
	Message           string            `json:"message"`
	RouteID           *uuid.UUID        `json:"routeId,omitempty"`
	AgentID           *uuid.UUID        `json:"agentId,omitempty"`
	FinalizedLines    int               `json:"finalizedLines"`
	TotalsByBuyer     []BuyerTotal      `json:"totalsByBuyer,omitempty"`
	DebitFailures     []DebitFailure    `json:"debitFailures,omitempty"`
	SupplierSummaries []SupplierSummary `json:"supplierSummaries,omitempty"`
	PickupStops       int               `json:"pickupStops"`
	DeliveryStops     int               `json:"deliveryStops"`
}
