package models

import (
	"time"

	"github.com/google/uuid"
)

// Route statuses.
const (
	RouteStatusAssigned   = "assigned"
	RouteStatusInProgress = "in_progress"
	RouteStatusCompleted  = "completed"
)

// Stop types.
const (
	StopTypePickup   = "pickup"
	StopTypeDelivery = "delivery"
)

// Stop statuses.
const (
	StopStatusPending    = "pending"
	StopStatusInProgress = "in_progress"
	StopStatusCompleted  = "completed"
	StopStatusFailed     = "failed"
)

// DeliveryRoute is one agent's route for one finalization run.
type DeliveryRoute struct {
	ID        uuid.UUID  `json:"id"`
	AgentID   uuid.UUID  `json:"agentId"`
	RouteDate time.Time  `json:"routeDate"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// RouteStop is one pickup or delivery point on a route. SequenceOrder is
// 1-based and strictly increasing; all pickups precede all deliveries.
type RouteStop struct {
	ID            uuid.UUID  `json:"id"`
	RouteID       uuid.UUID  `json:"routeId"`
	ProfileID     uuid.UUID  `json:"profileId"`
	StopType      string     `json:"stopType"`
	SequenceOrder int        `json:"sequenceOrder"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// RouteStopDetail adds the stop profile's name for the agent's route view.
type RouteStopDetail struct {
	RouteStop
	ProfileName string `json:"profileName"`
}

// RouteView is the agent-facing route with ordered stops.
type RouteView struct {
	ID     uuid.UUID         `json:"id"`
	Status string            `json:"status"`
	Stops  []RouteStopDetail `json:"stops"`
}

// RouteProgress reports stop counts per state and percent complete.
type RouteProgress struct {
	RouteID         uuid.UUID `json:"routeId"`
	Status          string    `json:"status"`
	TotalStops      int       `json:"totalStops"`
	Pending         int       `json:"pending"`
	InProgress      int       `json:"inProgress"`
	Completed       int       `json:"completed"`
	Failed          int       `json:"failed"`
	PercentComplete float64   `json:"percentComplete"`
}

// ManifestLine is one checklist row for a stop: what to collect from a
// supplier (with the destination vendor) or drop off to a vendor.
type ManifestLine struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Unit        string `json:"unit"`
	VendorName  string `json:"vendorName,omitempty"`
}

// UpdateStopStatusRequest is the body for PUT /agent-routes/stops/:id/status.
type UpdateStopStatusRequest struct {
	Status string `json:"status"`
}

// OrderStatusView is the vendor-facing tracking projection.
type OrderStatusView struct {
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
}
