package models

import (
	"time"

	"github.com/google/uuid"
)

// Application statuses.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusApproved = "approved"
	ApplicationStatusRejected = "rejected"
)

// Application is a request by a user to take on the supplier or agent role.
type Application struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"userId"`
	RequestedRole string     `json:"requestedRole"`
	Status        string     `json:"status"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// CreateApplicationRequest is the body for POST /applications.
type CreateApplicationRequest struct {
	RequestedRole string `json:"requestedRole"`
	Notes         string `json:"notes"`
}

// ReviewApplicationRequest is the body for PUT /applications/:id.
type ReviewApplicationRequest struct {
	Status string `json:"status"` // approved or rejected
}
