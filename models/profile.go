package models

import (
	"time"

	"github.com/google/uuid"
)

// Role names recognized by the gateway and stored on profiles.
const (
	RoleVendor   = "vendor"
	RoleSupplier = "supplier"
	RoleAgent    = "agent"
	RoleAdmin    = "admin"
)

// Profile represents a user of any role. WalletBalance is in paise.
type Profile struct {
	ID            uuid.UUID  `json:"id"`
	Role          string     `json:"role"`
	FullName      string     `json:"fullName"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone,omitempty"`
	WalletBalance int64      `json:"walletBalance"`
	IsActive      bool       `json:"isActive"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// WalletBalanceResponse reports a wallet balance in paise alongside a
// display string.
type WalletBalanceResponse struct {
	Balance        int64  `json:"balance"`
	BalanceDisplay string `json:"balanceDisplay"`
}

// WalletTopUpRequest is the body for POST /wallet/me/topup. Amount is in
// paise.
type WalletTopUpRequest struct {
	Amount int64 `json:"amount"`
}

// WalletTopUpResponse confirms a mock payment and the new balance.
type WalletTopUpResponse struct {
	PaymentID      string `json:"paymentId"`
	Credited       int64  `json:"credited"`
	Balance        int64  `json:"balance"`
	BalanceDisplay string `json:"balanceDisplay"`
}

// UserListResponse is the paginated admin user listing.
type UserListResponse struct {
	Users      []Profile `json:"users"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	Total      int       `json:"total"`
	TotalPages int       `json:"totalPages"`
}
