package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"vendor-collective/db"
	"vendor-collective/logging"
	"vendor-collective/models"
)

// ProfileRepository handles database operations for profiles and wallets
type ProfileRepository struct{}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{}
}

// Ensure ProfileRepository implements ProfileRepositoryInterface
var _ ProfileRepositoryInterface = (*ProfileRepository)(nil)

// GetBalance returns the user's wallet balance in paise.
func (r *ProfileRepository) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	var balance int64
	err := db.DB.QueryRowContext(ctx,
		`SELECT wallet_balance FROM profiles WHERE id = $1`, userID).Scan(&balance)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("%w: profile not found", ErrNotFound)
		}
		logging.L.Errorf("❌ GetBalance: Error fetching balance: %v", err)
		return 0, fmt.Errorf("failed to fetch balance: %w", err)
	}
	return balance, nil
}

// Credit adds amount paise to the user's wallet and returns the new balance.
func (r *ProfileRepository) Credit(ctx context.Context, userID uuid.UUID, amount int64) (int64, error) {
	logging.L.Infof("💰 Credit: user=%s amount=%d", userID, amount)

	if amount <= 0 {
		return 0, fmt.Errorf("amount must be greater than 0")
	}

	var balance int64
	query := `
		UPDATE profiles
		SET wallet_balance = wallet_balance + $1
		WHERE id = $2
		RETURNING wallet_balance
	`
	err := db.DB.QueryRowContext(ctx, query, amount, userID).Scan(&balance)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("%w: profile not found", ErrNotFound)
		}
		logging.L.Errorf("❌ Credit: Error updating balance: %v", err)
		return 0, fmt.Errorf("failed to credit wallet: %w", err)
	}

	logging.L.Infof("✅ Credit: user=%s newBalance=%d", userID, balance)
	return balance, nil
}

// GetContact returns the user's display name and phone for notifications.
func (r *ProfileRepository) GetContact(ctx context.Context, userID uuid.UUID) (string, string, error) {
	var name, phone string
	err := db.DB.QueryRowContext(ctx,
		`SELECT COALESCE(full_name, ''), COALESCE(phone, '') FROM profiles WHERE id = $1`,
		userID).Scan(&name, &phone)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", "", fmt.Errorf("%w: profile not found", ErrNotFound)
		}
		return "", "", fmt.Errorf("failed to fetch contact: %w", err)
	}
	return name, phone, nil
}

// ListUsers returns a page of profiles, optionally filtered by role.
func (r *ProfileRepository) ListUsers(ctx context.Context, page, limit int, role string) (*models.UserListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int
	var rows *sql.Rows
	var err error
	if role != "" {
		err = db.DB.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM profiles WHERE role = $1`, role).Scan(&total)
		if err != nil {
			return nil, fmt.Errorf("failed to count profiles: %w", err)
		}
		rows, err = db.DB.QueryContext(ctx, `
			SELECT id, role, COALESCE(full_name, ''), email, COALESCE(phone, ''), wallet_balance, is_active, created_at, updated_at
			FROM profiles
			WHERE role = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3
		`, role, limit, offset)
	} else {
		err = db.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&total)
		if err != nil {
			return nil, fmt.Errorf("failed to count profiles: %w", err)
		}
		rows, err = db.DB.QueryContext(ctx, `
			SELECT id, role, COALESCE(full_name, ''), email, COALESCE(phone, ''), wallet_balance, is_active, created_at, updated_at
			FROM profiles
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2
		`, limit, offset)
	}
	if err != nil {
		logging.L.Errorf("❌ ListUsers: Error fetching profiles: %v", err)
		return nil, fmt.Errorf("failed to fetch profiles: %w", err)
	}
	defer rows.Close()

	response := &models.UserListResponse{
		Users: []models.Profile{},
		Page:  page,
		Limit: limit,
		Total: total,
	}
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(
			&p.ID,
			&p.Role,
			&p.FullName,
			&p.Email,
			&p.Phone,
			&p.WalletBalance,
			&p.IsActive,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		response.Users = append(response.Users, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}

	response.TotalPages = (total + limit - 1) / limit
	return response, nil
}
