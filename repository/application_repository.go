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

// ApplicationRepository handles database operations for role applications
type ApplicationRepository struct{}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{}
}

// Ensure ApplicationRepository implements ApplicationRepositoryInterface
var _ ApplicationRepositoryInterface = (*ApplicationRepository)(nil)

// Create files a new role application. One pending application per user at
// a time.
func (r *ApplicationRepository) Create(ctx context.Context, userID uuid.UUID, req *models.CreateApplicationRequest) (*models.Application, error) {
	logging.L.Infof("📦 CreateApplication: user=%s role=%s", userID, req.RequestedRole)

	if req.RequestedRole != models.RoleSupplier && req.RequestedRole != models.RoleAgent {
		return nil, fmt.Errorf("requestedRole must be %s or %s", models.RoleSupplier, models.RoleAgent)
	}

	var pending int
	err := db.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM applications WHERE user_id = $1 AND status = $2`,
		userID, models.ApplicationStatusPending).Scan(&pending)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending applications: %w", err)
	}
	if pending > 0 {
		return nil, fmt.Errorf("you already have a pending application")
	}

	var app models.Application
	query := `
		INSERT INTO applications (id, user_id, requested_role, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, requested_role, status, COALESCE(notes, ''), created_at, updated_at
	`
	err = db.DB.QueryRowContext(ctx, query, uuid.New(), userID, req.RequestedRole, req.Notes).Scan(
		&app.ID,
		&app.UserID,
		&app.RequestedRole,
		&app.Status,
		&app.Notes,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		logging.L.Errorf("❌ CreateApplication: Error inserting application: %v", err)
		return nil, fmt.Errorf("failed to insert application: %w", err)
	}

	logging.L.Infof("✅ CreateApplication: %s", app.ID)
	return &app, nil
}

// ListByUser returns the user's own applications, newest first.
func (r *ApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Application, error) {
	query := `
		SELECT id, user_id, requested_role, status, COALESCE(notes, ''), created_at, updated_at
		FROM applications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, userID)
}

// ListByStatus returns applications in the given status, oldest first so
// reviewers work the queue in order. An empty status returns everything.
func (r *ApplicationRepository) ListByStatus(ctx context.Context, status string) ([]models.Application, error) {
	if status == "" {
		query := `
			SELECT id, user_id, requested_role, status, COALESCE(notes, ''), created_at, updated_at
			FROM applications
			ORDER BY created_at
		`
		return r.list(ctx, query)
	}
	query := `
		SELECT id, user_id, requested_role, status, COALESCE(notes, ''), created_at, updated_at
		FROM applications
		WHERE status = $1
		ORDER BY created_at
	`
	return r.list(ctx, query, status)
}

// Review approves or rejects a pending application. Approval promotes the
// applicant's profile to the requested role in the same transaction.
func (r *ApplicationRepository) Review(ctx context.Context, id uuid.UUID, status string) (*models.Application, error) {
	logging.L.Infof("📦 ReviewApplication: %s -> %s", id, status)

	if status != models.ApplicationStatusApproved && status != models.ApplicationStatusRejected {
		return nil, fmt.Errorf("status must be %s or %s", models.ApplicationStatusApproved, models.ApplicationStatusRejected)
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		logging.L.Errorf("❌ ReviewApplication: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var app models.Application
	query := `
		UPDATE applications
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3
		RETURNING id, user_id, requested_role, status, COALESCE(notes, ''), created_at, updated_at
	`
	err = tx.QueryRowContext(ctx, query, status, id, models.ApplicationStatusPending).Scan(
		&app.ID,
		&app.UserID,
		&app.RequestedRole,
		&app.Status,
		&app.Notes,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: pending application not found", ErrNotFound)
		}
		logging.L.Errorf("❌ ReviewApplication: Error updating application: %v", err)
		return nil, fmt.Errorf("failed to update application: %w", err)
	}

	if status == models.ApplicationStatusApproved {
		queryRole := `UPDATE profiles SET role = $1, updated_at = now() WHERE id = $2`
		if _, err := tx.ExecContext(ctx, queryRole, app.RequestedRole, app.UserID); err != nil {
			logging.L.Errorf("❌ ReviewApplication: Error promoting profile: %v", err)
			return nil, fmt.Errorf("failed to promote profile: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		logging.L.Errorf("❌ ReviewApplication: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit review: %w", err)
	}

	logging.L.Infof("✅ ReviewApplication: %s now %s", app.ID, app.Status)
	return &app, nil
}

func (r *ApplicationRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Application, error) {
	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logging.L.Errorf("❌ ListApplications: Error fetching applications: %v", err)
		return nil, fmt.Errorf("failed to fetch applications: %w", err)
	}
	defer rows.Close()

	apps := []models.Application{}
	for rows.Next() {
		var app models.Application
		if err := rows.Scan(
			&app.ID,
			&app.UserID,
			&app.RequestedRole,
			&app.Status,
			&app.Notes,
			&app.CreatedAt,
			&app.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}
