package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vendor-collective/db"
	"vendor-collective/logging"
	"vendor-collective/models"
	"vendor-collective/routing"
)

// RouteRepository handles database operations for delivery routes and stops
type RouteRepository struct{}

// NewRouteRepository creates a new RouteRepository
func NewRouteRepository() *RouteRepository {
	return &RouteRepository{}
}

// Ensure RouteRepository implements RouteRepositoryInterface
var _ RouteRepositoryInterface = (*RouteRepository)(nil)

// GetTodayRouteForAgent returns the agent's route for today with its stops
// in sequence order, including the profile name at each stop.
func (r *RouteRepository) GetTodayRouteForAgent(ctx context.Context, agentID uuid.UUID) (*models.RouteView, error) {
	route, err := todayRoute(ctx, agentID)
	if err != nil {
		return nil, err
	}

	queryStops := `
		SELECT rs.id, rs.route_id, rs.profile_id, rs.stop_type, rs.sequence_order, rs.status, rs.created_at,
		       COALESCE(p.full_name, 'Unknown') AS profile_name
		FROM route_stops rs
		LEFT JOIN profiles p ON rs.profile_id = p.id
		WHERE rs.route_id = $1
		ORDER BY rs.sequence_order
	`
	rows, err := db.DB.QueryContext(ctx, queryStops, route.ID)
	if err != nil {
		logging.L.Errorf("❌ GetTodayRouteForAgent: Error fetching stops: %v", err)
		return nil, fmt.Errorf("failed to fetch route stops: %w", err)
	}
	defer rows.Close()

	view := &models.RouteView{ID: route.ID, Status: route.Status}
	for rows.Next() {
		var stop models.RouteStopDetail
		if err := rows.Scan(
			&stop.ID,
			&stop.RouteID,
			&stop.ProfileID,
			&stop.StopType,
			&stop.SequenceOrder,
			&stop.Status,
			&stop.CreatedAt,
			&stop.ProfileName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan route stop: %w", err)
		}
		view.Stops = append(view.Stops, stop)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate route stops: %w", err)
	}

	return view, nil
}

// GetStopManifest derives the checklist for one stop from persisted line
// state: goods to collect from a supplier (broken down per destination
// vendor) or to drop off to a vendor. Restricted to lines finalized on the
// owning route's date; never stored.
func (r *RouteRepository) GetStopManifest(ctx context.Context, stopID, agentID uuid.UUID) ([]models.ManifestLine, error) {
	// Ownership check: the stop must sit on a route assigned to the caller.
	var stopType string
	var profileID uuid.UUID
	var routeDate time.Time
	queryStop := `
		SELECT rs.stop_type, rs.profile_id, dr.route_date
		FROM route_stops rs
		INNER JOIN delivery_routes dr ON rs.route_id = dr.id
		WHERE rs.id = $1 AND dr.agent_id = $2
	`
	err := db.DB.QueryRowContext(ctx, queryStop, stopID, agentID).Scan(&stopType, &profileID, &routeDate)
	if err != nil {
		if err == sql.ErrNoRows {
			logging.L.Warnf("⚠️ GetStopManifest: Stop %s not found or not on agent %s's route", stopID, agentID)
			return nil, fmt.Errorf("%w: stop not found or not part of your route", ErrNotFound)
		}
		logging.L.Errorf("❌ GetStopManifest: Error fetching stop: %v", err)
		return nil, fmt.Errorf("failed to fetch stop: %w", err)
	}

	var queryManifest string
	if stopType == models.StopTypePickup {
		queryManifest = `
			SELECT p.name, ci.quantity, p.unit, COALESCE(v.full_name, 'Unknown')
			FROM cart_items ci
			INNER JOIN products p ON ci.product_id = p.id
			INNER JOIN profiles v ON ci.vendor_id = v.id
			WHERE p.supplier_id = $1
			  AND ci.is_finalized = TRUE
			  AND ci.finalized_at::date = $2::date
			ORDER BY v.full_name, p.name
		`
	} else {
		queryManifest = `
			SELECT p.name, ci.quantity, p.unit, ''
			FROM cart_items ci
			INNER JOIN products p ON ci.product_id = p.id
			WHERE ci.vendor_id = $1
			  AND ci.is_finalized = TRUE
			  AND ci.finalized_at::date = $2::date
			ORDER BY p.name
		`
	}

	rows, err := db.DB.QueryContext(ctx, queryManifest, profileID, routeDate)
	if err != nil {
		logging.L.Errorf("❌ GetStopManifest: Error fetching manifest: %v", err)
		return nil, fmt.Errorf("failed to fetch manifest: %w", err)
	}
	defer rows.Close()

	manifest := []models.ManifestLine{}
	for rows.Next() {
		var line models.ManifestLine
		if err := rows.Scan(&line.ProductName, &line.Quantity, &line.Unit, &line.VendorName); err != nil {
			return nil, fmt.Errorf("failed to scan manifest line: %w", err)
		}
		manifest = append(manifest, line)
	}
	return manifest, rows.Err()
}

// UpdateStopStatus transitions one stop through the pending → in_progress →
// completed/failed machine and re-derives the route status. Ownership and
// transition validity are checked before any mutation.
func (r *RouteRepository) UpdateStopStatus(ctx context.Context, stopID, agentID uuid.UUID, status string) (*models.RouteStop, error) {
	logging.L.Infof("📦 UpdateStopStatus: Stop %s -> %s by agent %s", stopID, status, agentID)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		logging.L.Errorf("❌ UpdateStopStatus: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var stop models.RouteStop
	queryStop := `
		SELECT rs.id, rs.route_id, rs.profile_id, rs.stop_type, rs.sequence_order, rs.status, rs.created_at
		FROM route_stops rs
		INNER JOIN delivery_routes dr ON rs.route_id = dr.id
		WHERE rs.id = $1 AND dr.agent_id = $2
		FOR UPDATE OF rs
	`
	err = tx.QueryRowContext(ctx, queryStop, stopID, agentID).Scan(
		&stop.ID,
		&stop.RouteID,
		&stop.ProfileID,
		&stop.StopType,
		&stop.SequenceOrder,
		&stop.Status,
		&stop.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			logging.L.Warnf("⚠️ UpdateStopStatus: Stop %s not found or not on agent %s's route", stopID, agentID)
			return nil, fmt.Errorf("%w: stop not found or not part of your route", ErrNotFound)
		}
		logging.L.Errorf("❌ UpdateStopStatus: Error fetching stop: %v", err)
		return nil, fmt.Errorf("failed to fetch stop: %w", err)
	}

	if !routing.ValidStopTransition(stop.Status, status) {
		logging.L.Warnf("⚠️ UpdateStopStatus: Invalid transition %s -> %s for stop %s", stop.Status, status, stopID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, stop.Status, status)
	}

	queryUpdate := `UPDATE route_stops SET status = $1, updated_at = now() WHERE id = $2`
	if _, err := tx.ExecContext(ctx, queryUpdate, status, stopID); err != nil {
		logging.L.Errorf("❌ UpdateStopStatus: Error updating stop: %v", err)
		return nil, fmt.Errorf("failed to update stop: %w", err)
	}
	stop.Status = status

	// Re-derive the route status from all its stops.
	siblings, err := routeStopsTx(ctx, tx, stop.RouteID)
	if err != nil {
		return nil, err
	}
	newRouteStatus := routing.RouteStatusAfter(siblings)
	queryRoute := `UPDATE delivery_routes SET status = $1, updated_at = now() WHERE id = $2 AND status <> $1`
	if _, err := tx.ExecContext(ctx, queryRoute, newRouteStatus, stop.RouteID); err != nil {
		logging.L.Errorf("❌ UpdateStopStatus: Error updating route status: %v", err)
		return nil, fmt.Errorf("failed to update route status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		logging.L.Errorf("❌ UpdateStopStatus: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit stop update: %w", err)
	}

	logging.L.Infof("✅ UpdateStopStatus: Stop %s now %s, route %s now %s", stopID, status, stop.RouteID, newRouteStatus)
	return &stop, nil
}

// GetProgress reports stop counts per state and percent complete for the
// agent's route today.
func (r *RouteRepository) GetProgress(ctx context.Context, agentID uuid.UUID) (*models.RouteProgress, error) {
	route, err := todayRoute(ctx, agentID)
	if err != nil {
		return nil, err
	}

	stops, err := loadRouteStops(ctx, route.ID)
	if err != nil {
		return nil, err
	}

	progress := routing.Progress(*route, stops)
	return &progress, nil
}

func todayRoute(ctx context.Context, agentID uuid.UUID) (*models.DeliveryRoute, error) {
	query := `
		SELECT id, agent_id, route_date, status, created_at
		FROM delivery_routes
		WHERE agent_id = $1 AND route_date::date = CURRENT_DATE
		ORDER BY created_at DESC
		LIMIT 1
	`
	var route models.DeliveryRoute
	err := db.DB.QueryRowContext(ctx, query, agentID).Scan(
		&route.ID,
		&route.AgentID,
		&route.RouteDate,
		&route.Status,
		&route.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: no route assigned for you today", ErrNotFound)
		}
		logging.L.Errorf("❌ todayRoute: Error fetching route: %v", err)
		return nil, fmt.Errorf("failed to fetch route: %w", err)
	}
	return &route, nil
}

func routeStopsTx(ctx context.Context, tx *sql.Tx, routeID uuid.UUID) ([]models.RouteStop, error) {
	query := `
		SELECT id, route_id, profile_id, stop_type, sequence_order, status, created_at
		FROM route_stops
		WHERE route_id = $1
		ORDER BY sequence_order
	`
	rows, err := tx.QueryContext(ctx, query, routeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch route stops: %w", err)
	}
	defer rows.Close()

	var stops []models.RouteStop
	for rows.Next() {
		var stop models.RouteStop
		if err := rows.Scan(
			&stop.ID,
			&stop.RouteID,
			&stop.ProfileID,
			&stop.StopType,
			&stop.SequenceOrder,
			&stop.Status,
			&stop.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan route stop: %w", err)
		}
		stops = append(stops, stop)
	}
	return stops, rows.Err()
}
