package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"vendor-collective/db"
	"vendor-collective/logging"
	"vendor-collective/models"
	"vendor-collective/pricing"
	"vendor-collective/routing"
)

// finalizeLockKey serializes finalize invocations via a Postgres advisory
// lock. A second concurrent run blocks until the first commits, so pending
// lines can never be double-aggregated or wallets double-debited.
const finalizeLockKey = 824204

// OrderRepository runs the order finalization engine and the vendor
// tracking projection
type OrderRepository struct{}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

// FinalizeAndRoute closes the order window: it prices every pending cart
// line with the best pooled deal, debits vendor wallets, and builds one
// delivery route. The whole invocation is a single transaction under an
// advisory lock; the agent lookup runs before any mutation so a batch that
// cannot be routed leaves no trace.
func (r *OrderRepository) FinalizeAndRoute(ctx context.Context) (*models.FinalizeResult, error) {
	logging.L.Infof("📦 FinalizeAndRoute: Starting finalization run")

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		logging.L.Errorf("❌ FinalizeAndRoute: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	// Serialize invocations. Released automatically at commit/rollback.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, finalizeLockKey); err != nil {
		logging.L.Errorf("❌ FinalizeAndRoute: Error taking advisory lock: %v", err)
		return nil, fmt.Errorf("failed to take finalize lock: %w", err)
	}

	lines, err := loadPendingLines(ctx, tx)
	if err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		logging.L.Infof("✅ FinalizeAndRoute: No pending orders to finalize")
		return &models.FinalizeResult{Message: "No pending orders to finalize."}, nil
	}

	// Agent availability is a precondition: checked before any mutation so
	// a missing agent aborts with zero rows touched.
	var agentID uuid.UUID
	queryAgent := `
		SELECT id FROM profiles
		WHERE role = 'agent' AND is_active = TRUE
		ORDER BY created_at, id
		LIMIT 1
	`
	err = tx.QueryRowContext(ctx, queryAgent).Scan(&agentID)
	if err != nil {
		if err == sql.ErrNoRows {
			logging.L.Errorf("❌ FinalizeAndRoute: No delivery agents available")
			return nil, ErrNoAgentAvailable
		}
		logging.L.Errorf("❌ FinalizeAndRoute: Error selecting agent: %v", err)
		return nil, fmt.Errorf("failed to select agent: %w", err)
	}

	// Pure math: pooled demand, deal resolution, line pricing, totals.
	demand := pricing.AggregateDemand(lines)
	priced := pricing.PriceLines(lines, demand)
	totals := pricing.BuyerTotals(priced)

	logging.L.Infof("💰 FinalizeAndRoute: Pricing %d lines across %d products for %d vendors",
		len(priced), len(demand), len(totals))

	// Persist final prices and flip is_finalized exactly once per line.
	queryFinalize := `
		UPDATE cart_items
		SET final_price = $1, is_finalized = TRUE, finalized_at = now()
		WHERE id = $2 AND is_finalized = FALSE
	`
	for _, line := range priced {
		if _, err := tx.ExecContext(ctx, queryFinalize, line.FinalPrice, line.LineID); err != nil {
			logging.L.Errorf("❌ FinalizeAndRoute: Error finalizing line %s: %v", line.LineID, err)
			return nil, fmt.Errorf("failed to finalize cart line: %w", err)
		}
	}

	// Lock and read vendor balances, then debit the ones that can pay.
	// Keyed on the totals' vendor ids: the pending lines were just flipped
	// to finalized, so cart_items can no longer identify the batch.
	vendorIDs := make([]uuid.UUID, 0, len(totals))
	for _, total := range totals {
		vendorIDs = append(vendorIDs, total.VendorID)
	}
	balances, err := loadVendorBalances(ctx, tx, vendorIDs)
	if err != nil {
		return nil, err
	}
	debits, failures := pricing.PlanDebits(totals, balances)

	queryDebit := `UPDATE profiles SET wallet_balance = wallet_balance - $1, updated_at = now() WHERE id = $2`
	for _, debit := range debits {
		if _, err := tx.ExecContext(ctx, queryDebit, debit.Total, debit.VendorID); err != nil {
			logging.L.Errorf("❌ FinalizeAndRoute: Error debiting vendor %s: %v", debit.VendorID, err)
			return nil, fmt.Errorf("failed to debit wallet: %w", err)
		}
	}
	for _, failure := range failures {
		logging.L.Warnf("⚠️ FinalizeAndRoute: Debit skipped for vendor %s: %s (due=%d, available=%d)",
			failure.VendorID, failure.Reason, failure.AmountDue, failure.Available)
	}

	// Build and persist the route: pickups per supplier, deliveries per
	// vendor, pickups first.
	stops := routing.BuildStops(priced)
	routeID := uuid.New()

	queryRoute := `INSERT INTO delivery_routes (id, agent_id, route_date, status) VALUES ($1, $2, now(), 'assigned')`
	if _, err := tx.ExecContext(ctx, queryRoute, routeID, agentID); err != nil {
		logging.L.Errorf("❌ FinalizeAndRoute: Error creating route: %v", err)
		return nil, fmt.Errorf("failed to create route: %w", err)
	}

	queryStop := `
		INSERT INTO route_stops (id, route_id, profile_id, stop_type, sequence_order, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
	`
	pickupCount := 0
	deliveryCount := 0
	for _, stop := range stops {
		if _, err := tx.ExecContext(ctx, queryStop, uuid.New(), routeID, stop.ProfileID, stop.StopType, stop.SequenceOrder); err != nil {
			logging.L.Errorf("❌ FinalizeAndRoute: Error creating stop: %v", err)
			return nil, fmt.Errorf("failed to create route stop: %w", err)
		}
		if stop.StopType == models.StopTypePickup {
			pickupCount++
		} else {
			deliveryCount++
		}
	}

	if err := tx.Commit(); err != nil {
		logging.L.Errorf("❌ FinalizeAndRoute: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit finalization: %w", err)
	}

	logging.L.Infof("✅ FinalizeAndRoute: Finalized %d lines, route %s with %d pickups and %d deliveries",
		len(priced), routeID, pickupCount, deliveryCount)

	return &models.FinalizeResult{
		Message:           "Orders finalized and route created successfully!",
		RouteID:           &routeID,
		AgentID:           &agentID,
		FinalizedLines:    len(priced),
		TotalsByBuyer:     totals,
		DebitFailures:     failures,
		SupplierSummaries: summarizeSuppliers(priced),
		PickupStops:       pickupCount,
		DeliveryStops:     deliveryCount,
	}, nil
}

// loadPendingLines reads every unfinalized cart line with its product and
// the product's active deals, locking the lines against concurrent carts.
func loadPendingLines(ctx context.Context, tx *sql.Tx) ([]models.PendingLine, error) {
	queryLines := `
		SELECT ci.id, ci.vendor_id, ci.product_id, ci.quantity,
		       p.supplier_id, p.name, p.unit, p.base_price
		FROM cart_items ci
		INNER JOIN products p ON ci.product_id = p.id
		WHERE ci.is_finalized = FALSE
		ORDER BY ci.added_at, ci.id
		FOR UPDATE OF ci
	`
	rows, err := tx.QueryContext(ctx, queryLines)
	if err != nil {
		logging.L.Errorf("❌ FinalizeAndRoute: Error fetching pending lines: %v", err)
		return nil, fmt.Errorf("failed to fetch pending lines: %w", err)
	}
	defer rows.Close()

	var lines []models.PendingLine
	for rows.Next() {
		var line models.PendingLine
		if err := rows.Scan(
			&line.LineID,
			&line.VendorID,
			&line.ProductID,
			&line.Quantity,
			&line.SupplierID,
			&line.ProductName,
			&line.Unit,
			&line.BasePrice,
		); err != nil {
			logging.L.Errorf("❌ FinalizeAndRoute: Error scanning pending line: %v", err)
			return nil, fmt.Errorf("failed to scan pending line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pending lines: %w", err)
	}

	if len(lines) == 0 {
		return nil, nil
	}

	// Attach active deals, keyed on the product ids already loaded rather
	// than re-deriving the set from cart_items.
	productSet := make(map[uuid.UUID]bool)
	for _, line := range lines {
		productSet[line.ProductID] = true
	}
	placeholders := make([]string, 0, len(productSet))
	args := make([]interface{}, 0, len(productSet))
	for productID := range productSet {
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)+1))
		args = append(args, productID)
	}
	queryDeals := fmt.Sprintf(`
		SELECT d.id, d.product_id, d.threshold, d.discount, d.is_active
		FROM deals d
		WHERE d.is_active = TRUE
		  AND d.product_id IN (%s)
	`, strings.Join(placeholders, ", "))
	dealRows, err := tx.QueryContext(ctx, queryDeals, args...)
	if err != nil {
		logging.L.Errorf("❌ FinalizeAndRoute: Error fetching deals: %v", err)
		return nil, fmt.Errorf("failed to fetch deals: %w", err)
	}
	defer dealRows.Close()

	dealsByProduct := make(map[uuid.UUID][]models.Deal)
	for dealRows.Next() {
		var deal models.Deal
		if err := dealRows.Scan(&deal.ID, &deal.ProductID, &deal.Threshold, &deal.Discount, &deal.IsActive); err != nil {
			logging.L.Errorf("❌ FinalizeAndRoute: Error scanning deal: %v", err)
			return nil, fmt.Errorf("failed to scan deal: %w", err)
		}
		dealsByProduct[deal.ProductID] = append(dealsByProduct[deal.ProductID], deal)
	}
	if err := dealRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deals: %w", err)
	}

	for i := range lines {
		lines[i].Deals = dealsByProduct[lines[i].ProductID]
	}
	return lines, nil
}

// loadVendorBalances locks and reads the wallet balances of the given
// vendors. The ids are explicit so the read does not depend on cart_items
// state mutated earlier in the transaction.
func loadVendorBalances(ctx context.Context, tx *sql.Tx, vendorIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if len(vendorIDs) == 0 {
		return map[uuid.UUID]int64{}, nil
	}

	placeholders := make([]string, len(vendorIDs))
	args := make([]interface{}, len(vendorIDs))
	for i, id := range vendorIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf(`
		SELECT id, wallet_balance
		FROM profiles
		WHERE id IN (%s)
		FOR UPDATE
	`, strings.Join(placeholders, ", "))
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		logging.L.Errorf("❌ FinalizeAndRoute: Error fetching vendor balances: %v", err)
		return nil, fmt.Errorf("failed to fetch vendor balances: %w", err)
	}
	defer rows.Close()

	balances := make(map[uuid.UUID]int64)
	for rows.Next() {
		var id uuid.UUID
		var balance int64
		if err := rows.Scan(&id, &balance); err != nil {
			return nil, fmt.Errorf("failed to scan vendor balance: %w", err)
		}
		balances[id] = balance
	}
	return balances, rows.Err()
}

// summarizeSuppliers aggregates the batch per supplier for notifications.
func summarizeSuppliers(priced []models.PricedLine) []models.SupplierSummary {
	type agg struct {
		orders   int
		products map[string]bool
	}
	bySupplier := make(map[uuid.UUID]*agg)
	for _, line := range priced {
		a := bySupplier[line.SupplierID]
		if a == nil {
			a = &agg{products: make(map[string]bool)}
			bySupplier[line.SupplierID] = a
		}
		a.orders++
		a.products[line.ProductName] = true
	}

	summaries := make([]models.SupplierSummary, 0, len(bySupplier))
	for supplierID, a := range bySupplier {
		names := make([]string, 0, len(a.products))
		for name := range a.products {
			names = append(names, name)
		}
		sort.Strings(names)
		summaries = append(summaries, models.SupplierSummary{
			SupplierID:      supplierID,
			TotalOrders:     a.orders,
			ProductsSummary: strings.Join(names, ", "),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].SupplierID.String() < summaries[j].SupplierID.String()
	})
	return summaries
}

// LatestStatus projects the vendor's most recent order status from today's
// route state. Read-only.
func (r *OrderRepository) LatestStatus(ctx context.Context, vendorID uuid.UUID) (*models.OrderStatusView, error) {
	queryStop := `
		SELECT rs.id, rs.route_id, rs.profile_id, rs.stop_type, rs.sequence_order, rs.status, rs.created_at
		FROM route_stops rs
		INNER JOIN delivery_routes dr ON rs.route_id = dr.id
		WHERE rs.profile_id = $1
		  AND rs.stop_type = 'delivery'
		  AND dr.route_date::date = CURRENT_DATE
		ORDER BY dr.route_date DESC
		LIMIT 1
	`
	var own models.RouteStop
	err := db.DB.QueryRowContext(ctx, queryStop, vendorID).Scan(
		&own.ID,
		&own.RouteID,
		&own.ProfileID,
		&own.StopType,
		&own.SequenceOrder,
		&own.Status,
		&own.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			view := routing.ProjectOrderStatus(nil, nil)
			return &view, nil
		}
		logging.L.Errorf("❌ LatestStatus: Error fetching delivery stop: %v", err)
		return nil, fmt.Errorf("failed to fetch delivery stop: %w", err)
	}

	stops, err := loadRouteStops(ctx, own.RouteID)
	if err != nil {
		return nil, err
	}

	view := routing.ProjectOrderStatus(&own, stops)
	return &view, nil
}

func loadRouteStops(ctx context.Context, routeID uuid.UUID) ([]models.RouteStop, error) {
	query := `
		SELECT id, route_id, profile_id, stop_type, sequence_order, status, created_at
		FROM route_stops
		WHERE route_id = $1
		ORDER BY sequence_order
	`
	rows, err := db.DB.QueryContext(ctx, query, routeID)
	if err != nil {
		logging.L.Errorf("❌ LatestStatus: Error fetching route stops: %v", err)
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
