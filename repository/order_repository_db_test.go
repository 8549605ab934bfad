package repository

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"

	"vendor-collective/config"
	"vendor-collective/db"
	"vendor-collective/models"
)

// Exercises the full finalize transaction against a live Postgres: lines
// are flipped to finalized and funded vendors are still debited afterwards
// in the same transaction. Skipped unless TEST_DATABASE_URL is set.
func TestFinalizeAndRouteDebitsFundedVendor(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database test")
	}
	if err := db.InitDB(config.DatabaseConfig{URL: url}); err != nil {
		t.Fatalf("InitDB() error = %v", err)
	}
	defer db.CloseDB()

	ctx := context.Background()
	supplierID := uuid.New()
	richVendorID := uuid.New()
	poorVendorID := uuid.New()
	agentID := uuid.New()
	productID := uuid.New()
	dealID := uuid.New()
	richLineID := uuid.New()
	poorLineID := uuid.New()

	const richBalance = int64(1000000)
	const poorBalance = int64(100)

	mustExec := func(query string, args ...interface{}) {
		t.Helper()
		if _, err := db.DB.ExecContext(ctx, query, args...); err != nil {
			t.Fatalf("seed query failed: %v", err)
		}
	}

	for _, p := range []struct {
		id      uuid.UUID
		role    string
		balance int64
	}{
		{supplierID, models.RoleSupplier, 0},
		{richVendorID, models.RoleVendor, richBalance},
		{poorVendorID, models.RoleVendor, poorBalance},
		{agentID, models.RoleAgent, 0},
	} {
		mustExec(`INSERT INTO profiles (id, role, full_name, email, wallet_balance) VALUES ($1, $2, $3, $4, $5)`,
			p.id, p.role, "Test "+p.role, fmt.Sprintf("%s@test.local", p.id), p.balance)
	}
	mustExec(`INSERT INTO products (id, supplier_id, name, unit, base_price) VALUES ($1, $2, 'Onions', 'kg', 1000)`,
		productID, supplierID)
	mustExec(`INSERT INTO deals (id, product_id, threshold, discount) VALUES ($1, $2, 20, 0.20)`,
		dealID, productID)
	mustExec(`INSERT INTO cart_items (id, vendor_id, product_id, quantity) VALUES ($1, $2, $3, 10)`,
		richLineID, richVendorID, productID)
	mustExec(`INSERT INTO cart_items (id, vendor_id, product_id, quantity) VALUES ($1, $2, $3, 12)`,
		poorLineID, poorVendorID, productID)

	t.Cleanup(func() {
		db.DB.ExecContext(ctx, `DELETE FROM route_stops WHERE profile_id IN ($1, $2, $3)`, supplierID, richVendorID, poorVendorID)
		db.DB.ExecContext(ctx, `DELETE FROM delivery_routes WHERE id NOT IN (SELECT DISTINCT route_id FROM route_stops)`)
		db.DB.ExecContext(ctx, `DELETE FROM cart_items WHERE id IN ($1, $2)`, richLineID, poorLineID)
		db.DB.ExecContext(ctx, `DELETE FROM deals WHERE id = $1`, dealID)
		db.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, productID)
		db.DB.ExecContext(ctx, `DELETE FROM profiles WHERE id IN ($1, $2, $3, $4)`, supplierID, richVendorID, poorVendorID, agentID)
	})

	repo := NewOrderRepository()
	result, err := repo.FinalizeAndRoute(ctx)
	if err != nil {
		t.Fatalf("FinalizeAndRoute() error = %v", err)
	}
	if result.RouteID == nil {
		t.Fatal("expected a route to be created")
	}

	// Demand 22 unlocks the 20% deal: unit price 800, rich owes 8000.
	var finalPrice int64
	var finalized bool
	if err := db.DB.QueryRowContext(ctx,
		`SELECT final_price, is_finalized FROM cart_items WHERE id = $1`, richLineID).Scan(&finalPrice, &finalized); err != nil {
		t.Fatalf("reading finalized line: %v", err)
	}
	if !finalized || finalPrice != 800 {
		t.Errorf("expected line finalized at 800, got finalized=%v price=%d", finalized, finalPrice)
	}

	var balance int64
	if err := db.DB.QueryRowContext(ctx,
		`SELECT wallet_balance FROM profiles WHERE id = $1`, richVendorID).Scan(&balance); err != nil {
		t.Fatalf("reading vendor balance: %v", err)
	}
	if want := richBalance - 8000; balance != want {
		t.Errorf("funded vendor balance = %d, want %d (debit must land after lines are finalized)", balance, want)
	}

	// The underfunded vendor keeps their balance and shows up as a
	// shortfall, not as a missing profile.
	if err := db.DB.QueryRowContext(ctx,
		`SELECT wallet_balance FROM profiles WHERE id = $1`, poorVendorID).Scan(&balance); err != nil {
		t.Fatalf("reading vendor balance: %v", err)
	}
	if balance != poorBalance {
		t.Errorf("underfunded vendor balance = %d, want %d", balance, poorBalance)
	}
	found := false
	for _, f := range result.DebitFailures {
		if f.VendorID == poorVendorID {
			found = true
			if f.Reason != "insufficient balance" {
				t.Errorf("shortfall reason = %q, want %q", f.Reason, "insufficient balance")
			}
			if f.AmountDue != 9600 {
				t.Errorf("shortfall amountDue = %d, want 9600", f.AmountDue)
			}
		}
	}
	if !found {
		t.Error("expected a debit failure for the underfunded vendor")
	}

	// Finalized lines are never re-priced by a second invocation.
	if _, err := repo.FinalizeAndRoute(ctx); err != nil {
		t.Fatalf("second FinalizeAndRoute() error = %v", err)
	}
	if err := db.DB.QueryRowContext(ctx,
		`SELECT final_price FROM cart_items WHERE id = $1`, richLineID).Scan(&finalPrice); err != nil {
		t.Fatalf("re-reading finalized line: %v", err)
	}
	if finalPrice != 800 {
		t.Errorf("final price changed to %d on second run", finalPrice)
	}
}
