// Package db manages the Postgres connection pool and schema.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"vendor-collective/config"
	"vendor-collective/logging"
)

// DB holds the database connection
var DB *sql.DB

// InitDB initializes the database connection from configuration
func InitDB(cfg config.DatabaseConfig) error {
	connStr, err := cfg.ConnString()
	if err != nil {
		return err
	}

	DB, err = sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	// Test the connection
	ctx := context.Background()
	if err := DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logging.L.Infof("✓ Database connection established successfully")
	return nil
}

func migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		id UUID PRIMARY KEY,
		role TEXT NOT NULL DEFAULT 'vendor',
		full_name TEXT,
		email TEXT UNIQUE NOT NULL,
		phone TEXT,
		wallet_balance BIGINT NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ
	);

	CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		supplier_id UUID NOT NULL REFERENCES profiles(id),
		name TEXT NOT NULL,
		description TEXT,
		unit TEXT NOT NULL,
		base_price BIGINT NOT NULL CHECK (base_price > 0),
		img_emoji TEXT,
		is_available BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ
	);

	CREATE TABLE IF NOT EXISTS deals (
		id UUID PRIMARY KEY,
		product_id UUID NOT NULL REFERENCES products(id),
		threshold INTEGER NOT NULL CHECK (threshold > 0),
		discount NUMERIC(5,4) NOT NULL CHECK (discount > 0 AND discount < 1),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ
	);

	CREATE TABLE IF NOT EXISTS cart_items (
		id UUID PRIMARY KEY,
		vendor_id UUID NOT NULL REFERENCES profiles(id),
		product_id UUID NOT NULL REFERENCES products(id),
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		is_finalized BOOLEAN NOT NULL DEFAULT FALSE,
		final_price BIGINT,
		added_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		finalized_at TIMESTAMPTZ
	);

	CREATE TABLE IF NOT EXISTS delivery_routes (
		id UUID PRIMARY KEY,
		agent_id UUID NOT NULL REFERENCES profiles(id),
		route_date TIMESTAMPTZ NOT NULL DEFAULT now(),
		status TEXT NOT NULL DEFAULT 'assigned',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ
	);

	CREATE TABLE IF NOT EXISTS route_stops (
		id UUID PRIMARY KEY,
		route_id UUID NOT NULL REFERENCES delivery_routes(id),
		profile_id UUID NOT NULL REFERENCES profiles(id),
		stop_type TEXT NOT NULL,
		sequence_order INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ
	);

	CREATE TABLE IF NOT EXISTS applications (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES profiles(id),
		requested_role TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ
	);

	CREATE INDEX IF NOT EXISTS idx_cart_items_pending ON cart_items(is_finalized) WHERE is_finalized = FALSE;
	CREATE INDEX IF NOT EXISTS idx_cart_items_vendor ON cart_items(vendor_id);
	CREATE INDEX IF NOT EXISTS idx_deals_product ON deals(product_id);
	CREATE INDEX IF NOT EXISTS idx_route_stops_route ON route_stops(route_id);
	CREATE INDEX IF NOT EXISTS idx_route_stops_profile ON route_stops(profile_id);
	CREATE INDEX IF NOT EXISTS idx_routes_agent_date ON delivery_routes(agent_id, route_date);
	`
	_, err := DB.ExecContext(ctx, schema)
	return err
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
