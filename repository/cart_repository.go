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

// CartRepository handles database operations for vendor carts
type CartRepository struct{}

// NewCartRepository creates a new CartRepository
func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// Ensure CartRepository implements CartRepositoryInterface
var _ CartRepositoryInterface = (*CartRepository)(nil)

// AddItem adds a product to the vendor's active cart. An existing
// unfinalized line for the same product has its quantity increased instead.
func (r *CartRepository) AddItem(ctx context.Context, vendorID, productID uuid.UUID, quantity int) (*models.CartItemWithProduct, error) {
	logging.L.Infof("📦 AddItem: vendor=%s product=%s qty=%d", vendorID, productID, quantity)

	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be greater than 0")
	}

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		logging.L.Errorf("❌ AddItem: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	// Validate the product exists and is available.
	var available bool
	queryProduct := `SELECT is_available FROM products WHERE id = $1`
	err = tx.QueryRowContext(ctx, queryProduct, productID).Scan(&available)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		logging.L.Errorf("❌ AddItem: Error fetching product: %v", err)
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	if !available {
		return nil, fmt.Errorf("%w: product not available", ErrNotFound)
	}

	// Upsert: increase quantity on the existing unfinalized line if any.
	var itemID uuid.UUID
	queryExisting := `
		SELECT id FROM cart_items
		WHERE vendor_id = $1 AND product_id = $2 AND is_finalized = FALSE
		FOR UPDATE
	`
	err = tx.QueryRowContext(ctx, queryExisting, vendorID, productID).Scan(&itemID)
	switch {
	case err == sql.ErrNoRows:
		itemID = uuid.New()
		queryInsert := `
			INSERT INTO cart_items (id, vendor_id, product_id, quantity)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := tx.ExecContext(ctx, queryInsert, itemID, vendorID, productID, quantity); err != nil {
			logging.L.Errorf("❌ AddItem: Error inserting cart line: %v", err)
			return nil, fmt.Errorf("failed to insert cart line: %w", err)
		}
	case err != nil:
		logging.L.Errorf("❌ AddItem: Error fetching existing line: %v", err)
		return nil, fmt.Errorf("failed to fetch existing cart line: %w", err)
	default:
		queryBump := `UPDATE cart_items SET quantity = quantity + $1 WHERE id = $2`
		if _, err := tx.ExecContext(ctx, queryBump, quantity, itemID); err != nil {
			logging.L.Errorf("❌ AddItem: Error updating quantity: %v", err)
			return nil, fmt.Errorf("failed to update cart line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		logging.L.Errorf("❌ AddItem: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit cart update: %w", err)
	}

	item, err := r.getItemWithProduct(ctx, itemID)
	if err != nil {
		return nil, err
	}
	logging.L.Infof("✅ AddItem: line=%s qty=%d", item.ID, item.Quantity)
	return item, nil
}

// GetCart returns the vendor's unfinalized lines with product details and
// an estimated total at base prices. Deal discounts only apply at
// finalization, so the estimate is an upper bound.
func (r *CartRepository) GetCart(ctx context.Context, vendorID uuid.UUID) (*models.CartView, error) {
	query := `
		SELECT ci.id, ci.vendor_id, ci.product_id, ci.quantity, ci.is_finalized, ci.final_price, ci.added_at, ci.finalized_at,
		       p.id, p.supplier_id, p.name, COALESCE(p.description, ''), p.unit, p.base_price, COALESCE(p.img_emoji, ''), p.is_available, p.created_at
		FROM cart_items ci
		INNER JOIN products p ON ci.product_id = p.id
		WHERE ci.vendor_id = $1 AND ci.is_finalized = FALSE
		ORDER BY ci.added_at
	`
	rows, err := db.DB.QueryContext(ctx, query, vendorID)
	if err != nil {
		logging.L.Errorf("❌ GetCart: Error fetching cart: %v", err)
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}
	defer rows.Close()

	view := &models.CartView{Items: []models.CartItemWithProduct{}}
	for rows.Next() {
		var item models.CartItemWithProduct
		if err := rows.Scan(
			&item.ID,
			&item.VendorID,
			&item.ProductID,
			&item.Quantity,
			&item.IsFinalized,
			&item.FinalPrice,
			&item.AddedAt,
			&item.FinalizedAt,
			&item.Product.ID,
			&item.Product.SupplierID,
			&item.Product.Name,
			&item.Product.Description,
			&item.Product.Unit,
			&item.Product.BasePrice,
			&item.Product.ImgEmoji,
			&item.Product.IsAvailable,
			&item.Product.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		view.Items = append(view.Items, item)
		view.EstimatedTotal += int64(item.Quantity) * item.Product.BasePrice
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart lines: %w", err)
	}

	view.TotalItems = len(view.Items)
	return view, nil
}

// UpdateQuantity changes the quantity of one of the vendor's cart lines.
// Finalized lines are immutable.
func (r *CartRepository) UpdateQuantity(ctx context.Context, itemID, vendorID uuid.UUID, quantity int) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be greater than 0")
	}

	var item models.CartItem
	query := `
		UPDATE cart_items
		SET quantity = $1
		WHERE id = $2 AND vendor_id = $3 AND is_finalized = FALSE
		RETURNING id, vendor_id, product_id, quantity, is_finalized, final_price, added_at, finalized_at
	`
	err := db.DB.QueryRowContext(ctx, query, quantity, itemID, vendorID).Scan(
		&item.ID,
		&item.VendorID,
		&item.ProductID,
		&item.Quantity,
		&item.IsFinalized,
		&item.FinalPrice,
		&item.AddedAt,
		&item.FinalizedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, r.classifyMissingLine(ctx, itemID, vendorID)
		}
		logging.L.Errorf("❌ UpdateQuantity: Error updating line: %v", err)
		return nil, fmt.Errorf("failed to update cart line: %w", err)
	}
	return &item, nil
}

// RemoveItem deletes one of the vendor's unfinalized cart lines.
func (r *CartRepository) RemoveItem(ctx context.Context, itemID, vendorID uuid.UUID) error {
	result, err := db.DB.ExecContext(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND vendor_id = $2 AND is_finalized = FALSE`,
		itemID, vendorID)
	if err != nil {
		logging.L.Errorf("❌ RemoveItem: Error deleting line: %v", err)
		return fmt.Errorf("failed to delete cart line: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return r.classifyMissingLine(ctx, itemID, vendorID)
	}
	return nil
}

// classifyMissingLine distinguishes "no such line" from "line already
// finalized" for clearer caller errors.
func (r *CartRepository) classifyMissingLine(ctx context.Context, itemID, vendorID uuid.UUID) error {
	var finalized bool
	err := db.DB.QueryRowContext(ctx,
		`SELECT is_finalized FROM cart_items WHERE id = $1 AND vendor_id = $2`,
		itemID, vendorID).Scan(&finalized)
	if err == nil && finalized {
		return ErrFinalized
	}
	return fmt.Errorf("%w: cart item not found", ErrNotFound)
}

func (r *CartRepository) getItemWithProduct(ctx context.Context, itemID uuid.UUID) (*models.CartItemWithProduct, error) {
	query := `
		SELECT ci.id, ci.vendor_id, ci.product_id, ci.quantity, ci.is_finalized, ci.final_price, ci.added_at, ci.finalized_at,
		       p.id, p.supplier_id, p.name, COALESCE(p.description, ''), p.unit, p.base_price, COALESCE(p.img_emoji, ''), p.is_available, p.created_at
		FROM cart_items ci
		INNER JOIN products p ON ci.product_id = p.id
		WHERE ci.id = $1
	`
	var item models.CartItemWithProduct
	err := db.DB.QueryRowContext(ctx, query, itemID).Scan(
		&item.ID,
		&item.VendorID,
		&item.ProductID,
		&item.Quantity,
		&item.IsFinalized,
		&item.FinalPrice,
		&item.AddedAt,
		&item.FinalizedAt,
		&item.Product.ID,
		&item.Product.SupplierID,
		&item.Product.Name,
		&item.Product.Description,
		&item.Product.Unit,
		&item.Product.BasePrice,
		&item.Product.ImgEmoji,
		&item.Product.IsAvailable,
		&item.Product.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: cart item not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch cart line: %w", err)
	}
	return &item, nil
}
