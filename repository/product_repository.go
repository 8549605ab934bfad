package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"vendor-collective/db"
	"vendor-collective/logging"
	"vendor-collective/models"
)

// ProductRepository handles database operations for supplier products and deals
type ProductRepository struct{}

// NewProductRepository creates a new ProductRepository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

// Create inserts a new product owned by the supplier.
func (r *ProductRepository) Create(ctx context.Context, supplierID uuid.UUID, req *models.CreateProductRequest) (*models.Product, error) {
	logging.L.Infof("📦 CreateProduct: supplier=%s name=%q", supplierID, req.Name)

	if req.BasePrice <= 0 {
		return nil, fmt.Errorf("basePrice must be greater than 0")
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	var product models.Product
	query := `
		INSERT INTO products (id, supplier_id, name, description, unit, base_price, img_emoji, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, supplier_id, name, COALESCE(description, ''), unit, base_price, COALESCE(img_emoji, ''), is_available, created_at
	`
	err := db.DB.QueryRowContext(ctx, query,
		uuid.New(), supplierID, req.Name, req.Description, req.Unit, req.BasePrice, req.ImgEmoji, available,
	).Scan(
		&product.ID,
		&product.SupplierID,
		&product.Name,
		&product.Description,
		&product.Unit,
		&product.BasePrice,
		&product.ImgEmoji,
		&product.IsAvailable,
		&product.CreatedAt,
	)
	if err != nil {
		logging.L.Errorf("❌ CreateProduct: Error inserting product: %v", err)
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	logging.L.Infof("✅ CreateProduct: %s (%s)", product.Name, product.ID)
	return &product, nil
}

// ListAvailable returns every available product with its active deals, for
// the vendor-facing catalog.
func (r *ProductRepository) ListAvailable(ctx context.Context) ([]models.ProductWithDeals, error) {
	query := `
		SELECT id, supplier_id, name, COALESCE(description, ''), unit, base_price, COALESCE(img_emoji, ''), is_available, created_at
		FROM products
		WHERE is_available = TRUE
		ORDER BY created_at DESC
	`
	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		logging.L.Errorf("❌ ListAvailable: Error fetching products: %v", err)
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer rows.Close()

	products := []models.ProductWithDeals{}
	index := map[uuid.UUID]int{}
	for rows.Next() {
		var p models.ProductWithDeals
		if err := rows.Scan(
			&p.ID,
			&p.SupplierID,
			&p.Name,
			&p.Description,
			&p.Unit,
			&p.BasePrice,
			&p.ImgEmoji,
			&p.IsAvailable,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p.Deals = []models.Deal{}
		index[p.ID] = len(products)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	queryDeals := `
		SELECT d.id, d.product_id, d.threshold, d.discount, d.is_active, d.created_at
		FROM deals d
		INNER JOIN products p ON d.product_id = p.id
		WHERE d.is_active = TRUE AND p.is_available = TRUE
		ORDER BY d.threshold
	`
	dealRows, err := db.DB.QueryContext(ctx, queryDeals)
	if err != nil {
		logging.L.Errorf("❌ ListAvailable: Error fetching deals: %v", err)
		return nil, fmt.Errorf("failed to fetch deals: %w", err)
	}
	defer dealRows.Close()

	for dealRows.Next() {
		var d models.Deal
		if err := dealRows.Scan(&d.ID, &d.ProductID, &d.Threshold, &d.Discount, &d.IsActive, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deal: %w", err)
		}
		if i, ok := index[d.ProductID]; ok {
			products[i].Deals = append(products[i].Deals, d)
		}
	}
	return products, dealRows.Err()
}

// ListBySupplier returns the supplier's own products, available or not.
func (r *ProductRepository) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]models.Product, error) {
	query := `
		SELECT id, supplier_id, name, COALESCE(description, ''), unit, base_price, COALESCE(img_emoji, ''), is_available, created_at
		FROM products
		WHERE supplier_id = $1
		ORDER BY created_at DESC
	`
	rows, err := db.DB.QueryContext(ctx, query, supplierID)
	if err != nil {
		logging.L.Errorf("❌ ListBySupplier: Error fetching products: %v", err)
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(
			&p.ID,
			&p.SupplierID,
			&p.Name,
			&p.Description,
			&p.Unit,
			&p.BasePrice,
			&p.ImgEmoji,
			&p.IsAvailable,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Update applies a partial update to a product the supplier owns.
func (r *ProductRepository) Update(ctx context.Context, id, supplierID uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	sets := []string{}
	args := []interface{}{}
	arg := 1

	appendSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, arg))
		args = append(args, value)
		arg++
	}

	if req.Name != nil {
		appendSet("name", *req.Name)
	}
	if req.Description != nil {
		appendSet("description", *req.Description)
	}
	if req.Unit != nil {
		appendSet("unit", *req.Unit)
	}
	if req.BasePrice != nil {
		if *req.BasePrice <= 0 {
			return nil, fmt.Errorf("basePrice must be greater than 0")
		}
		appendSet("base_price", *req.BasePrice)
	}
	if req.ImgEmoji != nil {
		appendSet("img_emoji", *req.ImgEmoji)
	}
	if req.IsAvailable != nil {
		appendSet("is_available", *req.IsAvailable)
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE products
		SET %s
		WHERE id = $%d AND supplier_id = $%d
		RETURNING id, supplier_id, name, COALESCE(description, ''), unit, base_price, COALESCE(img_emoji, ''), is_available, created_at
	`, strings.Join(sets, ", "), arg, arg+1)
	args = append(args, id, supplierID)

	var product models.Product
	err := db.DB.QueryRowContext(ctx, query, args...).Scan(
		&product.ID,
		&product.SupplierID,
		&product.Name,
		&product.Description,
		&product.Unit,
		&product.BasePrice,
		&product.ImgEmoji,
		&product.IsAvailable,
		&product.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		logging.L.Errorf("❌ UpdateProduct: Error updating product: %v", err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	logging.L.Infof("✅ UpdateProduct: %s", product.ID)
	return &product, nil
}

// Delete marks a product unavailable rather than removing it, so finalized
// history keeps its joins.
func (r *ProductRepository) Delete(ctx context.Context, id, supplierID uuid.UUID) error {
	result, err := db.DB.ExecContext(ctx,
		`UPDATE products SET is_available = FALSE WHERE id = $1 AND supplier_id = $2`,
		id, supplierID)
	if err != nil {
		logging.L.Errorf("❌ DeleteProduct: Error hiding product: %v", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: product not found", ErrNotFound)
	}
	logging.L.Infof("✅ DeleteProduct: %s hidden", id)
	return nil
}

// CreateDeal attaches a threshold deal to one of the supplier's products.
func (r *ProductRepository) CreateDeal(ctx context.Context, productID, supplierID uuid.UUID, req *models.CreateDealRequest) (*models.Deal, error) {
	if req.Threshold <= 0 {
		return nil, fmt.Errorf("threshold must be greater than 0")
	}
	if req.Discount <= 0 || req.Discount >= 1 {
		return nil, fmt.Errorf("discount must be between 0 and 1 exclusive")
	}

	// Ownership check before the insert.
	var owner uuid.UUID
	err := db.DB.QueryRowContext(ctx, `SELECT supplier_id FROM products WHERE id = $1`, productID).Scan(&owner)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	if owner != supplierID {
		return nil, fmt.Errorf("%w: product not found", ErrNotFound)
	}

	var deal models.Deal
	query := `
		INSERT INTO deals (id, product_id, threshold, discount)
		VALUES ($1, $2, $3, $4)
		RETURNING id, product_id, threshold, discount, is_active, created_at
	`
	err = db.DB.QueryRowContext(ctx, query, uuid.New(), productID, req.Threshold, req.Discount).Scan(
		&deal.ID,
		&deal.ProductID,
		&deal.Threshold,
		&deal.Discount,
		&deal.IsActive,
		&deal.CreatedAt,
	)
	if err != nil {
		logging.L.Errorf("❌ CreateDeal: Error inserting deal: %v", err)
		return nil, fmt.Errorf("failed to insert deal: %w", err)
	}

	logging.L.Infof("✅ CreateDeal: product=%s threshold=%d discount=%.2f", productID, deal.Threshold, deal.Discount)
	return &deal, nil
}

// UpdateDeal applies a partial update to a deal on one of the supplier's products.
func (r *ProductRepository) UpdateDeal(ctx context.Context, dealID, supplierID uuid.UUID, req *models.UpdateDealRequest) (*models.Deal, error) {
	sets := []string{}
	args := []interface{}{}
	arg := 1

	appendSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, arg))
		args = append(args, value)
		arg++
	}

	if req.Threshold != nil {
		if *req.Threshold <= 0 {
			return nil, fmt.Errorf("threshold must be greater than 0")
		}
		appendSet("threshold", *req.Threshold)
	}
	if req.Discount != nil {
		if *req.Discount <= 0 || *req.Discount >= 1 {
			return nil, fmt.Errorf("discount must be between 0 and 1 exclusive")
		}
		appendSet("discount", *req.Discount)
	}
	if req.IsActive != nil {
		appendSet("is_active", *req.IsActive)
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`
		UPDATE deals d
		SET %s
		FROM products p
		WHERE d.id = $%d AND d.product_id = p.id AND p.supplier_id = $%d
		RETURNING d.id, d.product_id, d.threshold, d.discount, d.is_active, d.created_at
	`, strings.Join(sets, ", "), arg, arg+1)
	args = append(args, dealID, supplierID)

	var deal models.Deal
	err := db.DB.QueryRowContext(ctx, query, args...).Scan(
		&deal.ID,
		&deal.ProductID,
		&deal.Threshold,
		&deal.Discount,
		&deal.IsActive,
		&deal.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: deal not found", ErrNotFound)
		}
		logging.L.Errorf("❌ UpdateDeal: Error updating deal: %v", err)
		return nil, fmt.Errorf("failed to update deal: %w", err)
	}
	return &deal, nil
}

// DeleteDeal removes a deal from one of the supplier's products.
func (r *ProductRepository) DeleteDeal(ctx context.Context, dealID, supplierID uuid.UUID) error {
	query := `
		DELETE FROM deals d
		USING products p
		WHERE d.id = $1 AND d.product_id = p.id AND p.supplier_id = $2
	`
	result, err := db.DB.ExecContext(ctx, query, dealID, supplierID)
	if err != nil {
		logging.L.Errorf("❌ DeleteDeal: Error deleting deal: %v", err)
		return fmt.Errorf("failed to delete deal: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: deal not found", ErrNotFound)
	}
	return nil
}
