package repository

import (
	"context"

	"github.com/google/uuid"

	"vendor-collective/models"
)

// ProductRepositoryInterface defines the contract for product and deal operations
type ProductRepositoryInterface interface {
	Create(ctx context.Context, supplierID uuid.UUID, req *models.CreateProductRequest) (*models.Product, error)
	ListAvailable(ctx context.Context) ([]models.ProductWithDeals, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]models.Product, error)
	Update(ctx context.Context, id, supplierID uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id, supplierID uuid.UUID) error
	CreateDeal(ctx context.Context, productID, supplierID uuid.UUID, req *models.CreateDealRequest) (*models.Deal, error)
	UpdateDeal(ctx context.Context, dealID, supplierID uuid.UUID, req *models.UpdateDealRequest) (*models.Deal, error)
	DeleteDeal(ctx context.Context, dealID, supplierID uuid.UUID) error
}

// CartRepositoryInterface defines the contract for vendor cart operations
type CartRepositoryInterface interface {
	AddItem(ctx context.Context, vendorID, productID uuid.UUID, quantity int) (*models.CartItemWithProduct, error)
	GetCart(ctx context.Context, vendorID uuid.UUID) (*models.CartView, error)
	UpdateQuantity(ctx context.Context, itemID, vendorID uuid.UUID, quantity int) (*models.CartItem, error)
	RemoveItem(ctx context.Context, itemID, vendorID uuid.UUID) error
}

// OrderRepositoryInterface defines the contract for the finalization engine
// and the vendor-facing tracking projection
type OrderRepositoryInterface interface {
	FinalizeAndRoute(ctx context.Context) (*models.FinalizeResult, error)
	LatestStatus(ctx context.Context, vendorID uuid.UUID) (*models.OrderStatusView, error)
}

// RouteRepositoryInterface defines the contract for agent route operations
type RouteRepositoryInterface interface {
	GetTodayRouteForAgent(ctx context.Context, agentID uuid.UUID) (*models.RouteView, error)
	GetStopManifest(ctx context.Context, stopID, agentID uuid.UUID) ([]models.ManifestLine, error)
	UpdateStopStatus(ctx context.Context, stopID, agentID uuid.UUID, status string) (*models.RouteStop, error)
	GetProgress(ctx context.Context, agentID uuid.UUID) (*models.RouteProgress, error)
}

// ProfileRepositoryInterface defines the contract for wallet and user operations
type ProfileRepositoryInterface interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (int64, error)
	Credit(ctx context.Context, userID uuid.UUID, amount int64) (int64, error)
	GetContact(ctx context.Context, userID uuid.UUID) (name string, phone string, err error)
	ListUsers(ctx context.Context, page, limit int, role string) (*models.UserListResponse, error)
}

// ApplicationRepositoryInterface defines the contract for role applications
type ApplicationRepositoryInterface interface {
	Create(ctx context.Context, userID uuid.UUID, req *models.CreateApplicationRequest) (*models.Application, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Application, error)
	ListByStatus(ctx context.Context, status string) ([]models.Application, error)
	Review(ctx context.Context, id uuid.UUID, status string) (*models.Application, error)
}
