package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"vendor-collective/app/middleware"
	"vendor-collective/models"
	"vendor-collective/repository"
)

type fakeCartRepository struct {
	item *models.CartItemWithProduct
	err  error
}

func (f *fakeCartRepository) AddItem(ctx context.Context, vendorID, productID uuid.UUID, quantity int) (*models.CartItemWithProduct, error) {
	return f.item, f.err
}

func (f *fakeCartRepository) GetCart(ctx context.Context, vendorID uuid.UUID) (*models.CartView, error) {
	return &models.CartView{Items: []models.CartItemWithProduct{}}, nil
}

func (f *fakeCartRepository) UpdateQuantity(ctx context.Context, itemID, vendorID uuid.UUID, quantity int) (*models.CartItem, error) {
	return nil, f.err
}

func (f *fakeCartRepository) RemoveItem(ctx context.Context, itemID, vendorID uuid.UUID) error {
	return f.err
}

func asVendor(req *http.Request) *http.Request {
	req.Header.Set("X-User-Id", uuid.NewString())
	req.Header.Set("X-User-Role", models.RoleVendor)
	return req
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	ctrl := NewCartController(&fakeCartRepository{})
	handler := middleware.Identity(http.HandlerFunc(ctrl.AddItem))

	body := strings.NewReader(`{"productId":"` + uuid.NewString() + `","quantity":0}`)
	req := asVendor(httptest.NewRequest(http.MethodPost, "/cart/items", body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAddItemCreated(t *testing.T) {
	item := &models.CartItemWithProduct{}
	item.ID = uuid.New()
	item.Quantity = 5
	ctrl := NewCartController(&fakeCartRepository{item: item})
	handler := middleware.Identity(http.HandlerFunc(ctrl.AddItem))

	body := strings.NewReader(`{"productId":"` + uuid.NewString() + `","quantity":5}`)
	req := asVendor(httptest.NewRequest(http.MethodPost, "/cart/items", body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), item.ID.String()) {
		t.Error("response should include the cart line id")
	}
}

func TestRemoveItemMapsFinalizedTo400(t *testing.T) {
	ctrl := NewCartController(&fakeCartRepository{err: repository.ErrFinalized})

	req := asVendor(httptest.NewRequest(http.MethodDelete, "/cart/items/"+uuid.NewString(), nil))
	rec := httptest.NewRecorder()

	// Route through chi so the URL param is populated.
	handler := middleware.Identity(http.HandlerFunc(ctrl.RemoveItem))
	rctx := chiRouteContext(t, "id", uuid.NewString())
	handler.ServeHTTP(rec, req.WithContext(rctx(req.Context())))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRemoveItemMapsNotFoundTo404(t *testing.T) {
	ctrl := NewCartController(&fakeCartRepository{err: repository.ErrNotFound})

	req := asVendor(httptest.NewRequest(http.MethodDelete, "/cart/items/"+uuid.NewString(), nil))
	rec := httptest.NewRecorder()

	handler := middleware.Identity(http.HandlerFunc(ctrl.RemoveItem))
	rctx := chiRouteContext(t, "id", uuid.NewString())
	handler.ServeHTTP(rec, req.WithContext(rctx(req.Context())))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
