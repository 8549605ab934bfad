package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"vendor-collective/app/middleware"
	"vendor-collective/models"
)

type fakeOrderRepository struct {
	result *models.FinalizeResult
	err    error
	calls  int
}

func (f *fakeOrderRepository) FinalizeAndRoute(ctx context.Context) (*models.FinalizeResult, error) {
	f.calls++
	return f.result, f.err
}

func (f *fakeOrderRepository) LatestStatus(ctx context.Context, vendorID uuid.UUID) (*models.OrderStatusView, error) {
	return &models.OrderStatusView{Status: "Order Placed"}, nil
}

type fakeProfileRepository struct {
	contacts map[uuid.UUID][2]string
}

func (f *fakeProfileRepository) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeProfileRepository) Credit(ctx context.Context, userID uuid.UUID, amount int64) (int64, error) {
	return amount, nil
}

func (f *fakeProfileRepository) GetContact(ctx context.Context, userID uuid.UUID) (string, string, error) {
	c, ok := f.contacts[userID]
	if !ok {
		return "", "", context.Canceled
	}
	return c[0], c[1], nil
}

func (f *fakeProfileRepository) ListUsers(ctx context.Context, page, limit int, role string) (*models.UserListResponse, error) {
	return &models.UserListResponse{}, nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	confirmed []string
	suppliers []string
	routes    []string
	done      chan struct{}
	expected  int
}

func newRecordingNotifier(expected int) *recordingNotifier {
	return &recordingNotifier{done: make(chan struct{}, expected*2), expected: expected}
}

func (n *recordingNotifier) NotifyOrderConfirmed(phone, name string, amountPaise int64) {
	n.mu.Lock()
	n.confirmed = append(n.confirmed, phone)
	n.mu.Unlock()
	n.done <- struct{}{}
}

func (n *recordingNotifier) NotifySupplierSummary(phone, name, productsSummary string) {
	n.mu.Lock()
	n.suppliers = append(n.suppliers, phone)
	n.mu.Unlock()
	n.done <- struct{}{}
}

func (n *recordingNotifier) NotifyRouteAssigned(phone, name string, stopCount int) {
	n.mu.Lock()
	n.routes = append(n.routes, phone)
	n.mu.Unlock()
	n.done <- struct{}{}
}

func (n *recordingNotifier) wait(t *testing.T) {
	t.Helper()
	for i := 0; i < n.expected; i++ {
		select {
		case <-n.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for notification %d of %d", i+1, n.expected)
		}
	}
}

func TestFinalizeAndRouteRejectsBadSecret(t *testing.T) {
	repo := &fakeOrderRepository{}
	ctrl := NewOrderController(repo, &fakeProfileRepository{}, newRecordingNotifier(0), "topsecret")

	req := httptest.NewRequest(http.MethodPost, "/orders/finalize-and-route", nil)
	req.Header.Set("X-Internal-Secret", "wrong")
	rec := httptest.NewRecorder()
	ctrl.FinalizeAndRoute(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if repo.calls != 0 {
		t.Fatalf("repository should not be called on bad secret, got %d calls", repo.calls)
	}
}

func TestFinalizeAndRouteNothingPending(t *testing.T) {
	repo := &fakeOrderRepository{
		result: &models.FinalizeResult{Message: "No pending orders to finalize."},
	}
	ctrl := NewOrderController(repo, &fakeProfileRepository{}, newRecordingNotifier(0), "topsecret")

	req := httptest.NewRequest(http.MethodPost, "/orders/finalize-and-route", nil)
	req.Header.Set("X-Internal-Secret", "topsecret")
	rec := httptest.NewRecorder()
	ctrl.FinalizeAndRoute(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var result models.FinalizeResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.Message != "No pending orders to finalize." {
		t.Errorf("unexpected message %q", result.Message)
	}
	if result.RouteID != nil {
		t.Error("no route should be created when nothing is pending")
	}
}

func TestFinalizeAndRouteDispatchesNotifications(t *testing.T) {
	routeID := uuid.New()
	agentID := uuid.New()
	paidVendor := uuid.New()
	brokeVendor := uuid.New()
	supplierID := uuid.New()

	repo := &fakeOrderRepository{
		result: &models.FinalizeResult{
			Message: "Finalized 3 order lines.",
			RouteID: &routeID,
			AgentID: &agentID,
			TotalsByBuyer: []models.BuyerTotal{
				{VendorID: paidVendor, Total: 8000},
				{VendorID: brokeVendor, Total: 5000},
			},
			DebitFailures: []models.DebitFailure{
				{VendorID: brokeVendor, AmountDue: 5000, Available: 100, Reason: "insufficient balance"},
			},
			SupplierSummaries: []models.SupplierSummary{
				{SupplierID: supplierID, TotalOrders: 22, ProductsSummary: "Onions: 22 kg"},
			},
			PickupStops:   1,
			DeliveryStops: 2,
		},
	}
	profiles := &fakeProfileRepository{contacts: map[uuid.UUID][2]string{
		paidVendor: {"Asha", "+911111111111"},
		supplierID: {"Balu", "+912222222222"},
		agentID:    {"Chitra", "+913333333333"},
	}}
	// One confirmation, one supplier summary, one route assignment. The
	// debit-failed vendor gets nothing.
	notifier := newRecordingNotifier(3)
	ctrl := NewOrderController(repo, profiles, notifier, "topsecret")

	req := httptest.NewRequest(http.MethodPost, "/orders/finalize-and-route", nil)
	req.Header.Set("X-Internal-Secret", "topsecret")
	rec := httptest.NewRecorder()
	ctrl.FinalizeAndRoute(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), routeID.String()) {
		t.Error("response should include the created route id")
	}

	notifier.wait(t)
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	if len(notifier.confirmed) != 1 || notifier.confirmed[0] != "+911111111111" {
		t.Errorf("expected one confirmation to the paid vendor, got %v", notifier.confirmed)
	}
	if len(notifier.suppliers) != 1 || notifier.suppliers[0] != "+912222222222" {
		t.Errorf("expected one supplier summary, got %v", notifier.suppliers)
	}
	if len(notifier.routes) != 1 || notifier.routes[0] != "+913333333333" {
		t.Errorf("expected one route assignment, got %v", notifier.routes)
	}
}

func TestLatestStatusUsesCallerIdentity(t *testing.T) {
	ctrl := NewOrderController(&fakeOrderRepository{}, &fakeProfileRepository{}, newRecordingNotifier(0), "topsecret")

	handler := middleware.Identity(http.HandlerFunc(ctrl.LatestStatus))

	req := httptest.NewRequest(http.MethodGet, "/orders/me/latest-status", nil)
	req.Header.Set("X-User-Id", uuid.New().String())
	req.Header.Set("X-User-Role", models.RoleVendor)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var view models.OrderStatusView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if view.Status != "Order Placed" {
		t.Errorf("unexpected status %q", view.Status)
	}
}

func TestLatestStatusRejectsMissingIdentity(t *testing.T) {
	ctrl := NewOrderController(&fakeOrderRepository{}, &fakeProfileRepository{}, newRecordingNotifier(0), "topsecret")

	handler := middleware.Identity(http.HandlerFunc(ctrl.LatestStatus))

	req := httptest.NewRequest(http.MethodGet, "/orders/me/latest-status", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
