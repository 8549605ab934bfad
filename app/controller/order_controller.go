package controller

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/google/uuid"

	"vendor-collective/app/middleware"
	"vendor-collective/logging"
	"vendor-collective/models"
	"vendor-collective/repository"
	"vendor-collective/service"
)

// OrderController handles the finalize trigger and vendor order tracking
type OrderController struct {
	orders        repository.OrderRepositoryInterface
	profiles      repository.ProfileRepositoryInterface
	notifications service.NotificationServiceInterface
	sharedSecret  string
}

// NewOrderController creates a new OrderController
func NewOrderController(
	orders repository.OrderRepositoryInterface,
	profiles repository.ProfileRepositoryInterface,
	notifications service.NotificationServiceInterface,
	sharedSecret string,
) *OrderController {
	return &OrderController{
		orders:        orders,
		profiles:      profiles,
		notifications: notifications,
		sharedSecret:  sharedSecret,
	}
}

// FinalizeAndRoute handles POST /orders/finalize-and-route. Only the
// scheduler knows the shared secret; this endpoint sits outside the
// identity middleware.
func (c *OrderController) FinalizeAndRoute(w http.ResponseWriter, r *http.Request) {
	logging.L.Infof("📥 FinalizeAndRoute: Received %s request to %s", r.Method, r.URL.Path)

	secret := r.Header.Get("X-Internal-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(c.sharedSecret)) != 1 {
		logging.L.Warnf("⚠️ FinalizeAndRoute: Rejected request with bad internal secret")
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	result, err := c.orders.FinalizeAndRoute(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	if result.RouteID != nil {
		// Fire-and-forget: the run is already committed, SMS outcomes
		// must not change the response.
		go c.dispatchNotifications(result)
	}

	writeJSON(w, http.StatusOK, result)
}

// LatestStatus handles GET /orders/me/latest-status
func (c *OrderController) LatestStatus(w http.ResponseWriter, r *http.Request) {
	status, err := c.orders.LatestStatus(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// dispatchNotifications sends the post-finalization SMS fan-out: order
// confirmations to debited vendors, pickup summaries to suppliers, and the
// route assignment to the agent.
func (c *OrderController) dispatchNotifications(result *models.FinalizeResult) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.L.Errorf("❌ Notification dispatch panicked: %v", rec)
		}
	}()
	ctx := context.Background()

	failed := map[uuid.UUID]bool{}
	for _, f := range result.DebitFailures {
		failed[f.VendorID] = true
	}

	for _, total := range result.TotalsByBuyer {
		if failed[total.VendorID] {
			continue
		}
		name, phone, err := c.profiles.GetContact(ctx, total.VendorID)
		if err != nil {
			logging.L.Warnf("⚠️ Notification: No contact for vendor %s: %v", total.VendorID, err)
			continue
		}
		c.notifications.NotifyOrderConfirmed(phone, name, total.Total)
	}

	for _, summary := range result.SupplierSummaries {
		name, phone, err := c.profiles.GetContact(ctx, summary.SupplierID)
		if err != nil {
			logging.L.Warnf("⚠️ Notification: No contact for supplier %s: %v", summary.SupplierID, err)
			continue
		}
		c.notifications.NotifySupplierSummary(phone, name, summary.ProductsSummary)
	}

	if result.AgentID != nil {
		name, phone, err := c.profiles.GetContact(ctx, *result.AgentID)
		if err != nil {
			logging.L.Warnf("⚠️ Notification: No contact for agent %s: %v", *result.AgentID, err)
			return
		}
		c.notifications.NotifyRouteAssigned(phone, name, result.PickupStops+result.DeliveryStops)
	}
}
