package routing

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"vendor-collective/models"
)

func routeStop(seq int, stopType, status string) models.RouteStop {
	return models.RouteStop{
		ID:            uuid.New(),
		StopType:      stopType,
		SequenceOrder: seq,
		Status:        status,
	}
}

func TestProjectOrderStatus(t *testing.T) {
	t.Run("no stop today", func(t *testing.T) {
		got := ProjectOrderStatus(nil, nil)
		if got.Status != "Order Placed" {
			t.Errorf("status = %s, want Order Placed", got.Status)
		}
	})

	t.Run("own stop completed", func(t *testing.T) {
		own := routeStop(3, models.StopTypeDelivery, models.StopStatusCompleted)
		got := ProjectOrderStatus(&own, []models.RouteStop{own})
		if got.Status != "Delivered" {
			t.Errorf("status = %s, want Delivered", got.Status)
		}
	})

	t.Run("earliest pending is a pickup", func(t *testing.T) {
		stops := []models.RouteStop{
			routeStop(1, models.StopTypePickup, models.StopStatusPending),
			routeStop(2, models.StopTypePickup, models.StopStatusPending),
			routeStop(3, models.StopTypeDelivery, models.StopStatusPending),
		}
		got := ProjectOrderStatus(&stops[2], stops)
		if got.Status != "Collecting Goods" {
			t.Errorf("status = %s, want Collecting Goods", got.Status)
		}
		if !strings.Contains(got.Details, "#3") {
			t.Errorf("details should carry the stop position, got %q", got.Details)
		}
	})

	t.Run("own delivery is next", func(t *testing.T) {
		stops := []models.RouteStop{
			routeStop(1, models.StopTypePickup, models.StopStatusCompleted),
			routeStop(2, models.StopTypeDelivery, models.StopStatusPending),
			routeStop(3, models.StopTypeDelivery, models.StopStatusPending),
		}
		got := ProjectOrderStatus(&stops[1], stops)
		if got.Status != "Out for Delivery" {
			t.Errorf("status = %s, want Out for Delivery", got.Status)
		}
	})

	t.Run("other deliveries first", func(t *testing.T) {
		stops := []models.RouteStop{
			routeStop(1, models.StopTypePickup, models.StopStatusCompleted),
			routeStop(2, models.StopTypeDelivery, models.StopStatusPending),
			routeStop(3, models.StopTypeDelivery, models.StopStatusPending),
		}
		got := ProjectOrderStatus(&stops[2], stops)
		if got.Status != "In Progress" {
			t.Errorf("status = %s, want In Progress", got.Status)
		}
		if !strings.Contains(got.Details, "#3") {
			t.Errorf("details should carry the vendor's sequence, got %q", got.Details)
		}
	})

	t.Run("own stop in progress with nothing pending", func(t *testing.T) {
		stops := []models.RouteStop{
			routeStop(1, models.StopTypePickup, models.StopStatusCompleted),
			routeStop(2, models.StopTypeDelivery, models.StopStatusInProgress),
		}
		got := ProjectOrderStatus(&stops[1], stops)
		if got.Status != "Out for Delivery" {
			t.Errorf("status = %s, want Out for Delivery", got.Status)
		}
	})
}
