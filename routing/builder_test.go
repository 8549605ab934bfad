package routing

import (
	"testing"

	"github.com/google/uuid"

	"vendor-collective/models"
)

func pricedLine(vendor, supplier uuid.UUID) models.PricedLine {
	return models.PricedLine{
		PendingLine: models.PendingLine{
			LineID:     uuid.New(),
			VendorID:   vendor,
			ProductID:  uuid.New(),
			SupplierID: supplier,
			Quantity:   1,
		},
		FinalPrice: 1000,
	}
}

// Scenario E: three vendors ordering from two suppliers yields exactly
// 2 pickup stops then 3 delivery stops, sequenced 1-5.
func TestBuildStopsScenarioE(t *testing.T) {
	supplierA := uuid.New()
	supplierB := uuid.New()
	vendors := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	lines := []models.PricedLine{
		pricedLine(vendors[0], supplierA),
		pricedLine(vendors[1], supplierA),
		pricedLine(vendors[1], supplierB),
		pricedLine(vendors[2], supplierB),
	}

	stops := BuildStops(lines)
	if len(stops) != 5 {
		t.Fatalf("got %d stops, want 5", len(stops))
	}

	pickups := 0
	deliveries := 0
	for i, stop := range stops {
		if stop.SequenceOrder != i+1 {
			t.Errorf("stop %d sequence = %d, want %d", i, stop.SequenceOrder, i+1)
		}
		switch stop.StopType {
		case models.StopTypePickup:
			pickups++
			if deliveries > 0 {
				t.Errorf("pickup at sequence %d after a delivery", stop.SequenceOrder)
			}
		case models.StopTypeDelivery:
			deliveries++
		}
	}
	if pickups != 2 || deliveries != 3 {
		t.Errorf("got %d pickups and %d deliveries, want 2 and 3", pickups, deliveries)
	}
}

// Route closure: the pickup stops cover exactly the suppliers of the
// finalized lines, and the delivery stops exactly the vendors.
func TestBuildStopsClosure(t *testing.T) {
	suppliers := map[uuid.UUID]bool{uuid.New(): true, uuid.New(): true, uuid.New(): true}
	vendors := map[uuid.UUID]bool{uuid.New(): true, uuid.New(): true}

	var lines []models.PricedLine
	for supplier := range suppliers {
		for vendor := range vendors {
			lines = append(lines, pricedLine(vendor, supplier))
		}
	}

	stops := BuildStops(lines)

	pickupSet := make(map[uuid.UUID]bool)
	deliverySet := make(map[uuid.UUID]bool)
	for _, stop := range stops {
		if stop.StopType == models.StopTypePickup {
			pickupSet[stop.ProfileID] = true
		} else {
			deliverySet[stop.ProfileID] = true
		}
	}

	if len(pickupSet) != len(suppliers) {
		t.Errorf("pickup set size %d, want %d", len(pickupSet), len(suppliers))
	}
	for supplier := range suppliers {
		if !pickupSet[supplier] {
			t.Errorf("supplier %s missing from pickup stops", supplier)
		}
	}
	if len(deliverySet) != len(vendors) {
		t.Errorf("delivery set size %d, want %d", len(deliverySet), len(vendors))
	}
	for vendor := range vendors {
		if !deliverySet[vendor] {
			t.Errorf("vendor %s missing from delivery stops", vendor)
		}
	}
}

// One stop per distinct profile, however many lines share it.
func TestBuildStopsDeduplicates(t *testing.T) {
	supplier := uuid.New()
	vendor := uuid.New()
	lines := []models.PricedLine{
		pricedLine(vendor, supplier),
		pricedLine(vendor, supplier),
		pricedLine(vendor, supplier),
	}

	stops := BuildStops(lines)
	if len(stops) != 2 {
		t.Fatalf("got %d stops, want 2", len(stops))
	}
}

func TestBuildStopsDeterministic(t *testing.T) {
	supplierA := uuid.New()
	supplierB := uuid.New()
	vendor := uuid.New()

	forward := BuildStops([]models.PricedLine{pricedLine(vendor, supplierA), pricedLine(vendor, supplierB)})
	reverse := BuildStops([]models.PricedLine{pricedLine(vendor, supplierB), pricedLine(vendor, supplierA)})

	if len(forward) != len(reverse) {
		t.Fatalf("stop counts differ: %d vs %d", len(forward), len(reverse))
	}
	for i := range forward {
		if forward[i].ProfileID != reverse[i].ProfileID || forward[i].SequenceOrder != reverse[i].SequenceOrder {
			t.Errorf("stop %d differs between input orders", i)
		}
	}
}

func TestValidStopTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{models.StopStatusPending, models.StopStatusInProgress, true},
		{models.StopStatusPending, models.StopStatusCompleted, true},
		{models.StopStatusPending, models.StopStatusFailed, true},
		{models.StopStatusInProgress, models.StopStatusCompleted, true},
		{models.StopStatusInProgress, models.StopStatusFailed, true},
		{models.StopStatusInProgress, models.StopStatusPending, false},
		{models.StopStatusCompleted, models.StopStatusInProgress, false},
		{models.StopStatusCompleted, models.StopStatusCompleted, false},
		{models.StopStatusFailed, models.StopStatusCompleted, false},
	}
	for _, tt := range tests {
		if got := ValidStopTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("ValidStopTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestRouteStatusAfter(t *testing.T) {
	stop := func(status string) models.RouteStop {
		return models.RouteStop{ID: uuid.New(), Status: status}
	}

	tests := []struct {
		name  string
		stops []models.RouteStop
		want  string
	}{
		{"all pending", []models.RouteStop{stop(models.StopStatusPending), stop(models.StopStatusPending)}, models.RouteStatusAssigned},
		{"one in progress", []models.RouteStop{stop(models.StopStatusInProgress), stop(models.StopStatusPending)}, models.RouteStatusInProgress},
		{"partially completed", []models.RouteStop{stop(models.StopStatusCompleted), stop(models.StopStatusPending)}, models.RouteStatusInProgress},
		{"all completed", []models.RouteStop{stop(models.StopStatusCompleted), stop(models.StopStatusCompleted)}, models.RouteStatusCompleted},
		{"failed stop keeps route in progress", []models.RouteStop{stop(models.StopStatusCompleted), stop(models.StopStatusFailed)}, models.RouteStatusInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RouteStatusAfter(tt.stops); got != tt.want {
				t.Errorf("RouteStatusAfter = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	route := models.DeliveryRoute{ID: uuid.New(), Status: models.RouteStatusInProgress}
	stops := []models.RouteStop{
		{Status: models.StopStatusCompleted},
		{Status: models.StopStatusCompleted},
		{Status: models.StopStatusInProgress},
		{Status: models.StopStatusPending},
	}

	p := Progress(route, stops)
	if p.TotalStops != 4 || p.Completed != 2 || p.InProgress != 1 || p.Pending != 1 || p.Failed != 0 {
		t.Errorf("unexpected tallies: %+v", p)
	}
	if p.PercentComplete != 50 {
		t.Errorf("percent = %v, want 50", p.PercentComplete)
	}
}
