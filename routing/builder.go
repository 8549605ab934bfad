// Package routing implements the pure route construction and the
// vendor-facing status projection over routes and stops.
package routing

import (
	"sort"

	"github.com/google/uuid"

	"vendor-collective/models"
)

// PlannedStop is one stop before persistence: the profile to visit, the
// stop type, and its 1-based position on the route.
type PlannedStop struct {
	ProfileID     uuid.UUID
	StopType      string
	SequenceOrder int
}

// BuildStops groups the finalized lines into one pickup stop per distinct
// supplier followed by one delivery stop per distinct vendor. Sequencing
// is by ascending profile id string within each group — stable across
// runs, with no geographic optimization.
func BuildStops(lines []models.PricedLine) []PlannedStop {
	suppliers := make(map[uuid.UUID]bool)
	vendors := make(map[uuid.UUID]bool)
	for _, line := range lines {
		suppliers[line.SupplierID] = true
		vendors[line.VendorID] = true
	}

	stops := make([]PlannedStop, 0, len(suppliers)+len(vendors))
	sequence := 1
	for _, supplierID := range sortedIDs(suppliers) {
		stops = append(stops, PlannedStop{
			ProfileID:     supplierID,
			StopType:      models.StopTypePickup,
			SequenceOrder: sequence,
		})
		sequence++
	}
	for _, vendorID := range sortedIDs(vendors) {
		stops = append(stops, PlannedStop{
			ProfileID:     vendorID,
			StopType:      models.StopTypeDelivery,
			SequenceOrder: sequence,
		})
		sequence++
	}
	return stops
}

func sortedIDs(set map[uuid.UUID]bool) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}

// ValidStopTransition reports whether a stop may move from one status to
// another. Stops run pending → in_progress → completed, or fail from
// pending/in_progress. Completed and failed are terminal.
func ValidStopTransition(from, to string) bool {
	switch from {
	case models.StopStatusPending:
		return to == models.StopStatusInProgress || to == models.StopStatusCompleted || to == models.StopStatusFailed
	case models.StopStatusInProgress:
		return to == models.StopStatusCompleted || to == models.StopStatusFailed
	default:
		return false
	}
}

// RouteStatusAfter derives the route status from its stops: completed only
// when every stop is completed, in_progress once any stop has moved, and
// assigned otherwise.
func RouteStatusAfter(stops []models.RouteStop) string {
	if len(stops) == 0 {
		return models.RouteStatusAssigned
	}
	allCompleted := true
	anyTouched := false
	for _, stop := range stops {
		if stop.Status != models.StopStatusCompleted {
			allCompleted = false
		}
		if stop.Status != models.StopStatusPending {
			anyTouched = true
		}
	}
	if allCompleted {
		return models.RouteStatusCompleted
	}
	if anyTouched {
		return models.RouteStatusInProgress
	}
	return models.RouteStatusAssigned
}

// Progress tallies stop states and percent complete for a route.
func Progress(route models.DeliveryRoute, stops []models.RouteStop) models.RouteProgress {
	progress := models.RouteProgress{
		RouteID:    route.ID,
		Status:     route.Status,
		TotalStops: len(stops),
	}
	for _, stop := range stops {
		switch stop.Status {
		case models.StopStatusPending:
			progress.Pending++
		case models.StopStatusInProgress:
			progress.InProgress++
		case models.StopStatusCompleted:
			progress.Completed++
		case models.StopStatusFailed:
			progress.Failed++
		}
	}
	if progress.TotalStops > 0 {
		progress.PercentComplete = 100 * float64(progress.Completed) / float64(progress.TotalStops)
	}
	return progress
}
