package routing

import (
	"fmt"

	"vendor-collective/models"
)

// ProjectOrderStatus derives the vendor-facing tracking status from the
// vendor's delivery stop and the full stop list of its route. ownStop is
// nil when no delivery stop exists for the vendor on today's route. Pure;
// re-derivable from persisted state at any time.
func ProjectOrderStatus(ownStop *models.RouteStop, routeStops []models.RouteStop) models.OrderStatusView {
	if ownStop == nil {
		return models.OrderStatusView{
			Status:  "Order Placed",
			Details: "Awaiting finalization and routing after the order window closes.",
		}
	}

	if ownStop.Status == models.StopStatusCompleted {
		return models.OrderStatusView{
			Status:  "Delivered",
			Details: "Your order has been delivered.",
		}
	}

	// Earliest-sequence stop on the whole route that is still pending.
	var earliest *models.RouteStop
	for i := range routeStops {
		stop := &routeStops[i]
		if stop.Status != models.StopStatusPending {
			continue
		}
		if earliest == nil || stop.SequenceOrder < earliest.SequenceOrder {
			earliest = stop
		}
	}

	if earliest == nil {
		// Nothing pending but our stop is not completed: the agent is
		// actively working it or it failed.
		return models.OrderStatusView{
			Status:  "Out for Delivery",
			Details: "The agent should be arriving shortly!",
		}
	}

	if earliest.StopType == models.StopTypePickup {
		return models.OrderStatusView{
			Status:  "Collecting Goods",
			Details: fmt.Sprintf("The agent is collecting goods from suppliers. You are stop #%d.", ownStop.SequenceOrder),
		}
	}

	if earliest.ID == ownStop.ID {
		return models.OrderStatusView{
			Status:  "Out for Delivery",
			Details: "The agent should be arriving shortly!",
		}
	}

	return models.OrderStatusView{
		Status:  "In Progress",
		Details: fmt.Sprintf("Agent is en route to other destinations first. You are stop #%d.", ownStop.SequenceOrder),
	}
}
