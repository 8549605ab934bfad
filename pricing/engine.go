// Package pricing implements the pure finalization math: pooled demand
// aggregation, deal resolution, line pricing, and wallet debit planning.
// Everything here is side-effect free; the order repository owns
// persistence.
package pricing

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"vendor-collective/models"
)

// AggregateDemand sums requested quantity per product across all pending
// lines. Demand is pooled over every vendor, not per vendor.
func AggregateDemand(lines []models.PendingLine) map[uuid.UUID]int {
	demand := make(map[uuid.UUID]int, len(lines))
	for _, line := range lines {
		demand[line.ProductID] += line.Quantity
	}
	return demand
}

// ResolveDiscount picks the best unlocked discount for a product given its
// pooled demand. Among active deals with threshold <= demand, the highest
// discount wins; ties go to the lowest threshold, then deal id, so the
// result is deterministic. No qualifying deal means discount 0.
func ResolveDiscount(demand int, deals []models.Deal) float64 {
	var best *models.Deal
	for i := range deals {
		deal := &deals[i]
		if !deal.IsActive || deal.Threshold > demand {
			continue
		}
		if best == nil ||
			deal.Discount > best.Discount ||
			(deal.Discount == best.Discount && deal.Threshold < best.Threshold) ||
			(deal.Discount == best.Discount && deal.Threshold == best.Threshold && deal.ID.String() < best.ID.String()) {
			best = deal
		}
	}
	if best == nil {
		return 0
	}
	return best.Discount
}

// PriceLines applies the resolved discount of each line's product to its
// base price. The unit price is rounded half-up to whole paise. Every line
// of the same product receives the identical final price because the
// discount depends only on pooled demand.
func PriceLines(lines []models.PendingLine, demand map[uuid.UUID]int) []models.PricedLine {
	priced := make([]models.PricedLine, 0, len(lines))
	for _, line := range lines {
		discount := ResolveDiscount(demand[line.ProductID], line.Deals)
		final := int64(math.Round(float64(line.BasePrice) * (1 - discount)))
		priced = append(priced, models.PricedLine{
			PendingLine: line,
			Discount:    discount,
			FinalPrice:  final,
		})
	}
	return priced
}

// BuyerTotals sums final_price * quantity per vendor over the newly priced
// lines. The result is ordered by vendor id string for determinism.
func BuyerTotals(lines []models.PricedLine) []models.BuyerTotal {
	byVendor := make(map[uuid.UUID]int64)
	for _, line := range lines {
		byVendor[line.VendorID] += line.FinalPrice * int64(line.Quantity)
	}

	totals := make([]models.BuyerTotal, 0, len(byVendor))
	for vendorID, total := range byVendor {
		totals = append(totals, models.BuyerTotal{VendorID: vendorID, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].VendorID.String() < totals[j].VendorID.String()
	})
	return totals
}

// PlanDebits decides which vendors can be debited. balances maps vendor id
// to wallet balance in paise; a vendor absent from the map has no profile.
// Insufficient balance and missing profiles become recorded failures, never
// aborts: those vendors' lines stay finalized and routed.
func PlanDebits(totals []models.BuyerTotal, balances map[uuid.UUID]int64) (debits []models.BuyerTotal, failures []models.DebitFailure) {
	for _, t := range totals {
		balance, ok := balances[t.VendorID]
		if !ok {
			failures = append(failures, models.DebitFailure{
				VendorID:  t.VendorID,
				AmountDue: t.Total,
				Reason:    "profile not found",
			})
			continue
		}
		if balance < t.Total {
			failures = append(failures, models.DebitFailure{
				VendorID:  t.VendorID,
				AmountDue: t.Total,
				Available: balance,
				Reason:    "insufficient balance",
			})
			continue
		}
		debits = append(debits, t)
	}
	return debits, failures
}
