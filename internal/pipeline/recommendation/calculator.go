package recommendation

import (
	"github.com/shopspring/decimal"
	"github.com/vacayzen/product-recommendation/internal/domain"
)

// Calculate prices every level of the utilization curve.
//
//	revenue    = days at or above level × rental rate
//	cost       = acquisition cost (same for every level)
//	profitable = revenue >= cost
func Calculate(points []domain.UtilizationPoint, rentalRate, acquireCost decimal.Decimal) []domain.RecommendationRow {
	rows := make([]domain.RecommendationRow, 0, len(points))
	for _, p := range points {
		revenue := rentalRate.Mul(decimal.NewFromInt(int64(p.DaysAtOrAbove)))
		rows = append(rows, domain.RecommendationRow{
			Level:         p.Level,
			DaysAtOrAbove: p.DaysAtOrAbove,
			Revenue:       revenue,
			Cost:          acquireCost,
			Profitable:    revenue.GreaterThanOrEqual(acquireCost),
		})
	}

	return rows
}

// Summarize derives the headline metrics from the priced rows.
func Summarize(rows []domain.RecommendationRow, currentInventory int) domain.Summary {
	summary := domain.Summary{
		CurrentInventory: currentInventory,
		TotalRevenue:     decimal.Zero,
	}

	var mostRented, recommended *int
	for _, row := range rows {
		summary.TotalRevenue = summary.TotalRevenue.Add(row.Revenue)
		if mostRented == nil || row.Level > *mostRented {
			mostRented = intPtr(row.Level)
		}
		if row.Profitable && (recommended == nil || row.Level > *recommended) {
			recommended = intPtr(row.Level)
		}
	}

	summary.MostRented = mostRented
	summary.Recommended = recommended
	if recommended != nil {
		summary.RecommendedDelta = intPtr(*recommended - currentInventory)
	}

	return summary
}

// ResolveAcquireCost picks the acquisition cost for an asset: the override when
// given, otherwise the first cost row for the description, otherwise zero.
func ResolveAcquireCost(costs []domain.CostRecord, description string, override *decimal.Decimal) (decimal.Decimal, domain.CostSource) {
	if override != nil {
		return *override, domain.CostSourceOverride
	}
	for _, c := range costs {
		if c.Description == description {
			return c.AcquireCost(), domain.CostSourceCostTable
		}
	}

	return decimal.Zero, domain.CostSourceDefault
}

// CurrentInventory sums the assigned quantity of every inventory row for the
// description. The boolean is false when no row matched.
func CurrentInventory(inventory []domain.InventoryRecord, description string) (int, bool) {
	total := 0
	found := false
	for _, inv := range inventory {
		if inv.Description != description {
			continue
		}
		total += inv.CurrentAssignedQuantity
		found = true
	}

	return total, found
}
