package recommendation

import "github.com/vacayzen/product-recommendation/internal/domain"

// AggregateUtilization turns a demand curve into the utilization curve: for
// every level from 1 to the maximum quantity, the number of days whose demand
// was at least that level. The result is ordered by level and is empty when
// no day had positive demand.
func AggregateUtilization(points []domain.DemandPoint) []domain.UtilizationPoint {
	maxQty := 0
	for _, p := range points {
		if p.Quantity > maxQty {
			maxQty = p.Quantity
		}
	}

	result := make([]domain.UtilizationPoint, 0, maxQty)
	if maxQty < 1 {
		return result
	}

	// histogram of exact quantities, then suffix sums give "at or above"
	counts := make([]int, maxQty+1)
	for _, p := range points {
		if p.Quantity > 0 {
			counts[p.Quantity]++
		}
	}

	atOrAbove := make([]int, maxQty+2)
	for level := maxQty; level >= 1; level-- {
		atOrAbove[level] = atOrAbove[level+1] + counts[level]
	}

	for level := 1; level <= maxQty; level++ {
		result = append(result, domain.UtilizationPoint{
			Level:         level,
			DaysAtOrAbove: atOrAbove[level],
		})
	}

	return result
}

// MaxLevel returns the highest level of the utilization domain, or
// ErrEmptyDomain when no day had positive demand.
func MaxLevel(points []domain.DemandPoint) (int, error) {
	maxQty := 0
	for _, p := range points {
		if p.Quantity > maxQty {
			maxQty = p.Quantity
		}
	}
	if maxQty < 1 {
		return 0, domain.ErrEmptyDomain
	}

	return maxQty, nil
}
