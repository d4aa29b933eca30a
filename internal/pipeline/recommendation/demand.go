package recommendation

import (
	"time"

	"github.com/vacayzen/product-recommendation/internal/domain"
)

// BuildDemandCurve returns one DemandPoint per calendar day of [start, end].
// The quantity of a day is the sum of the quantities of every record whose
// [StartDate, EndDate] interval contains it, both ends inclusive.
//
// Records are swept into a difference array clipped to the window, which
// yields the same sums as checking every record against every day.
func BuildDemandCurve(records []domain.ReservationRecord, start, end time.Time) ([]domain.DemandPoint, error) {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return nil, domain.ErrInvalidDateRange
	}

	days := daysBetween(start, end) + 1
	delta := make([]int, days+1)

	for _, r := range records {
		if !r.HasDates() {
			continue
		}
		from, to := Day(*r.StartDate), Day(*r.EndDate)
		if to.Before(start) || from.After(end) || to.Before(from) {
			continue
		}

		lo := 0
		if from.After(start) {
			lo = daysBetween(start, from)
		}
		hi := days - 1
		if to.Before(end) {
			hi = daysBetween(start, to)
		}

		delta[lo] += r.Quantity
		delta[hi+1] -= r.Quantity
	}

	points := make([]domain.DemandPoint, days)
	running := 0
	for i := 0; i < days; i++ {
		running += delta[i]
		points[i] = domain.DemandPoint{
			Date:     start.AddDate(0, 0, i),
			Quantity: running,
		}
	}

	return points, nil
}
