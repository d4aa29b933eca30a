package recommendation

import "github.com/vacayzen/product-recommendation/internal/domain"

// filterReservations returns the rows for one product/description pair that
// are not in the cancelled stage and have both reservation dates. The input
// is not modified.
func filterReservations(records []domain.ReservationRecord, product, description, cancelled string) []domain.ReservationRecord {
	out := make([]domain.ReservationRecord, 0)
	for _, r := range records {
		if r.Product != product || r.Description != description {
			continue
		}
		if r.RentalStage == cancelled {
			continue
		}
		if !r.HasDates() {
			continue
		}
		out = append(out, r)
	}

	return out
}
