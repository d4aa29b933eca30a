package recommendation

import (
	"testing"

	"github.com/vacayzen/product-recommendation/internal/domain"
)

func TestFilterReservations(t *testing.T) {
	records := []domain.ReservationRecord{
		reservation("Bikes", "Beach Cruiser", "Active", "2024-06-01", "2024-06-03", 2),
		reservation("Bikes", "Beach Cruiser", "Cancel", "2024-06-01", "2024-06-03", 5),
		reservation("Bikes", "Beach Cruiser", "cancel", "2024-06-02", "2024-06-02", 1),
		reservation("Bikes", "Beach Cruiser", "Active", "", "2024-06-03", 7),
		reservation("Bikes", "Beach Cruiser", "Active", "2024-06-01", "", 7),
		reservation("Bikes", "Kids Bike", "Active", "2024-06-01", "2024-06-03", 3),
		reservation("Chairs", "Beach Cruiser", "Active", "2024-06-01", "2024-06-03", 4),
	}

	got := filterReservations(records, "Bikes", "Beach Cruiser", CancelledStage)
	if len(got) != 2 {
		t.Fatalf("Expected 2 rows, got %d: %+v", len(got), got)
	}

	// "cancel" is not "Cancel": the match is case-sensitive
	if got[0].Quantity != 2 || got[1].Quantity != 1 {
		t.Errorf("Unexpected rows kept: %+v", got)
	}

	if len(records) != 7 {
		t.Errorf("Expected input to be left untouched, got %d rows", len(records))
	}
}

func TestFilterReservations_Idempotent(t *testing.T) {
	records := []domain.ReservationRecord{
		reservation("Bikes", "Beach Cruiser", "Active", "2024-06-01", "2024-06-03", 2),
		reservation("Bikes", "Beach Cruiser", "Cancel", "2024-06-01", "2024-06-03", 5),
		reservation("Bikes", "Beach Cruiser", "Active", "", "", 1),
	}

	once := filterReservations(records, "Bikes", "Beach Cruiser", CancelledStage)
	twice := filterReservations(once, "Bikes", "Beach Cruiser", CancelledStage)
	if len(once) != len(twice) {
		t.Errorf("Expected filtering to be idempotent, got %d then %d rows", len(once), len(twice))
	}
}

func TestFilterReservations_NoMatch(t *testing.T) {
	got := filterReservations(nil, "Bikes", "Beach Cruiser", CancelledStage)
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", got)
	}
}
