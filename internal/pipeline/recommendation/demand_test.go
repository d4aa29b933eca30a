package recommendation

import (
	"errors"
	"testing"

	"github.com/vacayzen/product-recommendation/internal/domain"
)

// naiveDemand is the O(days × records) reference the sweep must match.
func naiveDemand(records []domain.ReservationRecord, start, end string) []int {
	var out []int
	for d := day(start); !d.After(day(end)); d = d.AddDate(0, 0, 1) {
		sum := 0
		for _, r := range records {
			if !r.StartDate.After(d) && !r.EndDate.Before(d) {
				sum += r.Quantity
			}
		}
		out = append(out, sum)
	}
	return out
}

func TestBuildDemandCurve_SameDay(t *testing.T) {
	records := []domain.ReservationRecord{
		reservation("Bikes", "Cruiser", "Active", "2024-06-01", "2024-06-01", 2),
		reservation("Bikes", "Cruiser", "Active", "2024-06-01", "2024-06-01", 3),
		reservation("Bikes", "Cruiser", "Active", "2024-06-01", "2024-06-01", 1),
	}

	points, err := BuildDemandCurve(records, day("2024-06-01"), day("2024-06-01"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("Expected 1 point, got %d", len(points))
	}
	if points[0].Quantity != 6 {
		t.Errorf("Expected quantity 6 on 2024-06-01, got %d", points[0].Quantity)
	}
}

func TestBuildDemandCurve_MatchesNaiveSum(t *testing.T) {
	records := []domain.ReservationRecord{
		reservation("Bikes", "Cruiser", "Active", "2024-05-28", "2024-06-02", 1), // starts before window
		reservation("Bikes", "Cruiser", "Active", "2024-06-03", "2024-06-12", 2), // ends after window
		reservation("Bikes", "Cruiser", "Active", "2024-06-04", "2024-06-04", 4),
		reservation("Bikes", "Cruiser", "Active", "2024-06-01", "2024-06-10", 1), // covers whole window
		reservation("Bikes", "Cruiser", "Active", "2024-05-01", "2024-05-05", 9), // outside
		reservation("Bikes", "Cruiser", "Active", "2024-06-11", "2024-06-20", 9), // outside
		reservation("Bikes", "Cruiser", "Active", "2024-06-10", "2024-06-10", 3), // last day
	}

	points, err := BuildDemandCurve(records, day("2024-06-01"), day("2024-06-10"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := naiveDemand(records, "2024-06-01", "2024-06-10")
	if len(points) != len(want) {
		t.Fatalf("Expected %d points, got %d", len(want), len(points))
	}
	for i, p := range points {
		if p.Quantity != want[i] {
			t.Errorf("Day %s: expected %d, got %d", p.Date.Format("2006-01-02"), want[i], p.Quantity)
		}
		if !p.Date.Equal(day("2024-06-01").AddDate(0, 0, i)) {
			t.Errorf("Point %d out of date order: %s", i, p.Date)
		}
	}
}

func TestBuildDemandCurve_CenturiesLongWindow(t *testing.T) {
	records := []domain.ReservationRecord{
		reservation("Bikes", "Cruiser", "Active", "1750-03-01", "1750-03-02", 4),
		reservation("Bikes", "Cruiser", "Active", "2024-06-01", "2024-06-01", 3),
	}

	points, err := BuildDemandCurve(records, day("1700-01-01"), day("2024-12-31"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := naiveDemand(records, "1700-01-01", "2024-12-31")
	if len(points) != len(want) {
		t.Fatalf("Expected %d points, got %d", len(want), len(points))
	}
	for i, p := range points {
		if p.Quantity != want[i] {
			t.Fatalf("Day %s: expected %d, got %d", p.Date.Format("2006-01-02"), want[i], p.Quantity)
		}
	}
	if last := points[len(points)-1].Date; !last.Equal(day("2024-12-31")) {
		t.Errorf("Expected last point on 2024-12-31, got %s", last.Format("2006-01-02"))
	}
}

func TestDaysBetween(t *testing.T) {
	testCases := []struct {
		from, to string
		expected int
	}{
		{"2024-06-01", "2024-06-01", 0},
		{"2024-02-28", "2024-03-01", 2},
		{"1969-12-31", "1970-01-01", 1},
		{"1700-01-01", "2024-12-31", 118703},
	}

	for _, tc := range testCases {
		if got := daysBetween(day(tc.from), day(tc.to)); got != tc.expected {
			t.Errorf("daysBetween(%s, %s): expected %d, got %d", tc.from, tc.to, tc.expected, got)
		}
	}
}

func TestBuildDemandCurve_EmptyRecords(t *testing.T) {
	points, err := BuildDemandCurve(nil, day("2024-01-01"), day("2024-12-31"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(points) != 366 {
		t.Fatalf("Expected 366 points for leap year 2024, got %d", len(points))
	}
	for _, p := range points {
		if p.Quantity != 0 {
			t.Fatalf("Expected zero demand, got %d on %s", p.Quantity, p.Date)
		}
	}
}

func TestBuildDemandCurve_InvalidRange(t *testing.T) {
	_, err := BuildDemandCurve(nil, day("2024-06-02"), day("2024-06-01"))
	if !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Errorf("Expected ErrInvalidDateRange, got %v", err)
	}
}

func TestBuildDemandCurve_IgnoresIncompleteRecords(t *testing.T) {
	records := []domain.ReservationRecord{
		reservation("Bikes", "Cruiser", "Active", "", "2024-06-01", 5),
		reservation("Bikes", "Cruiser", "Active", "2024-06-01", "2024-06-01", 1),
	}

	points, err := BuildDemandCurve(records, day("2024-06-01"), day("2024-06-01"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if points[0].Quantity != 1 {
		t.Errorf("Expected quantity 1, got %d", points[0].Quantity)
	}
}
