package recommendation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/vacayzen/product-recommendation/internal/domain"
)

func utilizationOf(days ...int) []domain.UtilizationPoint {
	points := make([]domain.UtilizationPoint, len(days))
	for i, d := range days {
		points[i] = domain.UtilizationPoint{Level: i + 1, DaysAtOrAbove: d}
	}
	return points
}

func TestCalculate_Profitability(t *testing.T) {
	rate := decimal.NewFromInt(10)
	cost := decimal.NewFromInt(25)

	testCases := []struct {
		name       string
		days       int
		revenue    int64
		profitable bool
	}{
		{"one day", 1, 10, false},
		{"two days", 2, 20, false},
		{"three days", 3, 30, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rows := Calculate([]domain.UtilizationPoint{{Level: 3, DaysAtOrAbove: tc.days}}, rate, cost)
			if len(rows) != 1 {
				t.Fatalf("Expected 1 row, got %d", len(rows))
			}
			row := rows[0]
			if !row.Revenue.Equal(decimal.NewFromInt(tc.revenue)) {
				t.Errorf("Expected revenue %d, got %s", tc.revenue, row.Revenue)
			}
			if !row.Cost.Equal(cost) {
				t.Errorf("Expected cost %s, got %s", cost, row.Cost)
			}
			if row.Profitable != tc.profitable {
				t.Errorf("Expected profitable=%v, got %v", tc.profitable, row.Profitable)
			}
		})
	}
}

func TestCalculate_RevenueMonotonic(t *testing.T) {
	rows := Calculate(utilizationOf(9, 7, 7, 4, 1), decimal.RequireFromString("12.50"), decimal.NewFromInt(40))
	for i := 1; i < len(rows); i++ {
		if rows[i].Revenue.GreaterThan(rows[i-1].Revenue) {
			t.Errorf("Revenue rose from %s at level %d to %s at level %d",
				rows[i-1].Revenue, rows[i-1].Level, rows[i].Revenue, rows[i].Level)
		}
	}
}

func TestSummarize(t *testing.T) {
	rows := Calculate(utilizationOf(10, 6, 3, 1), decimal.NewFromInt(10), decimal.NewFromInt(25))
	summary := Summarize(rows, 5)

	mostRented, err := summary.MostRentedLevel()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if mostRented != 4 {
		t.Errorf("Expected most rented 4, got %d", mostRented)
	}

	recommended, err := summary.RecommendedLevel()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if recommended != 3 {
		t.Errorf("Expected recommended 3, got %d", recommended)
	}
	if recommended > mostRented {
		t.Errorf("Recommended %d exceeds most rented %d", recommended, mostRented)
	}

	if summary.RecommendedDelta == nil || *summary.RecommendedDelta != -2 {
		t.Errorf("Expected delta -2, got %v", summary.RecommendedDelta)
	}
	if summary.CurrentInventory != 5 {
		t.Errorf("Expected current inventory 5, got %d", summary.CurrentInventory)
	}
	if !summary.TotalRevenue.Equal(decimal.NewFromInt(200)) {
		t.Errorf("Expected total revenue 200, got %s", summary.TotalRevenue)
	}
}

func TestSummarize_EmptyDomain(t *testing.T) {
	summary := Summarize(nil, 3)

	if _, err := summary.MostRentedLevel(); !errors.Is(err, domain.ErrEmptyDomain) {
		t.Errorf("Expected ErrEmptyDomain for most rented, got %v", err)
	}
	if _, err := summary.RecommendedLevel(); !errors.Is(err, domain.ErrEmptyDomain) {
		t.Errorf("Expected ErrEmptyDomain for recommended, got %v", err)
	}
	if summary.RecommendedDelta != nil {
		t.Errorf("Expected nil delta, got %d", *summary.RecommendedDelta)
	}
	if !summary.TotalRevenue.IsZero() {
		t.Errorf("Expected zero revenue, got %s", summary.TotalRevenue)
	}
}

func TestSummarize_NoProfitableLevel(t *testing.T) {
	rows := Calculate(utilizationOf(2, 1), decimal.NewFromInt(1), decimal.NewFromInt(100))
	summary := Summarize(rows, 0)

	if _, err := summary.RecommendedLevel(); !errors.Is(err, domain.ErrNoProfitableLevel) {
		t.Errorf("Expected ErrNoProfitableLevel, got %v", err)
	}
	if level, err := summary.MostRentedLevel(); err != nil || level != 2 {
		t.Errorf("Expected most rented 2, got %d (%v)", level, err)
	}
}

func TestResolveAcquireCost(t *testing.T) {
	costs := []domain.CostRecord{
		{Description: "Cruiser", UnitCost: decimal.NewNullDecimal(decimal.NewFromInt(180))},
		{Description: "Cruiser", UnitCost: decimal.NewNullDecimal(decimal.NewFromInt(999))},
		{Description: "Kayak", LastAnalysisUnitCost: decimal.NewNullDecimal(decimal.NewFromInt(420))},
		{Description: "Umbrella"},
	}
	override := decimal.NewFromInt(55)

	testCases := []struct {
		name        string
		description string
		override    *decimal.Decimal
		expected    int64
		source      domain.CostSource
	}{
		{"unit cost of first match", "Cruiser", nil, 180, domain.CostSourceCostTable},
		{"last analysis fallback", "Kayak", nil, 420, domain.CostSourceCostTable},
		{"both missing", "Umbrella", nil, 0, domain.CostSourceCostTable},
		{"no record", "Paddle Board", nil, 0, domain.CostSourceDefault},
		{"override wins", "Cruiser", &override, 55, domain.CostSourceOverride},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cost, source := ResolveAcquireCost(costs, tc.description, tc.override)
			if !cost.Equal(decimal.NewFromInt(tc.expected)) {
				t.Errorf("Expected cost %d, got %s", tc.expected, cost)
			}
			if source != tc.source {
				t.Errorf("Expected source %s, got %s", tc.source, source)
			}
		})
	}
}

func TestCurrentInventory(t *testing.T) {
	inventory := []domain.InventoryRecord{
		{Description: "Cruiser", CurrentAssignedQuantity: 4},
		{Description: "Kayak", CurrentAssignedQuantity: 2},
		{Description: "Cruiser", CurrentAssignedQuantity: 3},
	}

	total, found := CurrentInventory(inventory, "Cruiser")
	if !found || total != 7 {
		t.Errorf("Expected 7 (found), got %d (found=%v)", total, found)
	}

	total, found = CurrentInventory(inventory, "Umbrella")
	if found || total != 0 {
		t.Errorf("Expected 0 (not found), got %d (found=%v)", total, found)
	}
}

func TestCalculate_NoCostRecordIsAlwaysProfitable(t *testing.T) {
	cost, source := ResolveAcquireCost(nil, "Cruiser", nil)
	if source != domain.CostSourceDefault {
		t.Fatalf("Expected default cost source, got %s", source)
	}

	rows := Calculate(utilizationOf(5, 3, 1), decimal.NewFromInt(7), cost)
	for _, row := range rows {
		if !row.Profitable {
			t.Errorf("Level %d: expected profitable at zero cost", row.Level)
		}
	}
}
