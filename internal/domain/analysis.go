package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DemandPoint is the number of units reserved on one calendar day
type DemandPoint struct {
	Date     time.Time `json:"date"`
	Quantity int       `json:"quantity"`
}

// UtilizationPoint is the number of days on which demand reached at least Level
type UtilizationPoint struct {
	Level         int `json:"level"`
	DaysAtOrAbove int `json:"days_at_or_above"`
}

// RecommendationRow extends a utilization point with unit economics
type RecommendationRow struct {
	Level         int             `json:"level"`
	DaysAtOrAbove int             `json:"days_at_or_above"`
	Revenue       decimal.Decimal `json:"revenue"`
	Cost          decimal.Decimal `json:"cost"`
	Profitable    bool            `json:"profitable"`
}

// Summary holds the headline metrics of one analysis. Nil pointers mean the
// metric is undefined, which is different from zero.
type Summary struct {
	MostRented       *int            `json:"most_rented"`
	CurrentInventory int             `json:"current_inventory"`
	Recommended      *int            `json:"recommended"`
	RecommendedDelta *int            `json:"recommended_delta"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
}

// MostRentedLevel returns the highest level of the utilization curve.
func (s Summary) MostRentedLevel() (int, error) {
	if s.MostRented == nil {
		return 0, ErrEmptyDomain
	}
	return *s.MostRented, nil
}

// RecommendedLevel returns the break-even stocking level.
func (s Summary) RecommendedLevel() (int, error) {
	if s.MostRented == nil {
		return 0, ErrEmptyDomain
	}
	if s.Recommended == nil {
		return 0, ErrNoProfitableLevel
	}
	return *s.Recommended, nil
}

// AnalysisRequest carries the user supplied scalars for one computation
type AnalysisRequest struct {
	Category    string           `json:"category"`
	Asset       string           `json:"asset"`
	Start       time.Time        `json:"start"`
	End         time.Time        `json:"end"`
	RentalRate  decimal.Decimal  `json:"rental_rate"`
	AcquireCost *decimal.Decimal `json:"acquire_cost,omitempty"` // nil means use the cost table
}

// Analysis is the full result of one computation pass
type Analysis struct {
	Category     string              `json:"category"`
	Asset        string              `json:"asset"`
	Start        time.Time           `json:"start"`
	End          time.Time           `json:"end"`
	RentalRate   decimal.Decimal     `json:"rental_rate"`
	AcquireCost  decimal.Decimal     `json:"acquire_cost"`
	CostSource   CostSource          `json:"cost_source"`
	Reservations int                 `json:"reservations"` // rows left after filtering
	Demand       []DemandPoint       `json:"demand"`
	Rows         []RecommendationRow `json:"rows"`
	Summary      Summary             `json:"summary"`
	Conditions   []Condition         `json:"conditions"`
}

// HasCondition reports whether the analysis carries the given condition code.
func (a *Analysis) HasCondition(code ConditionCode) bool {
	for _, c := range a.Conditions {
		if c.Code == code {
			return true
		}
	}
	return false
}
