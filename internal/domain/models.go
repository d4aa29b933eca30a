// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReservationRecord represents a single rental agreement line
type ReservationRecord struct {
	Product     string     `json:"product"`
	Description string     `json:"description"`
	RentalStage string     `json:"rental_stage"`
	StartDate   *time.Time `json:"start_date"` // nil when the export had no usable date
	EndDate     *time.Time `json:"end_date"`
	Quantity    int        `json:"quantity"`
}

// HasDates reports whether both reservation dates are present.
func (r ReservationRecord) HasDates() bool {
	return r.StartDate != nil && r.EndDate != nil
}

// CostRecord holds acquisition cost reference data for a product description
type CostRecord struct {
	Description          string              `json:"description"`
	UnitCost             decimal.NullDecimal `json:"unit_cost"`
	LastAnalysisUnitCost decimal.NullDecimal `json:"last_analysis_unit_cost"`
}

// AcquireCost returns UnitCost, then LastAnalysisUnitCost, then zero.
func (c CostRecord) AcquireCost() decimal.Decimal {
	if c.UnitCost.Valid {
		return c.UnitCost.Decimal
	}
	if c.LastAnalysisUnitCost.Valid {
		return c.LastAnalysisUnitCost.Decimal
	}
	return decimal.Zero
}

// InventoryRecord represents present-day stock assigned for an asset
type InventoryRecord struct {
	Description             string `json:"description"`
	CurrentAssignedQuantity int    `json:"current_assigned_quantity"`
}

// Dataset is one load of the three input tables
type Dataset struct {
	Reservations []ReservationRecord
	Costs        []CostRecord
	Inventory    []InventoryRecord
}

// AssetOptions lists the selectable categories and the assets within each one
type AssetOptions struct {
	Categories []string            `json:"categories"`
	Assets     map[string][]string `json:"assets"`
}
