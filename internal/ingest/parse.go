package ingest

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vacayzen/product-recommendation/internal/domain"
)

// Required columns per input table.
var (
	ReservationColumns = []string{
		"Product",
		"Description",
		"RentalStage",
		"RentalAgreementReservationStartDate",
		"RentalAgreementReservationEndDate",
		"Quantity",
	}
	CostColumns      = []string{"Description", "Unit_Cost", "Last_Analysis_Unit_Cost"}
	InventoryColumns = []string{"Description", "CurrentAssignedQuantity"}
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006/01/02",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 3:04 PM",
	"1/2/2006 3:04:05 PM",
	"1/2/06",
	"01-02-06",
	"Jan 2, 2006",
}

// parseDate returns the calendar day of value at UTC midnight, or nil when
// no layout matches.
func parseDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &d
	}
	return nil
}

// parseDecimal accepts thousands separators and a leading currency sign.
func parseDecimal(value string) decimal.NullDecimal {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "$")
	value = strings.ReplaceAll(value, ",", "")
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// parseQuantity truncates fractional counts like "2.0"; missing values are 0.
func parseQuantity(value string) int {
	d := parseDecimal(value)
	if !d.Valid {
		return 0
	}
	return int(d.Decimal.IntPart())
}

// ParseReservations converts a rentals table to reservation records.
func ParseReservations(t *Table) ([]domain.ReservationRecord, error) {
	if err := t.RequireColumns(ReservationColumns...); err != nil {
		return nil, err
	}

	records := make([]domain.ReservationRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, domain.ReservationRecord{
			Product:     t.Value(row, "Product"),
			Description: t.Value(row, "Description"),
			RentalStage: t.Value(row, "RentalStage"),
			StartDate:   parseDate(t.Value(row, "RentalAgreementReservationStartDate")),
			EndDate:     parseDate(t.Value(row, "RentalAgreementReservationEndDate")),
			Quantity:    parseQuantity(t.Value(row, "Quantity")),
		})
	}
	return records, nil
}

// ParseCosts converts a cost table to cost records.
func ParseCosts(t *Table) ([]domain.CostRecord, error) {
	if err := t.RequireColumns(CostColumns...); err != nil {
		return nil, err
	}

	records := make([]domain.CostRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, domain.CostRecord{
			Description:          t.Value(row, "Description"),
			UnitCost:             parseDecimal(t.Value(row, "Unit_Cost")),
			LastAnalysisUnitCost: parseDecimal(t.Value(row, "Last_Analysis_Unit_Cost")),
		})
	}
	return records, nil
}

// ParseInventory converts an inventory table to inventory records.
func ParseInventory(t *Table) ([]domain.InventoryRecord, error) {
	if err := t.RequireColumns(InventoryColumns...); err != nil {
		return nil, err
	}

	records := make([]domain.InventoryRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, domain.InventoryRecord{
			Description:             t.Value(row, "Description"),
			CurrentAssignedQuantity: parseQuantity(t.Value(row, "CurrentAssignedQuantity")),
		})
	}
	return records, nil
}
