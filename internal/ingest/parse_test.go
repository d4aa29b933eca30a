package ingest

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vacayzen/product-recommendation/internal/domain"
)

func TestParseDate(t *testing.T) {
	expected := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{
		"2024-06-01",
		"2024-06-01 14:30:00",
		"2024-06-01T14:30:00",
		"2024-06-01T23:30:00-05:00",
		"6/1/2024",
		"06/01/2024 9:15 AM",
		"6/1/24",
	} {
		got := parseDate(in)
		if got == nil {
			t.Errorf("parseDate(%q): expected %s, got nil", in, expected)
			continue
		}
		if !got.Equal(expected) {
			t.Errorf("parseDate(%q): expected %s, got %s", in, expected, got)
		}
	}

	for _, in := range []string{"", "not a date", "2024-13-40"} {
		if got := parseDate(in); got != nil {
			t.Errorf("parseDate(%q): expected nil, got %s", in, got)
		}
	}
}

func TestParseDecimal(t *testing.T) {
	testCases := []struct {
		in    string
		valid bool
		value string
	}{
		{"12.50", true, "12.5"},
		{"$1,299.00", true, "1299"},
		{" 7 ", true, "7"},
		{"", false, ""},
		{"n/a", false, ""},
	}

	for _, tc := range testCases {
		got := parseDecimal(tc.in)
		if got.Valid != tc.valid {
			t.Errorf("parseDecimal(%q): expected valid=%v, got %v", tc.in, tc.valid, got.Valid)
			continue
		}
		if tc.valid && !got.Decimal.Equal(decimal.RequireFromString(tc.value)) {
			t.Errorf("parseDecimal(%q): expected %s, got %s", tc.in, tc.value, got.Decimal)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	testCases := map[string]int{"3": 3, "2.0": 2, "": 0, "x": 0, "1,200": 1200}
	for in, expected := range testCases {
		if got := parseQuantity(in); got != expected {
			t.Errorf("parseQuantity(%q): expected %d, got %d", in, expected, got)
		}
	}
}

func TestParseReservations(t *testing.T) {
	input := "Product,Description,RentalStage,RentalAgreementReservationStartDate,RentalAgreementReservationEndDate,Quantity,Unit_Cost\n" +
		"Bikes,Cruiser,Active,2024-06-01,2024-06-03,2,99\n" +
		"Bikes,Cruiser,Cancel,6/2/2024,,1,\n"

	table, err := ReadCSV(TableRentals, strings.NewReader(input), "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	records, err := ParseReservations(table)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records (no rows dropped), got %d", len(records))
	}
	if records[0].Quantity != 2 || !records[0].HasDates() {
		t.Errorf("Unexpected first record: %+v", records[0])
	}
	if records[1].EndDate != nil {
		t.Errorf("Expected missing end date, got %s", records[1].EndDate)
	}
	if records[1].RentalStage != "Cancel" {
		t.Errorf("Expected stage Cancel, got %s", records[1].RentalStage)
	}
}

func TestParseReservations_MissingColumns(t *testing.T) {
	table := NewTable(TableRentals, []string{"Product", "Description", "Quantity"}, nil)

	_, err := ParseReservations(table)
	var missing *domain.MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingColumnError, got %v", err)
	}
	if len(missing.Columns) != 3 {
		t.Errorf("Expected 3 missing columns, got %v", missing.Columns)
	}
}

func TestParseCosts(t *testing.T) {
	input := "Description,Unit_Cost,Last_Analysis_Unit_Cost\nCruiser,180,150\nKayak,,420\nUmbrella,,\n"
	table, err := ReadCSV(TableCosts, strings.NewReader(input), "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	records, err := ParseCosts(table)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := []int64{180, 420, 0}
	for i, r := range records {
		if !r.AcquireCost().Equal(decimal.NewFromInt(expected[i])) {
			t.Errorf("%s: expected %d, got %s", r.Description, expected[i], r.AcquireCost())
		}
	}
}

func TestParseInventory(t *testing.T) {
	table := NewTable(TableInventory, []string{"Description", "Current Assigned Quantity"}, [][]string{
		{"Cruiser", "4"},
		{"Kayak", ""},
	})

	records, err := ParseInventory(table)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if records[0].CurrentAssignedQuantity != 4 || records[1].CurrentAssignedQuantity != 0 {
		t.Errorf("Unexpected records: %+v", records)
	}
}
