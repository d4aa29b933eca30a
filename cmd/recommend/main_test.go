package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vacayzen/product-recommendation/internal/domain"
)

const (
	rentalsCSV = "Product,Description,RentalStage,RentalAgreementReservationStartDate,RentalAgreementReservationEndDate,Quantity\n" +
		"Bikes,Cruiser,Active,2024-06-01,2024-06-03,2\n" +
		"Bikes,Cruiser,Active,2024-06-02,2024-06-02,1\n" +
		"Bikes,Cruiser,Cancel,2024-06-01,2024-06-30,5\n"
	costsCSV = "Description,Unit_Cost,Last_Analysis_Unit_Cost\nCruiser,,25\n"
)

func writeFixture(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return path
}

func TestAnalyzeCommand(t *testing.T) {
	dir := t.TempDir()
	rentals := writeFixture(t, dir, "rentals.csv", rentalsCSV)
	costs := writeFixture(t, dir, "costs.csv", costsCSV)

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out

	err := app.Run([]string{"recommend", "analyze",
		"--rentals", rentals,
		"--costs", costs,
		"--category", "Bikes",
		"--asset", "Cruiser",
		"--start", "2024-06-01",
		"--end", "2024-06-30",
		"--rental-rate", "10",
		"--format", "csv",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := "level,days_at_or_above,revenue,cost,profitable\n" +
		"1,3,30,25,true\n" +
		"2,3,30,25,true\n" +
		"3,1,10,25,false\n"
	if out.String() != expected {
		t.Errorf("Expected:\n%s\ngot:\n%s", expected, out.String())
	}
}

func TestAnalyzeCommand_InvalidRange(t *testing.T) {
	rentals := writeFixture(t, t.TempDir(), "rentals.csv", rentalsCSV)

	app := newApp()
	app.Writer = &bytes.Buffer{}
	err := app.Run([]string{"recommend", "analyze",
		"--rentals", rentals,
		"--category", "Bikes",
		"--asset", "Cruiser",
		"--start", "2024-06-30",
		"--end", "2024-06-01",
	})
	if !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Errorf("Expected ErrInvalidDateRange, got %v", err)
	}
}

func TestOptionsCommand(t *testing.T) {
	rentals := writeFixture(t, t.TempDir(), "rentals.csv", rentalsCSV)

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	if err := app.Run([]string{"recommend", "options", "--rentals", rentals}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Bikes\n  Cruiser\n") {
		t.Errorf("Unexpected output: %q", out.String())
	}
}

func TestFlushCacheCommand_Disabled(t *testing.T) {
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out

	if err := app.Run([]string{"recommend", "flush-cache"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "cache disabled") {
		t.Errorf("Expected disabled notice, got %q", out.String())
	}
}
