package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyDomain means no day in the range had positive demand, so the
	// most rented and recommended levels are undefined.
	ErrEmptyDomain = errors.New("utilization domain is empty")

	// ErrNoProfitableLevel means no level's revenue covers the acquisition cost.
	ErrNoProfitableLevel = errors.New("no profitable stocking level")

	ErrInvalidDateRange = errors.New("end date is before start date")
	ErrNegativeRate     = errors.New("rental rate must not be negative")
	ErrUnknownAsset     = errors.New("asset is required")
	ErrUnknownCategory  = errors.New("category is required")
)

// MissingColumnError is returned when an input table lacks required columns.
type MissingColumnError struct {
	Table   string
	Columns []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s table is missing required column(s): %s", e.Table, strings.Join(e.Columns, ", "))
}
