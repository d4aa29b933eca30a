package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vacayzen/product-recommendation/internal/domain"
)

// writeAnalysis renders an analysis in the requested format
func writeAnalysis(w io.Writer, analysis *domain.Analysis, format string) error {
	switch strings.ToLower(format) {
	case "", "text":
		return writeAnalysisText(w, analysis)
	case "json":
		return writeAnalysisJSON(w, analysis)
	case "csv":
		return writeAnalysisCSV(w, analysis)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeAnalysisText(w io.Writer, a *domain.Analysis) error {
	var b strings.Builder

	b.WriteString("═══════════════════════════════════════════════════════════════\n")
	fmt.Fprintf(&b, "  %s / %s\n", a.Category, a.Asset)
	fmt.Fprintf(&b, "  %s to %s\n", a.Start.Format(dateLayout), a.End.Format(dateLayout))
	b.WriteString("═══════════════════════════════════════════════════════════════\n\n")

	fmt.Fprintf(&b, "  Rental Rate:        %s\n", a.RentalRate.StringFixed(2))
	fmt.Fprintf(&b, "  Acquire Cost:       %s (%s)\n", a.AcquireCost.StringFixed(2), a.CostSource)
	fmt.Fprintf(&b, "  Reservations:       %d\n", a.Reservations)
	fmt.Fprintf(&b, "  Most Rented:        %s\n", optionalInt(a.Summary.MostRented))
	fmt.Fprintf(&b, "  Current Inventory:  %d\n", a.Summary.CurrentInventory)
	fmt.Fprintf(&b, "  Recommended:        %s\n", optionalInt(a.Summary.Recommended))
	fmt.Fprintf(&b, "  Recommended Delta:  %s\n", signedInt(a.Summary.RecommendedDelta))
	fmt.Fprintf(&b, "  Total Revenue:      %s\n", a.Summary.TotalRevenue.StringFixed(2))

	if len(a.Conditions) > 0 {
		b.WriteString("\n")
		for _, c := range a.Conditions {
			fmt.Fprintf(&b, "  ! %s\n", c.Message)
		}
	}

	if len(a.Rows) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %5s  %6s  %12s  %12s  %s\n", "Level", "Days", "Revenue", "Cost", "Profitable")
		b.WriteString("  ───────────────────────────────────────────────────────\n")
		for _, row := range a.Rows {
			marker := "no"
			if row.Profitable {
				marker = "yes"
			}
			fmt.Fprintf(&b, "  %5d  %6d  %12s  %12s  %s\n",
				row.Level, row.DaysAtOrAbove, row.Revenue.StringFixed(2), row.Cost.StringFixed(2), marker)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeAnalysisJSON(w io.Writer, a *domain.Analysis) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(a)
}

// writeAnalysisCSV writes one row per level.
func writeAnalysisCSV(w io.Writer, a *domain.Analysis) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"level", "days_at_or_above", "revenue", "cost", "profitable"}); err != nil {
		return err
	}
	for _, row := range a.Rows {
		record := []string{
			strconv.Itoa(row.Level),
			strconv.Itoa(row.DaysAtOrAbove),
			row.Revenue.String(),
			row.Cost.String(),
			strconv.FormatBool(row.Profitable),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeOptions(w io.Writer, opts domain.AssetOptions, category string) error {
	var b strings.Builder
	for _, cat := range opts.Categories {
		if category != "" && cat != category {
			continue
		}
		fmt.Fprintf(&b, "%s\n", cat)
		for _, asset := range opts.Assets[cat] {
			fmt.Fprintf(&b, "  %s\n", asset)
		}
	}
	if category != "" && b.Len() == 0 {
		return fmt.Errorf("category %q not found", category)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func optionalInt(v *int) string {
	if v == nil {
		return "n/a"
	}
	return strconv.Itoa(*v)
}

func signedInt(v *int) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+d", *v)
}
