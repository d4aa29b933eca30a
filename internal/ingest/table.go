package ingest

import (
	"hash"
	"strings"

	"github.com/vacayzen/product-recommendation/internal/domain"
)

// Table is the raw tabular form of one input export.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string

	colMap map[string]int
}

// NewTable builds a Table and indexes its header by normalized column name.
// The first occurrence wins when two headers normalize to the same key.
func NewTable(name string, header []string, rows [][]string) *Table {
	t := &Table{
		Name:   name,
		Header: header,
		Rows:   rows,
		colMap: make(map[string]int, len(header)),
	}
	for i, col := range header {
		key := normalizeColumnName(col)
		if _, exists := t.colMap[key]; !exists {
			t.colMap[key] = i
		}
	}
	return t
}

// ColumnIndex returns the position of a column looked up by normalized name.
func (t *Table) ColumnIndex(name string) (int, bool) {
	idx, ok := t.colMap[normalizeColumnName(name)]
	return idx, ok
}

// RequireColumns reports every absent column in a single MissingColumnError.
func (t *Table) RequireColumns(columns ...string) error {
	var missing []string
	for _, col := range columns {
		if _, ok := t.ColumnIndex(col); !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &domain.MissingColumnError{Table: t.Name, Columns: missing}
	}
	return nil
}

// Value returns the trimmed cell of row for the named column, or "" when the
// column or the cell is absent.
func (t *Table) Value(row []string, column string) string {
	idx, ok := t.ColumnIndex(column)
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (t *Table) writeTo(h hash.Hash) {
	h.Write([]byte(t.Name))
	h.Write([]byte{0})
	writeRecord(h, t.Header)
	for _, row := range t.Rows {
		writeRecord(h, row)
	}
}

func writeRecord(h hash.Hash, record []string) {
	for _, cell := range record {
		h.Write([]byte(cell))
		h.Write([]byte{0x1f})
	}
	h.Write([]byte{0x1e})
}

// normalizeColumnName lower-cases a header and drops spaces, underscores, dots
// and dashes so "Unit_Cost", "Unit Cost" and "unitcost" match.
func normalizeColumnName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case ' ', '_', '.', '-', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
