package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/vacayzen/product-recommendation/internal/repository"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// TableRepository reads whole export tables that were loaded into Postgres.
type TableRepository struct {
	db *DB
}

func NewTableRepository(db *DB) *TableRepository {
	return &TableRepository{db: db}
}

// ReadTable returns the column names and every row of table rendered as text.
// NULL cells become empty strings.
func (r *TableRepository) ReadTable(ctx context.Context, table string) ([]string, [][]string, error) {
	query, err := selectAllQuery(table)
	if err != nil {
		return nil, nil, err
	}

	release, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer release()

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query table %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}

	var records [][]string
	for rows.Next() {
		cells := make([]sql.NullString, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("failed to scan row of %s: %w", table, err)
		}

		record := make([]string, len(columns))
		for i, c := range cells {
			if c.Valid {
				record[i] = c.String
			}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating rows of %s: %w", table, err)
	}

	log.Debug().Str("table", table).Int("rows", len(records)).Msg("table loaded from database")

	return columns, records, nil
}

func selectAllQuery(table string) (string, error) {
	if !identifierPattern.MatchString(table) {
		return "", fmt.Errorf("invalid table name %q", table)
	}
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return "SELECT * FROM " + strings.Join(parts, "."), nil
}

var _ repository.TableRepository = (*TableRepository)(nil)
