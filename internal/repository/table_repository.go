package repository

import "context"

// TableRepository reads an export table stored in a database as header and
// text rows.
type TableRepository interface {
	ReadTable(ctx context.Context, table string) ([]string, [][]string, error)
}
