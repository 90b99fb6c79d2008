// Package result provides the tabular in-memory container that holds
// fetched rows on the client side.
package result

import "fmt"

// Table is an ordered, immutable set of named columns over row slices.
// Row values are driver-native; no conversion happens here.
type Table struct {
	columns []string
	rows    [][]any
}

// New builds a table from column names and row slices. Every row must
// have exactly one value per column.
func New(columns []string, rows [][]any) (*Table, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("result: row %d has %d values for %d columns", i, len(row), len(columns))
		}
	}
	return &Table{columns: columns, rows: rows}, nil
}

// NumRows returns the row count.
func (t *Table) NumRows() int { return len(t.rows) }

// NumCols returns the column count.
func (t *Table) NumCols() int { return len(t.columns) }

// Columns returns the column names in order.
func (t *Table) Columns() []string { return t.columns }

// Row returns the values of row i.
func (t *Table) Row(i int) []any { return t.rows[i] }

// Rows returns all rows.
func (t *Table) Rows() [][]any { return t.rows }

// Column returns all values of the named column, in row order.
func (t *Table) Column(name string) ([]any, error) {
	for i, col := range t.columns {
		if col == name {
			values := make([]any, len(t.rows))
			for j, row := range t.rows {
				values[j] = row[i]
			}
			return values, nil
		}
	}
	return nil, fmt.Errorf("result: no column %q", name)
}
