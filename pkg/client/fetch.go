package client

import (
	"fmt"

	"github.com/leapstack-labs/farsql/pkg/driver"
	"github.com/leapstack-labs/farsql/pkg/result"
)

// fetchFromCursor drains a cursor into the tabular result container and
// closes it.
func fetchFromCursor(cur driver.Cursor) (*result.Table, error) {
	defer func() { _ = cur.Close() }()

	rows, err := cur.FetchAll()
	if err != nil {
		return nil, fmt.Errorf("fetch rows: %w", err)
	}

	desc, err := cur.Description()
	if err != nil {
		return nil, fmt.Errorf("read cursor description: %w", err)
	}

	names := make([]string, len(desc))
	for i, col := range desc {
		names[i] = col.Name
	}
	return result.New(names, rows)
}
