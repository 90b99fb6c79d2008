// Package duckdb registers the "duckdb" driver for local and in-memory
// databases. Params.Database is the database file path; empty means
// in-memory.
package duckdb

import (
	_ "github.com/marcboeker/go-duckdb" // duckdb database/sql driver

	"github.com/leapstack-labs/farsql/pkg/driver"
	"github.com/leapstack-labs/farsql/pkg/driver/sqldriver"
)

func init() {
	driver.Register("duckdb", func() driver.Driver { return New() })
}

// New returns the duckdb driver.
func New() driver.Driver {
	return sqldriver.New("duckdb", "duckdb", buildDSN, typeNames)
}

// typeNames maps duckdb DatabaseTypeName values to engine type names.
// Parameterized names (DECIMAL(18,3)) arrive with parameters already
// stripped by the sqldriver adapter.
var typeNames = map[string]string{
	"BOOLEAN":   "boolean",
	"TINYINT":   "tinyint",
	"SMALLINT":  "smallint",
	"INTEGER":   "int",
	"BIGINT":    "bigint",
	"FLOAT":     "float",
	"DOUBLE":    "double",
	"VARCHAR":   "string",
	"TIMESTAMP": "timestamp",
	"DECIMAL":   "decimal",
}

func buildDSN(p driver.Params) (string, error) {
	return p.Database, nil
}
