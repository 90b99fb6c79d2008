// Package postgres registers the "postgres" driver backed by pgx.
package postgres

import (
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver

	"github.com/leapstack-labs/farsql/pkg/driver"
	"github.com/leapstack-labs/farsql/pkg/driver/sqldriver"
)

func init() {
	driver.Register("postgres", func() driver.Driver { return New() })
}

// New returns the postgres driver.
func New() driver.Driver {
	return sqldriver.New("postgres", "pgx", buildDSN, typeNames)
}

// typeNames maps pgx DatabaseTypeName values to engine type names.
// Types without a logical mapping are deliberately absent so they fail
// closed in the client.
var typeNames = map[string]string{
	"BOOL":        "boolean",
	"INT2":        "smallint",
	"INT4":        "int",
	"INT8":        "bigint",
	"FLOAT4":      "float",
	"FLOAT8":      "double",
	"TEXT":        "string",
	"VARCHAR":     "string",
	"BPCHAR":      "string",
	"NAME":        "string",
	"TIMESTAMP":   "timestamp",
	"TIMESTAMPTZ": "timestamp",
	"NUMERIC":     "decimal",
}

func buildDSN(p driver.Params) (string, error) {
	if p.Database == "" {
		return "", fmt.Errorf("postgres: database name is required")
	}

	host := p.Host
	if host == "" {
		host = "localhost"
	}
	port := p.Port
	if port == 0 {
		port = 5432
	}

	parts := []string{
		fmt.Sprintf("host=%s", host),
		fmt.Sprintf("port=%d", port),
		fmt.Sprintf("dbname=%s", p.Database),
	}

	user := p.User
	password := p.Password
	if p.UseLDAP {
		user = p.LDAPUser
		password = p.LDAPPassword
	}
	if user != "" {
		parts = append(parts, fmt.Sprintf("user=%s", user))
	}
	if password != "" {
		parts = append(parts, fmt.Sprintf("password=%s", password))
	}

	if p.UseSSL {
		parts = append(parts, "sslmode=require")
		if p.CACert != "" {
			parts = append(parts, fmt.Sprintf("sslrootcert=%s", p.CACert))
		}
	} else {
		parts = append(parts, "sslmode=disable")
	}
	if p.Timeout > 0 {
		parts = append(parts, fmt.Sprintf("connect_timeout=%d", int(p.Timeout.Seconds())))
	}

	return strings.Join(parts, " "), nil
}
