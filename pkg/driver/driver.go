// Package driver defines the boundary between the farsql client and the
// remote engine's wire driver.
//
// A Driver opens Sessions; a Session hands out Cursors; a Cursor executes
// one statement and exposes its rows and column metadata. Concrete driver
// implementations live in pkg/drivers/ subdirectories and register
// themselves with this package's registry in their init() functions.
//
// Drivers must wrap dead-session cursor-acquisition failures with
// core.ErrSessionDead so the client can tell transient failures apart
// from SQL errors.
package driver

import (
	"context"
	"time"
)

// Params holds connection-level configuration. Every field is passed
// through verbatim to the concrete driver; none is interpreted here.
type Params struct {
	Host                string
	Port                int
	Protocol            string
	Database            string
	User                string
	Password            string
	Timeout             time.Duration
	UseSSL              bool
	CACert              string
	UseLDAP             bool
	LDAPUser            string
	LDAPPassword        string
	UseKerberos         bool
	KerberosServiceName string
}

// DefaultParams returns the conventional defaults for a HiveServer2-style
// analytic engine endpoint.
func DefaultParams() Params {
	return Params{
		Host:                "localhost",
		Port:                21050,
		Protocol:            "hiveserver2",
		Timeout:             45 * time.Second,
		KerberosServiceName: "impala",
	}
}

// Driver opens sessions against a remote SQL engine.
type Driver interface {
	// Name returns the registry name of the driver (e.g. "postgres").
	Name() string

	// Connect establishes a new session using the provided params.
	Connect(ctx context.Context, params Params) (Session, error)
}

// Session is one live database session. A session is not safe for
// concurrent use; the client serializes access.
type Session interface {
	// Cursor allocates a cursor on the session. A dead-session failure
	// must wrap core.ErrSessionDead.
	Cursor(ctx context.Context) (Cursor, error)

	// Close tears down the session.
	Close() error
}

// Cursor executes a single statement and exposes its results.
type Cursor interface {
	// Execute submits SQL text to the engine.
	Execute(ctx context.Context, query string) error

	// FetchAll drains every remaining row.
	FetchAll() ([][]any, error)

	// Description returns column metadata for the executed statement.
	Description() ([]ColumnDesc, error)

	// Close releases the cursor.
	Close() error
}

// ColumnDesc describes one result-set column as reported by the driver.
// Precision and Scale are only populated for decimal columns.
type ColumnDesc struct {
	Name      string
	TypeName  string
	Precision int
	Scale     int
	Nullable  bool
}
