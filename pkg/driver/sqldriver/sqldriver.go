// Package sqldriver adapts any database/sql driver to the farsql driver
// boundary. Concrete drivers in pkg/drivers/ supply a DSN builder and a
// type-name table and register the resulting Driver.
//
// Cursor acquisition pings the pool so a dead session is detected before
// a statement is submitted; ping failures are marked transient with
// core.ErrSessionDead.
package sqldriver

import (
	"context"
	"database/sql"
	sqld "database/sql/driver"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"syscall"

	fdriver "github.com/leapstack-labs/farsql/pkg/driver"

	"github.com/leapstack-labs/farsql/pkg/core"
)

// DSNBuilder renders connection params into a data source name.
type DSNBuilder func(fdriver.Params) (string, error)

// Driver implements the farsql driver boundary over database/sql.
type Driver struct {
	name      string
	sqlDriver string
	buildDSN  DSNBuilder
	typeNames map[string]string
}

// New builds a Driver. name is the registry name, sqlDriver the name
// registered with database/sql, and typeNames maps the driver's
// DatabaseTypeName values (upper-cased, parameters stripped) to the
// engine type names understood by the client's type mapper.
func New(name, sqlDriver string, buildDSN DSNBuilder, typeNames map[string]string) *Driver {
	return &Driver{
		name:      name,
		sqlDriver: sqlDriver,
		buildDSN:  buildDSN,
		typeNames: typeNames,
	}
}

// Name implements driver.Driver.
func (d *Driver) Name() string { return d.name }

// Connect implements driver.Driver.
func (d *Driver) Connect(ctx context.Context, params fdriver.Params) (fdriver.Session, error) {
	dsn, err := d.buildDSN(params)
	if err != nil {
		return nil, fmt.Errorf("build dsn: %w", err)
	}

	db, err := sql.Open(d.sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.sqlDriver, err)
	}

	if params.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, params.Timeout)
		defer cancel()
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.sqlDriver, err)
	}

	return &Session{db: db, typeNames: d.typeNames}, nil
}

// Session is one database/sql-backed session.
type Session struct {
	db        *sql.DB
	typeNames map[string]string
}

// Cursor implements driver.Session. The ping is the dead-session
// detection point: its failure is transient and retryable, unlike a
// statement error.
func (s *Session) Cursor(ctx context.Context) (fdriver.Cursor, error) {
	if err := s.db.PingContext(ctx); err != nil {
		return nil, markTransient(fmt.Errorf("allocate cursor: %w", err))
	}
	return &Cursor{db: s.db, typeNames: s.typeNames}, nil
}

// Close implements driver.Session.
func (s *Session) Close() error { return s.db.Close() }

// Cursor executes one statement and exposes its rows and metadata.
type Cursor struct {
	db        *sql.DB
	typeNames map[string]string

	rows    *sql.Rows
	desc    []fdriver.ColumnDesc
	drained bool
}

// Execute implements driver.Cursor.
func (c *Cursor) Execute(ctx context.Context, query string) error {
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		if isConnFailure(err) {
			return markTransient(err)
		}
		return err
	}

	types, err := rows.ColumnTypes()
	if err != nil {
		_ = rows.Close()
		return fmt.Errorf("read column types: %w", err)
	}

	desc := make([]fdriver.ColumnDesc, len(types))
	for i, ct := range types {
		d := fdriver.ColumnDesc{
			Name:     ct.Name(),
			TypeName: c.normalizeTypeName(ct.DatabaseTypeName()),
		}
		if precision, scale, ok := ct.DecimalSize(); ok {
			d.Precision = int(precision)
			d.Scale = int(scale)
		}
		if nullable, ok := ct.Nullable(); ok {
			d.Nullable = nullable
		}
		desc[i] = d
	}

	c.rows = rows
	c.desc = desc
	c.drained = false
	return nil
}

// FetchAll implements driver.Cursor. A second call after a full drain
// returns an empty result, matching cursor semantics.
func (c *Cursor) FetchAll() ([][]any, error) {
	if c.desc == nil {
		return nil, fmt.Errorf("no statement executed")
	}
	if c.drained {
		return nil, nil
	}

	var out [][]any
	n := len(c.desc)
	for c.rows.Next() {
		values := make([]any, n)
		ptrs := make([]any, n)
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := c.rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, values)
	}
	if err := c.rows.Err(); err != nil {
		if isConnFailure(err) {
			return nil, markTransient(err)
		}
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	c.drained = true
	_ = c.rows.Close()
	return out, nil
}

// Description implements driver.Cursor.
func (c *Cursor) Description() ([]fdriver.ColumnDesc, error) {
	if c.desc == nil {
		return nil, fmt.Errorf("no statement executed")
	}
	return c.desc, nil
}

// Close implements driver.Cursor.
func (c *Cursor) Close() error {
	if c.rows != nil {
		return c.rows.Close()
	}
	return nil
}

// normalizeTypeName upper-cases the driver's database type name, strips
// type parameters (DECIMAL(18,3) -> DECIMAL) and applies the driver's
// name table.
func (c *Cursor) normalizeTypeName(name string) string {
	name = strings.ToUpper(name)
	if i := strings.Index(name, "("); i >= 0 {
		name = name[:i]
	}
	if mapped, ok := c.typeNames[name]; ok {
		return mapped
	}
	return strings.ToLower(name)
}

func markTransient(err error) error {
	return fmt.Errorf("%w: %w", core.ErrSessionDead, err)
}

// isConnFailure reports whether err indicates a broken connection rather
// than a statement rejected by the engine.
func isConnFailure(err error) bool {
	if errors.Is(err, sqld.ErrBadConn) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
