// Package client provides the user-facing connection to a remote analytic
// SQL engine. A Connection resolves table references to expressions,
// executes expressions through a compiled plan, and issues DDL derived
// from compiled queries. Transient session failures are retried
// transparently up to a bounded budget.
//
// A Connection owns exactly one logical session. The session handle may be
// replaced on reconnect but the Connection identity never changes. At most
// one execution should be in flight per Connection; callers sharing one
// Connection across goroutines must serialize externally.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/leapstack-labs/farsql/pkg/compile"
	"github.com/leapstack-labs/farsql/pkg/core"
	"github.com/leapstack-labs/farsql/pkg/driver"
	"github.com/leapstack-labs/farsql/pkg/expr"
	"github.com/leapstack-labs/farsql/pkg/result"
)

// DefaultRetries is the reconnect budget applied when Config.Retries is
// zero: one initial attempt plus three retries.
const DefaultRetries = 3

// Config holds connection construction parameters.
type Config struct {
	// Params is passed verbatim to the driver.
	Params driver.Params

	// Compiler compiles expressions to plans (nil uses the reference
	// compiler in pkg/compile).
	Compiler compile.Compiler

	// Logger is the structured logger (nil uses a discard logger).
	Logger *slog.Logger

	// Retries overrides the reconnect budget (0 uses DefaultRetries;
	// negative disables retries).
	Retries int
}

// Connection is the façade over one logical database session.
type Connection struct {
	drv      driver.Driver
	params   driver.Params
	compiler compile.Compiler
	logger   *slog.Logger
	retries  int

	// mu guards the session slot; reconnect replaces it in place.
	mu      sync.Mutex
	session driver.Session
}

// Connect opens a connection using a registered driver name.
func Connect(ctx context.Context, driverName string, cfg Config) (*Connection, error) {
	drv, err := driver.New(driverName)
	if err != nil {
		return nil, err
	}
	return ConnectDriver(ctx, drv, cfg)
}

// ConnectDriver opens a connection over an explicit driver instance.
func ConnectDriver(ctx context.Context, drv driver.Driver, cfg Config) (*Connection, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	compiler := cfg.Compiler
	if compiler == nil {
		compiler = compile.New()
	}
	retries := cfg.Retries
	if retries == 0 {
		retries = DefaultRetries
	} else if retries < 0 {
		retries = 0
	}

	session, err := drv.Connect(ctx, cfg.Params)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", drv.Name(), err)
	}

	logger.Debug("connected",
		slog.String("driver", drv.Name()),
		slog.String("host", cfg.Params.Host),
		slog.Int("port", cfg.Params.Port))

	return &Connection{
		drv:      drv,
		params:   cfg.Params,
		compiler: compiler,
		logger:   logger,
		retries:  retries,
		session:  session,
	}, nil
}

// Close tears down the live session.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	err := c.session.Close()
	c.session = nil
	return err
}

// DriverName returns the name of the underlying driver. It also makes
// Connection usable as an expression backend.
func (c *Connection) DriverName() string { return c.drv.Name() }

// Table resolves a table reference to an expression carrying the table's
// schema. Database-qualified lookup is not implemented; a non-empty
// database is rejected rather than silently ignored.
func (c *Connection) Table(ctx context.Context, name, database string) (expr.TableExpr, error) {
	if database != "" {
		return nil, &core.UnsupportedOperationError{
			Op:     "table",
			Reason: "database-qualified table lookup is not implemented",
		}
	}

	schema, err := c.schemaForTable(ctx, name)
	if err != nil {
		return nil, err
	}
	return expr.NewDatabaseTable(name, schema, c), nil
}

// SQL wraps raw query text as a table expression, probing the engine for
// the query's schema.
func (c *Connection) SQL(ctx context.Context, query string) (expr.TableExpr, error) {
	schema, err := c.schemaForQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	return expr.NewSQLQuery(query, schema, c), nil
}

// ExecOption adjusts one Execute call.
type ExecOption func(*execOptions)

type execOptions struct {
	defaultLimit int64
	retries      int
	haveRetries  bool
}

// WithDefaultLimit bounds whole-table results to n rows unless the
// expression already carries a limit.
func WithDefaultLimit(n int64) ExecOption {
	return func(o *execOptions) { o.defaultLimit = n }
}

// WithRetries overrides the connection's reconnect budget for one call.
func WithRetries(n int) ExecOption {
	return func(o *execOptions) { o.retries = n; o.haveRetries = true }
}

// Execute compiles and runs an expression. Every statement of the plan is
// executed in order; only the last statement's cursor is materialized and
// returned, with the statement's result handler applied when present.
// Intermediate statements run purely for their side effects.
func (c *Connection) Execute(ctx context.Context, e expr.TableExpr, opts ...ExecOption) (*result.Table, error) {
	var o execOptions
	for _, opt := range opts {
		opt(&o)
	}
	retries := c.retries
	if o.haveRetries {
		retries = o.retries
	}

	plan, _, err := c.buildPlanEnsureLimit(e, o.defaultLimit)
	if err != nil {
		return nil, err
	}

	var output *result.Table
	for _, stmt := range plan.Queries {
		query, err := stmt.Compile()
		if err != nil {
			return nil, err
		}

		c.logger.Debug("executing statement", slog.String("query", query))
		cur, err := c.execWithRetry(ctx, query, retries)
		if err != nil {
			return nil, err
		}

		res, err := fetchFromCursor(cur)
		if err != nil {
			return nil, err
		}

		if sel, ok := stmt.(*compile.Select); ok {
			if sel.Handler != nil {
				res, err = sel.Handler(res)
				if err != nil {
					return nil, fmt.Errorf("result handler: %w", err)
				}
			}
			output = res
		}
	}
	return output, nil
}

// FetchAll executes raw SQL text and drains every row.
func (c *Connection) FetchAll(ctx context.Context, query string) ([][]any, error) {
	cur, err := c.execWithRetry(ctx, query, c.retries)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close() }()
	return cur.FetchAll()
}

// CreateTableOptions holds CTAS policy flags.
type CreateTableOptions struct {
	Database  string
	Format    string // storage format, default "parquet"
	Overwrite bool
}

// CreateTable creates a new table from a table expression. Only the first
// statement unit of the compiled plan forms the table body;
// multi-statement expressions are not supported for CTAS.
func (c *Connection) CreateTable(ctx context.Context, name string, e expr.TableExpr, opts CreateTableOptions) error {
	plan, err := c.compiler.Compile(e)
	if err != nil {
		return fmt.Errorf("compile expression: %w", err)
	}
	if len(plan.Queries) == 0 {
		return fmt.Errorf("create table %q: empty plan", name)
	}
	sel, ok := plan.Queries[0].(*compile.Select)
	if !ok {
		return fmt.Errorf("create table %q: expression does not compile to a select", name)
	}

	stmt := &compile.CreateTableAs{
		Context:   plan.Context,
		TableName: name,
		Database:  opts.Database,
		Format:    opts.Format,
		Overwrite: opts.Overwrite,
		Select:    sel,
	}
	return c.executeStatement(ctx, stmt)
}

// DropTableOptions holds drop-table policy flags.
type DropTableOptions struct {
	Database  string
	MustExist bool
}

// DropTable drops a table. With MustExist false the statement carries an
// IF EXISTS guard, so an absent table is not an error.
func (c *Connection) DropTable(ctx context.Context, name string, opts DropTableOptions) error {
	stmt := &compile.DropTable{
		TableName: name,
		Database:  opts.Database,
		MustExist: opts.MustExist,
	}
	return c.executeStatement(ctx, stmt)
}

// executeStatement compiles and runs one side-effecting statement,
// draining its cursor.
func (c *Connection) executeStatement(ctx context.Context, stmt compile.Statement) error {
	query, err := stmt.Compile()
	if err != nil {
		return err
	}

	c.logger.Debug("executing statement", slog.String("query", query))
	cur, err := c.execWithRetry(ctx, query, c.retries)
	if err != nil {
		return err
	}
	defer func() { _ = cur.Close() }()

	if _, err := cur.FetchAll(); err != nil {
		return fmt.Errorf("drain cursor: %w", err)
	}
	return nil
}
