// Package expr provides the logical table expressions the client compiles
// and executes. Expressions are immutable: every transformation returns a
// new value and never mutates the receiver.
package expr

import "github.com/leapstack-labs/farsql/pkg/core"

// Backend identifies the connection that produced an expression.
// Execution entry points live on the client; expressions only carry the
// back-reference so results can be traced to their origin.
type Backend interface {
	DriverName() string
}

// TableExpr is a logical expression denoting a tabular result.
type TableExpr interface {
	// Schema returns the expression's result schema.
	Schema() *core.Schema

	// Limit returns a new expression bounding the result to n rows.
	Limit(n int64) TableExpr

	tableExpr() // marker
}

// DatabaseTable references a physical table by name.
type DatabaseTable struct {
	Name    string
	schema  *core.Schema
	backend Backend
}

// NewDatabaseTable builds a table-reference expression.
func NewDatabaseTable(name string, schema *core.Schema, backend Backend) *DatabaseTable {
	return &DatabaseTable{Name: name, schema: schema, backend: backend}
}

func (t *DatabaseTable) Schema() *core.Schema { return t.schema }

// Backend returns the owning connection.
func (t *DatabaseTable) Backend() Backend { return t.backend }

func (t *DatabaseTable) Limit(n int64) TableExpr { return newLimit(t, n) }

func (*DatabaseTable) tableExpr() {}

// SQLQuery wraps raw SQL text as a table expression.
type SQLQuery struct {
	Query   string
	schema  *core.Schema
	backend Backend
}

// NewSQLQuery builds a query-result expression from raw SQL text.
func NewSQLQuery(query string, schema *core.Schema, backend Backend) *SQLQuery {
	return &SQLQuery{Query: query, schema: schema, backend: backend}
}

func (q *SQLQuery) Schema() *core.Schema { return q.schema }

// Backend returns the owning connection.
func (q *SQLQuery) Backend() Backend { return q.backend }

func (q *SQLQuery) Limit(n int64) TableExpr { return newLimit(q, n) }

func (*SQLQuery) tableExpr() {}

// LimitExpr bounds a child expression to N rows starting at Offset.
type LimitExpr struct {
	Child  TableExpr
	N      int64
	Offset int64
}

func newLimit(child TableExpr, n int64) *LimitExpr {
	return &LimitExpr{Child: child, N: n}
}

func (l *LimitExpr) Schema() *core.Schema { return l.Child.Schema() }

func (l *LimitExpr) Limit(n int64) TableExpr { return newLimit(l, n) }

func (*LimitExpr) tableExpr() {}
