// Package compile turns logical table expressions into executable query
// plans. A Plan is an ordered sequence of statements sharing one
// compilation Context; each statement compiles to literal SQL text.
//
// Statements form a tagged variant set (Select, CreateTableAs, DropTable)
// behind the Statement interface. Only Select carries a limit clause and
// a result handler.
package compile

import (
	"github.com/leapstack-labs/farsql/pkg/expr"
	"github.com/leapstack-labs/farsql/pkg/result"
)

// ResultHandler post-processes the materialized result of a Select.
type ResultHandler func(*result.Table) (*result.Table, error)

// Statement is one compiled statement unit.
type Statement interface {
	// Compile renders the statement to engine SQL text.
	Compile() (string, error)

	stmtNode() // marker
}

// Plan is an ordered sequence of statements plus the compilation context
// shared by nested queries. A plan is built fresh per expression and
// consumed once.
type Plan struct {
	Queries []Statement
	Context *Context
}

// Compiler compiles a logical expression into an executable plan.
type Compiler interface {
	Compile(e expr.TableExpr) (*Plan, error)
}
