package compile

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/farsql/pkg/expr"
)

// sqlCompiler is the reference compiler for the expression nodes defined
// in pkg/expr. It produces single-statement plans; richer expression
// libraries plug in their own Compiler.
type sqlCompiler struct{}

// New returns the reference compiler.
func New() Compiler { return sqlCompiler{} }

func (sqlCompiler) Compile(e expr.TableExpr) (*Plan, error) {
	ctx := NewContext()
	sel, err := compileSelect(ctx, e)
	if err != nil {
		return nil, err
	}
	return &Plan{Queries: []Statement{sel}, Context: ctx}, nil
}

func compileSelect(ctx *Context, e expr.TableExpr) (*Select, error) {
	switch t := e.(type) {
	case *expr.DatabaseTable:
		return &Select{Context: ctx, Base: "SELECT *\nFROM " + t.Name}, nil

	case *expr.SQLQuery:
		return NewRawSelect(ctx, t.Query), nil

	case *expr.LimitExpr:
		inner, err := compileSelect(ctx, t.Child)
		if err != nil {
			return nil, err
		}
		spec := &LimitSpec{N: t.N, Offset: t.Offset}

		// Raw SQL and already-limited selects must become subqueries:
		// appending a second limit clause would be malformed.
		if inner.raw || inner.Limit != nil {
			body, err := inner.Compile()
			if err != nil {
				return nil, err
			}
			base := fmt.Sprintf("SELECT *\nFROM (\n%s\n) %s", indent(body, 2), ctx.Alias(t.Child))
			return &Select{Context: ctx, Base: base, Limit: spec}, nil
		}

		inner.Limit = spec
		return inner, nil

	default:
		return nil, fmt.Errorf("compile: unsupported expression %T", e)
	}
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}
