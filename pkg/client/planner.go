package client

import (
	"fmt"

	"github.com/leapstack-labs/farsql/pkg/compile"
	"github.com/leapstack-labs/farsql/pkg/expr"
)

// buildPlanEnsureLimit compiles e, injecting defaultLimit into plans
// whose select units carry no explicit limit. The rewrite happens on the
// source expression, never on compiled SQL text, and the whole plan is
// recompiled from the rewritten expression so every nested query sharing
// it stays consistent. Expression rewriting is the only transformation
// guaranteed to remain dialect-correct.
//
// The possibly rewritten expression is returned alongside the plan so
// callers can report the query actually executed.
func (c *Connection) buildPlanEnsureLimit(e expr.TableExpr, defaultLimit int64) (*compile.Plan, expr.TableExpr, error) {
	plan, err := c.compiler.Compile(e)
	if err != nil {
		return nil, nil, fmt.Errorf("compile expression: %w", err)
	}
	if defaultLimit <= 0 {
		return plan, e, nil
	}

	for _, stmt := range plan.Queries {
		sel, ok := stmt.(*compile.Select)
		if !ok || sel.Limit != nil {
			continue
		}

		// One expression-level rewrite covers every select unit
		// derived from e; recompile once and stop.
		e = e.Limit(defaultLimit)
		plan, err = c.compiler.Compile(e)
		if err != nil {
			return nil, nil, fmt.Errorf("recompile limited expression: %w", err)
		}
		break
	}
	return plan, e, nil
}
