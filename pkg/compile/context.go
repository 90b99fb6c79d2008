package compile

import (
	"fmt"

	"github.com/leapstack-labs/farsql/pkg/expr"
)

// Context holds the name-binding state shared by all statements of one
// plan. Subquery aliases are allocated here so nested compilations never
// collide.
type Context struct {
	aliases map[expr.TableExpr]string
	next    int
}

// NewContext returns an empty compilation context.
func NewContext() *Context {
	return &Context{aliases: make(map[expr.TableExpr]string)}
}

// Alias returns the subquery alias bound to e, allocating t0, t1, ...
// on first use. Repeated calls for the same expression return the same
// alias.
func (c *Context) Alias(e expr.TableExpr) string {
	if alias, ok := c.aliases[e]; ok {
		return alias
	}
	alias := fmt.Sprintf("t%d", c.next)
	c.next++
	c.aliases[e] = alias
	return alias
}
