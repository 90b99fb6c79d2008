package compile

import (
	"fmt"
	"strings"
)

// LimitSpec bounds a SELECT to N rows starting at Offset.
type LimitSpec struct {
	N      int64
	Offset int64
}

// Select is a compiled SELECT-like statement. Base holds the rendered
// statement body without its limit clause; raw marks bodies taken
// verbatim from user SQL, which must be wrapped as subqueries before a
// limit can be applied.
type Select struct {
	Context *Context
	Base    string
	Limit   *LimitSpec
	Handler ResultHandler

	raw bool
}

// NewRawSelect wraps verbatim user SQL as a Select unit.
func NewRawSelect(ctx *Context, query string) *Select {
	return &Select{Context: ctx, Base: strings.TrimSpace(query), raw: true}
}

// Compile renders the statement, appending the limit clause when set.
func (s *Select) Compile() (string, error) {
	if s.Base == "" {
		return "", fmt.Errorf("compile: empty select body")
	}
	if s.Limit == nil {
		return s.Base, nil
	}

	var b strings.Builder
	b.WriteString(s.Base)
	fmt.Fprintf(&b, "\nLIMIT %d", s.Limit.N)
	if s.Limit.Offset > 0 {
		fmt.Fprintf(&b, " OFFSET %d", s.Limit.Offset)
	}
	return b.String(), nil
}

func (*Select) stmtNode() {}
