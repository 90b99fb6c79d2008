package client

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/leapstack-labs/farsql/pkg/core"
)

// limitClauseRe matches a trailing LIMIT clause (optionally with OFFSET
// and a closing semicolon) so a probe can override it instead of
// stacking a second one.
var limitClauseRe = regexp.MustCompile(`(?is)\bLIMIT\s+\d+(\s+OFFSET\s+\d+)?\s*;?\s*$`)

// setLimit rewrites query so its result is bounded to k rows. An
// existing trailing LIMIT is replaced; two limit clauses would be
// malformed SQL for most engines.
func setLimit(query string, k int64) string {
	q := strings.TrimSpace(query)
	if loc := limitClauseRe.FindStringIndex(q); loc != nil {
		q = strings.TrimRight(q[:loc[0]], " \t\r\n")
	}
	return fmt.Sprintf("%s\nLIMIT %d", q, k)
}

// schemaForTable probes the schema of a named table with a zero-row
// SELECT *.
func (c *Connection) schemaForTable(ctx context.Context, name string) (*core.Schema, error) {
	return c.schemaForQuery(ctx, "SELECT * FROM "+name)
}

// schemaForQuery probes the schema of raw query text. The probe is
// bounded to zero rows and fully drained before column metadata is read:
// some drivers only finalize the server-side operation handle after a
// complete fetch, and skipping the drain leaves the session inconsistent
// for subsequent calls.
func (c *Connection) schemaForQuery(ctx context.Context, query string) (*core.Schema, error) {
	probe := setLimit(query, 0)

	cur, err := c.execWithRetry(ctx, probe, c.retries)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close() }()

	if _, err := cur.FetchAll(); err != nil {
		return nil, &core.SchemaProbeError{Query: probe, Err: fmt.Errorf("drain probe cursor: %w", err)}
	}

	desc, err := cur.Description()
	if err != nil {
		return nil, &core.SchemaProbeError{Query: probe, Err: err}
	}

	schema, err := adaptDescription(desc)
	if err != nil {
		var unsupported *core.UnsupportedTypeError
		if errors.As(err, &unsupported) {
			return nil, err
		}
		return nil, &core.SchemaProbeError{Query: probe, Err: err}
	}
	return schema, nil
}
