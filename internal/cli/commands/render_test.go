package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/farsql/pkg/core"
	"github.com/leapstack-labs/farsql/pkg/result"
)

func sampleResult(t *testing.T) *result.Table {
	t.Helper()
	tbl, err := result.New([]string{"id", "name"}, [][]any{
		{int64(1), "alice"},
		{int64(2), nil},
	})
	require.NoError(t, err)
	return tbl
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderResult(&buf, sampleResult(t), "table"))

	out := buf.String()
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "NULL")
	assert.Contains(t, out, "(2 rows)")
}

func TestRenderTableEmpty(t *testing.T) {
	tbl, err := result.New([]string{"id"}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderResult(&buf, tbl, "table"))
	assert.Equal(t, "(0 rows)\n", buf.String())
}

func TestRenderNilResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderResult(&buf, nil, "table"))
	assert.Equal(t, "(no result)\n", buf.String())
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderResult(&buf, sampleResult(t), "json"))

	var records []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "alice", records[0]["name"])
	assert.Nil(t, records[1]["name"])
}

func TestRenderCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderResult(&buf, sampleResult(t), "csv"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name", lines[0])
	assert.Equal(t, "1,alice", lines[1])
}

func TestRenderSchema(t *testing.T) {
	schema, err := core.NewSchema(
		[]string{"id", "price"},
		[]core.DataType{core.Int64, core.Decimal(18, 3)},
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderSchema(&buf, schema))

	out := buf.String()
	assert.Contains(t, out, "id")
	assert.Contains(t, out, "int64")
	assert.Contains(t, out, "decimal(18,3)")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-te", truncate("exactly-te", 10))
	assert.Equal(t, "a long ...", truncate("a long query text", 10))
}
