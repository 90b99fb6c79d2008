package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tbl, err := New([]string{"id", "name"}, [][]any{
		{int64(1), "alice"},
		{int64(2), "bob"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, 2, tbl.NumCols())
	assert.Equal(t, []string{"id", "name"}, tbl.Columns())
	assert.Equal(t, []any{int64(2), "bob"}, tbl.Row(1))
}

func TestNewRejectsRaggedRows(t *testing.T) {
	_, err := New([]string{"id", "name"}, [][]any{
		{int64(1), "alice"},
		{int64(2)},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}

func TestNewEmpty(t *testing.T) {
	tbl, err := New([]string{"id"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.NumRows())
	assert.Equal(t, 1, tbl.NumCols())
}

func TestColumn(t *testing.T) {
	tbl, err := New([]string{"id", "name"}, [][]any{
		{int64(1), "alice"},
		{int64(2), "bob"},
	})
	require.NoError(t, err)

	names, err := tbl.Column("name")
	require.NoError(t, err)
	assert.Equal(t, []any{"alice", "bob"}, names)

	_, err = tbl.Column("missing")
	require.Error(t, err)
}
