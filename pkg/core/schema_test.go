package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchema(t *testing.T) {
	schema, err := NewSchema(
		[]string{"id", "name", "price"},
		[]DataType{Int64, String, Decimal(12, 2)},
	)
	require.NoError(t, err)

	assert.Equal(t, 3, schema.Len())
	assert.Equal(t, []string{"id", "name", "price"}, schema.Names())
	assert.Equal(t, []DataType{Int64, String, Decimal(12, 2)}, schema.Types())

	dt, ok := schema.Type("price")
	require.True(t, ok)
	assert.Equal(t, Decimal(12, 2), dt)

	_, ok = schema.Type("missing")
	assert.False(t, ok)
}

func TestNewSchema_DuplicateNames(t *testing.T) {
	_, err := NewSchema([]string{"a", "a"}, []DataType{Int32, Int32})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate column name")
}

func TestNewSchema_LengthMismatch(t *testing.T) {
	_, err := NewSchema([]string{"a", "b"}, []DataType{Int32})
	require.Error(t, err)
}

func TestSchema_Equal(t *testing.T) {
	a, err := NewSchema([]string{"x", "y"}, []DataType{Int32, String})
	require.NoError(t, err)
	b, err := NewSchema([]string{"x", "y"}, []DataType{Int32, String})
	require.NoError(t, err)
	c, err := NewSchema([]string{"y", "x"}, []DataType{String, Int32})
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "order is significant")
}

func TestDataType_String(t *testing.T) {
	assert.Equal(t, "boolean", Boolean.String())
	assert.Equal(t, "int64", Int64.String())
	assert.Equal(t, "decimal(18,3)", Decimal(18, 3).String())
}

func TestSchema_String(t *testing.T) {
	s, err := NewSchema([]string{"a", "b"}, []DataType{Int32, String})
	require.NoError(t, err)
	assert.Equal(t, "schema(a int32, b string)", s.String())
}
