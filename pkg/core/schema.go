package core

import (
	"fmt"
	"strings"
)

// Column is a named logical column in a result schema.
type Column struct {
	Name string
	Type DataType
}

// Schema is an ordered sequence of named, typed columns. Column order is
// significant and matches result-set column order. Names are unique within
// a schema. A Schema is immutable once constructed.
type Schema struct {
	columns []Column
	index   map[string]int
}

// NewSchema builds a schema from parallel name and type slices.
// It fails on length mismatch or duplicate column names.
func NewSchema(names []string, types []DataType) (*Schema, error) {
	if len(names) != len(types) {
		return nil, fmt.Errorf("schema: %d names but %d types", len(names), len(types))
	}

	columns := make([]Column, len(names))
	index := make(map[string]int, len(names))
	for i, name := range names {
		if _, ok := index[name]; ok {
			return nil, fmt.Errorf("schema: duplicate column name %q", name)
		}
		columns[i] = Column{Name: name, Type: types[i]}
		index[name] = i
	}

	return &Schema{columns: columns, index: index}, nil
}

// Len returns the number of columns.
func (s *Schema) Len() int { return len(s.columns) }

// Column returns the column at position i.
func (s *Schema) Column(i int) Column { return s.columns[i] }

// Names returns the column names in schema order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// Types returns the column types in schema order.
func (s *Schema) Types() []DataType {
	types := make([]DataType, len(s.columns))
	for i, c := range s.columns {
		types[i] = c.Type
	}
	return types
}

// Type looks up a column type by name.
func (s *Schema) Type(name string) (DataType, bool) {
	i, ok := s.index[name]
	if !ok {
		return DataType{}, false
	}
	return s.columns[i].Type, true
}

// Equal reports whether two schemas have the same columns in the same order.
func (s *Schema) Equal(other *Schema) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i, c := range s.columns {
		if other.columns[i] != c {
			return false
		}
	}
	return true
}

func (s *Schema) String() string {
	parts := make([]string, len(s.columns))
	for i, c := range s.columns {
		parts[i] = fmt.Sprintf("%s %s", c.Name, c.Type)
	}
	return "schema(" + strings.Join(parts, ", ") + ")"
}
