package client

import (
	"strings"

	"github.com/leapstack-labs/farsql/pkg/core"
	"github.com/leapstack-labs/farsql/pkg/driver"
)

// driverTypeNames maps remote-engine type names (case-insensitive) to
// logical types. Decimal is handled separately because it is
// parameterized by the descriptor's precision and scale.
var driverTypeNames = map[string]core.DataType{
	"boolean":   core.Boolean,
	"tinyint":   core.Int8,
	"smallint":  core.Int16,
	"int":       core.Int32,
	"bigint":    core.Int64,
	"float":     core.Float,
	"double":    core.Double,
	"string":    core.String,
	"timestamp": core.Timestamp,
}

// adaptDescription translates driver column descriptors into a logical
// schema. Output order matches descriptor order exactly. An unrecognized
// type name is a fatal configuration error; no partial schema is
// returned.
func adaptDescription(desc []driver.ColumnDesc) (*core.Schema, error) {
	names := make([]string, len(desc))
	types := make([]core.DataType, len(desc))

	for i, col := range desc {
		names[i] = col.Name

		typeName := strings.ToLower(col.TypeName)
		if typeName == "decimal" {
			types[i] = core.Decimal(col.Precision, col.Scale)
			continue
		}

		t, ok := driverTypeNames[typeName]
		if !ok {
			return nil, &core.UnsupportedTypeError{TypeName: col.TypeName}
		}
		types[i] = t
	}

	return core.NewSchema(names, types)
}
