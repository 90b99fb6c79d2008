package core

import "fmt"

// TypeKind enumerates the logical scalar types understood by the system.
type TypeKind int

// Logical scalar type kinds.
const (
	KindInvalid TypeKind = iota
	KindBoolean
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat
	KindDouble
	KindString
	KindTimestamp
	KindDecimal
)

var kindNames = map[TypeKind]string{
	KindInvalid:   "invalid",
	KindBoolean:   "boolean",
	KindInt8:      "int8",
	KindInt16:     "int16",
	KindInt32:     "int32",
	KindInt64:     "int64",
	KindFloat:     "float",
	KindDouble:    "double",
	KindString:    "string",
	KindTimestamp: "timestamp",
	KindDecimal:   "decimal",
}

func (k TypeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TypeKind(%d)", int(k))
}

// DataType is a logical scalar type. Precision and Scale are only
// meaningful when Kind is KindDecimal.
type DataType struct {
	Kind      TypeKind
	Precision int
	Scale     int
}

// Primitive logical types.
var (
	Boolean   = DataType{Kind: KindBoolean}
	Int8      = DataType{Kind: KindInt8}
	Int16     = DataType{Kind: KindInt16}
	Int32     = DataType{Kind: KindInt32}
	Int64     = DataType{Kind: KindInt64}
	Float     = DataType{Kind: KindFloat}
	Double    = DataType{Kind: KindDouble}
	String    = DataType{Kind: KindString}
	Timestamp = DataType{Kind: KindTimestamp}
)

// Decimal returns a parameterized decimal type.
func Decimal(precision, scale int) DataType {
	return DataType{Kind: KindDecimal, Precision: precision, Scale: scale}
}

func (t DataType) String() string {
	if t.Kind == KindDecimal {
		return fmt.Sprintf("decimal(%d,%d)", t.Precision, t.Scale)
	}
	return t.Kind.String()
}

// Equal reports whether two types are identical, including decimal
// parameters.
func (t DataType) Equal(other DataType) bool {
	return t == other
}
