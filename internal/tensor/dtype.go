// Package tensor provides the shaped array types produced by graphdef decoding.
package tensor

// DType is a constraint for supported element types.
// It uses Go generics to ensure compile-time type safety.
type DType interface {
	int32 | float32 | bool
}

// DataType represents runtime type information for arrays.
type DataType int

// Supported data types for arrays.
const (
	Int32 DataType = iota
	Float32
	Bool
)

// Size returns the byte size of the data type in its packed encoding.
func (dt DataType) Size() int {
	switch dt {
	case Int32, Float32:
		return 4
	case Bool:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Int32:
		return "int32"
	case Float32:
		return "float32"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// inferDataType infers DataType from a generic type T.
func inferDataType[T DType]() DataType {
	var dummy T
	switch any(dummy).(type) {
	case int32:
		return Int32
	case float32:
		return Float32
	case bool:
		return Bool
	default:
		panic("unsupported type")
	}
}
