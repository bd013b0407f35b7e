package graph

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DataType is a TensorFlow element type tag (types.proto DataType).
type DataType int32

// TensorFlow data types.
const (
	DTInvalid    DataType = 0
	DTFloat      DataType = 1  // float32
	DTDouble     DataType = 2  // float64
	DTInt32      DataType = 3  // int32
	DTUint8      DataType = 4  // uint8
	DTInt16      DataType = 5  // int16
	DTInt8       DataType = 6  // int8
	DTString     DataType = 7  // string
	DTComplex64  DataType = 8  // complex64
	DTInt64      DataType = 9  // int64
	DTBool       DataType = 10 // bool
	DTQint8      DataType = 11 // quantized int8
	DTQuint8     DataType = 12 // quantized uint8
	DTQint32     DataType = 13 // quantized int32
	DTBfloat16   DataType = 14 // bfloat16
	DTQint16     DataType = 15 // quantized int16
	DTQuint16    DataType = 16 // quantized uint16
	DTUint16     DataType = 17 // uint16
	DTComplex128 DataType = 18 // complex128
	DTHalf       DataType = 19 // float16
	DTResource   DataType = 20 // resource handle
	DTVariant    DataType = 21 // variant
	DTUint32     DataType = 22 // uint32
	DTUint64     DataType = 23 // uint64
)

// refOffset is added to a base type to form its reference type (DT_FLOAT_REF = 101).
const refOffset = 100

const refSuffix = "_REF"

var dataTypeNames = map[DataType]string{
	DTInvalid:    "DT_INVALID",
	DTFloat:      "DT_FLOAT",
	DTDouble:     "DT_DOUBLE",
	DTInt32:      "DT_INT32",
	DTUint8:      "DT_UINT8",
	DTInt16:      "DT_INT16",
	DTInt8:       "DT_INT8",
	DTString:     "DT_STRING",
	DTComplex64:  "DT_COMPLEX64",
	DTInt64:      "DT_INT64",
	DTBool:       "DT_BOOL",
	DTQint8:      "DT_QINT8",
	DTQuint8:     "DT_QUINT8",
	DTQint32:     "DT_QINT32",
	DTBfloat16:   "DT_BFLOAT16",
	DTQint16:     "DT_QINT16",
	DTQuint16:    "DT_QUINT16",
	DTUint16:     "DT_UINT16",
	DTComplex128: "DT_COMPLEX128",
	DTHalf:       "DT_HALF",
	DTResource:   "DT_RESOURCE",
	DTVariant:    "DT_VARIANT",
	DTUint32:     "DT_UINT32",
	DTUint64:     "DT_UINT64",
}

var dataTypeValues = func() map[string]DataType {
	m := make(map[string]DataType, len(dataTypeNames))
	for v, name := range dataTypeNames {
		m[name] = v
	}
	return m
}()

// ParseDataType returns the DataType for a DT_* name, including *_REF names.
func ParseDataType(name string) (DataType, error) {
	if v, ok := dataTypeValues[name]; ok {
		return v, nil
	}
	if base, ok := strings.CutSuffix(name, refSuffix); ok {
		if v, ok := dataTypeValues[base]; ok && v != DTInvalid {
			return v + refOffset, nil
		}
	}
	return DTInvalid, fmt.Errorf("unknown data type %q", name)
}

// IsRef reports whether dt is a reference type such as DT_FLOAT_REF.
func (dt DataType) IsRef() bool {
	return dt > refOffset
}

// Base returns the non-reference type for dt.
func (dt DataType) Base() DataType {
	if dt.IsRef() {
		return dt - refOffset
	}
	return dt
}

// String returns the DT_* name of the data type.
func (dt DataType) String() string {
	if name, ok := dataTypeNames[dt.Base()]; ok {
		if dt.IsRef() {
			return name + refSuffix
		}
		return name
	}
	return fmt.Sprintf("DataType(%d)", int32(dt))
}

// UnmarshalYAML accepts either the DT_* name or the numeric enum value.
func (dt *DataType) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: data type must be a scalar", value.Line)
	}
	if n, err := strconv.ParseInt(value.Value, 10, 32); err == nil {
		*dt = DataType(n)
		return nil
	}
	v, err := ParseDataType(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*dt = v
	return nil
}

// MarshalYAML writes the DT_* name.
func (dt DataType) MarshalYAML() (any, error) {
	return dt.String(), nil
}
