package decode

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/born-ml/graphdef/internal/escape"
	"github.com/born-ml/graphdef/internal/graph"
)

// elementSize is the packed width of INT32 and FLOAT elements.
const elementSize = 4

// ContentValues unescapes a tensor_content string and reinterprets the bytes
// as the flat value sequence of dtype: []int32 for DT_INT32, []float32 for
// DT_FLOAT and []bool for DT_BOOL.
//
// Packed content is little-endian, the byte order TensorFlow writes on every
// platform it exports from. For INT32 and FLOAT the byte count must be a
// multiple of 4; otherwise ErrMisalignedContent is returned.
func ContentValues(escaped string, dtype graph.DataType) (any, error) {
	switch dtype {
	case graph.DTInt32:
		return contentInt32(escaped)
	case graph.DTFloat:
		return contentFloat32(escaped)
	case graph.DTBool:
		return contentBool(escaped), nil
	default:
		return nil, &UnsupportedTypeError{DType: dtype}
	}
}

// contentBytes unescapes the content into its raw bytes.
func contentBytes(escaped string) []byte {
	return []byte(escape.Unescape(escaped))
}

func alignedBytes(escaped string) ([]byte, error) {
	raw := contentBytes(escaped)
	if len(raw)%elementSize != 0 {
		return nil, fmt.Errorf("%d bytes: %w", len(raw), ErrMisalignedContent)
	}
	return raw, nil
}

func contentInt32(escaped string) ([]int32, error) {
	raw, err := alignedBytes(escaped)
	if err != nil {
		return nil, err
	}
	values := make([]int32, len(raw)/elementSize)
	for i := range values {
		values[i] = int32(binary.LittleEndian.Uint32(raw[i*elementSize:]))
	}
	return values, nil
}

func contentFloat32(escaped string) ([]float32, error) {
	raw, err := alignedBytes(escaped)
	if err != nil {
		return nil, err
	}
	values := make([]float32, len(raw)/elementSize)
	for i := range values {
		values[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*elementSize:]))
	}
	return values, nil
}

func contentBool(escaped string) []bool {
	raw := contentBytes(escaped)
	values := make([]bool, len(raw))
	for i, b := range raw {
		values[i] = b != 0
	}
	return values
}
