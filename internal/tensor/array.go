package tensor

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrElementCount is returned when the flat value sequence does not fill the shape exactly.
var ErrElementCount = errors.New("element count does not match shape")

// Array is a shaped, typed multidimensional array stored in row-major order.
// The flat data is one of []int32, []float32 or []bool, selected by dtype.
type Array struct {
	data   any      // Flat typed storage
	shape  Shape    // Array dimensions
	stride []int    // Row-major strides
	dtype  DataType // Runtime type information
}

// FromSlice creates an array of any rank from a flat slice.
// The slice is copied into the array's storage.
func FromSlice[T DType](values []T, shape Shape) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if shape.NumElements() != len(values) {
		return nil, fmt.Errorf("shape %v requires %d elements, got %d: %w",
			shape, shape.NumElements(), len(values), ErrElementCount)
	}

	var data any
	switch v := any(values).(type) {
	case []int32:
		data = append(make([]int32, 0, len(v)), v...)
	case []float32:
		data = append(make([]float32, 0, len(v)), v...)
	case []bool:
		data = append(make([]bool, 0, len(v)), v...)
	}

	return &Array{
		data:   data,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  inferDataType[T](),
	}, nil
}

// Shape returns the array's shape.
func (a *Array) Shape() Shape {
	return a.shape
}

// Rank returns the number of dimensions (0 for a scalar).
func (a *Array) Rank() int {
	return len(a.shape)
}

// DType returns the array's data type.
func (a *Array) DType() DataType {
	return a.dtype
}

// NumElements returns the total number of elements.
func (a *Array) NumElements() int {
	return a.shape.NumElements()
}

// AsInt32 returns the flat []int32 storage.
// Panics if the array's dtype is not Int32.
func (a *Array) AsInt32() []int32 {
	if a.dtype != Int32 {
		panic(fmt.Sprintf("array dtype is %s, not int32", a.dtype))
	}
	return a.data.([]int32)
}

// AsFloat32 returns the flat []float32 storage.
// Panics if the array's dtype is not Float32.
func (a *Array) AsFloat32() []float32 {
	if a.dtype != Float32 {
		panic(fmt.Sprintf("array dtype is %s, not float32", a.dtype))
	}
	return a.data.([]float32)
}

// AsBool returns the flat []bool storage.
// Panics if the array's dtype is not Bool.
func (a *Array) AsBool() []bool {
	if a.dtype != Bool {
		panic(fmt.Sprintf("array dtype is %s, not bool", a.dtype))
	}
	return a.data.([]bool)
}

// Item returns the value of a rank-0 array.
// Panics if the array is not a scalar.
func (a *Array) Item() any {
	if a.Rank() != 0 {
		panic(fmt.Sprintf("Item() only works for scalar arrays, got shape %v", a.shape))
	}
	return a.at(0)
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
//
// Example:
//
//	a, _ := tensor.New2D([2]int{2, 3}, []int32{1, 2, 3, 4, 5, 6})
//	v := a.At(1, 2).(int32) // 6
func (a *Array) At(indices ...int) any {
	if len(indices) != len(a.shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(a.shape), len(indices)))
	}

	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= a.shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, a.shape[i]))
		}
		offset += idx * a.stride[i]
	}
	return a.at(offset)
}

func (a *Array) at(offset int) any {
	switch data := a.data.(type) {
	case []int32:
		return data[offset]
	case []float32:
		return data[offset]
	case []bool:
		return data[offset]
	default:
		panic("unsupported storage")
	}
}

// Bytes packs the elements in their little-endian encoding: 4 bytes per
// int32 or float32, one byte (0 or 1) per bool.
func (a *Array) Bytes() []byte {
	out := make([]byte, a.NumElements()*a.dtype.Size())
	switch data := a.data.(type) {
	case []int32:
		for i, v := range data {
			binary.LittleEndian.PutUint32(out[i*4:], uint32(v))
		}
	case []float32:
		for i, v := range data {
			binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
		}
	case []bool:
		for i, v := range data {
			if v {
				out[i] = 1
			}
		}
	}
	return out
}

// String returns a human-readable representation of the array.
func (a *Array) String() string {
	return fmt.Sprintf("Array[%s]%v", a.dtype, a.shape)
}
