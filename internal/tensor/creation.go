package tensor

import "fmt"

// Rank-specific constructors. Each takes the per-dimension sizes as a
// fixed-length tuple so the rank is checked by the compiler, and the flat
// row-major values. The values must fill the shape exactly.

// Scalar creates a rank-0 array from a flat sequence holding exactly one value.
//
// Example:
//
//	s, _ := tensor.Scalar([]float32{3.14})
//	v := s.Item().(float32)
func Scalar[T DType](values []T) (*Array, error) {
	if len(values) != 1 {
		return nil, fmt.Errorf("scalar requires exactly 1 element, got %d: %w", len(values), ErrElementCount)
	}
	return FromSlice(values, Shape{})
}

// New1D creates a rank-1 array.
func New1D[T DType](shape [1]int, values []T) (*Array, error) {
	return FromSlice(values, Shape(shape[:]))
}

// New2D creates a rank-2 array.
//
// Example:
//
//	m, _ := tensor.New2D([2]int{2, 3}, []int32{1, 2, 3, 4, 5, 6})
func New2D[T DType](shape [2]int, values []T) (*Array, error) {
	return FromSlice(values, Shape(shape[:]))
}

// New3D creates a rank-3 array.
func New3D[T DType](shape [3]int, values []T) (*Array, error) {
	return FromSlice(values, Shape(shape[:]))
}

// New4D creates a rank-4 array, e.g. a convolution kernel in HWIO layout.
func New4D[T DType](shape [4]int, values []T) (*Array, error) {
	return FromSlice(values, Shape(shape[:]))
}
