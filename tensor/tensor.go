// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public shaped array types returned by graphdef.
//
// The package defines:
//   - Array: shaped, typed multidimensional array in row-major order
//   - Shape, DataType: core type definitions
//   - Scalar, New1D ... New4D: fixed-rank constructors
//
// Example:
//
//	m, err := tensor.New2D([2]int{2, 3}, []float32{1, 2, 3, 4, 5, 6})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v := m.At(1, 2).(float32) // 6
package tensor

import (
	"github.com/born-ml/graphdef/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for array element types.
// Supported types: int32, float32, bool.
type DType = tensor.DType

// DataType represents the element type of an array.
type DataType = tensor.DataType

// Data type constants.
const (
	Int32   DataType = tensor.Int32
	Float32 DataType = tensor.Float32
	Bool    DataType = tensor.Bool
)

// Shape represents the dimensions of an array.
// Example: Shape{2, 3, 4} represents a 3D array with dimensions 2×3×4.
type Shape = tensor.Shape

// Array is a shaped, typed multidimensional array.
type Array = tensor.Array

// Shape errors.
var (
	// ErrElementCount is returned when values do not fill the shape exactly.
	ErrElementCount = tensor.ErrElementCount
	// ErrShapeOverflow is returned when a shape's element count does not fit in an int.
	ErrShapeOverflow = tensor.ErrShapeOverflow
)

// Scalar creates a rank-0 array from a sequence holding exactly one value.
func Scalar[T DType](values []T) (*Array, error) {
	return tensor.Scalar(values)
}

// New1D creates a rank-1 array.
func New1D[T DType](shape [1]int, values []T) (*Array, error) {
	return tensor.New1D(shape, values)
}

// New2D creates a rank-2 array.
func New2D[T DType](shape [2]int, values []T) (*Array, error) {
	return tensor.New2D(shape, values)
}

// New3D creates a rank-3 array.
func New3D[T DType](shape [3]int, values []T) (*Array, error) {
	return tensor.New3D(shape, values)
}

// New4D creates a rank-4 array.
func New4D[T DType](shape [4]int, values []T) (*Array, error) {
	return tensor.New4D(shape, values)
}

// FromSlice creates an array of any rank from a flat row-major slice.
func FromSlice[T DType](values []T, shape Shape) (*Array, error) {
	return tensor.FromSlice(values, shape)
}
