package tensor

import (
	"errors"
	"fmt"
	"math"
)

// Shape represents the dimensions of an array.
type Shape []int

// NumElements returns the total number of elements in the array.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// ErrShapeOverflow is returned when the element count of a shape does not fit in an int.
var ErrShapeOverflow = errors.New("shape element count overflows int")

// Validate checks that every dimension is non-negative and that the element
// count fits in an int, so NumElements never wraps.
// Zero-sized dimensions are allowed: exported graphs carry empty constants.
func (s Shape) Validate() error {
	n := 1
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
		if dim != 0 && n > math.MaxInt/dim {
			return fmt.Errorf("shape %v: %w", []int(s), ErrShapeOverflow)
		}
		n *= dim
	}
	return nil
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}
