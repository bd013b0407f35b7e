package decode

import (
	"errors"
	"fmt"

	"github.com/born-ml/graphdef/internal/graph"
)

// Common errors.
var (
	ErrUnsupportedType   = errors.New("unsupported tensor data type")
	ErrUnsupportedRank   = errors.New("unsupported tensor rank")
	ErrMisalignedContent = errors.New("tensor content length is not a multiple of the element size")
)

// UnsupportedTypeError reports a tensor whose element type cannot be decoded.
type UnsupportedTypeError struct {
	DType graph.DataType
}

// Error implements the error interface.
func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("tensor data type: %s is not supported", e.DType)
}

// Is matches ErrUnsupportedType.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// UnsupportedRankError reports a tensor with more than MaxRank dimensions.
type UnsupportedRankError struct {
	Shape []int
}

// Error implements the error interface.
func (e *UnsupportedRankError) Error() string {
	return fmt.Sprintf("dimension higher than %d is not supported: rank %d (shape %v)", MaxRank, len(e.Shape), e.Shape)
}

// Is matches ErrUnsupportedRank.
func (e *UnsupportedRankError) Is(target error) bool {
	return target == ErrUnsupportedRank
}
