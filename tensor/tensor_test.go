// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/graphdef/tensor"
)

func TestPublicConstructors(t *testing.T) {
	s, err := tensor.Scalar([]int32{5})
	require.NoError(t, err)
	assert.Equal(t, int32(5), s.Item())

	m, err := tensor.New2D([2]int{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, m.DType())
	assert.Equal(t, tensor.Shape{2, 3}, m.Shape())
	assert.Equal(t, float32(6), m.At(1, 2))

	_, err = tensor.New3D([3]int{1, 2, 2}, []bool{true})
	assert.ErrorIs(t, err, tensor.ErrElementCount)

	nd, err := tensor.FromSlice([]int32{1, 2}, tensor.Shape{1, 1, 1, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 5, nd.Rank())
}
