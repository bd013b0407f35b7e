// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graphdef_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/graphdef/graphdef"
	"github.com/born-ml/graphdef/tensor"
)

func TestReadAndDecode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	doc := `{"node": {"name": "k", "op": "Const", "attr": {"key": "value", "value": {"tensor": {"dtype": "DT_INT32", "tensor_shape": {"dim": [{"size": 1}, {"size": 2}]}, "tensor_content": "\\001\\000\\000\\000\\377\\377\\377\\377"}}}}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	g, err := graphdef.ReadGraph(path)
	require.NoError(t, err)

	consts, err := graphdef.Constants(g)
	require.NoError(t, err)
	require.Contains(t, consts, "k")
	assert.Equal(t, tensor.Shape{1, 2}, consts["k"].Shape())
	assert.Equal(t, []int32{1, -1}, consts["k"].AsInt32())
}

func TestTensorToArrayErrors(t *testing.T) {
	_, err := graphdef.TensorToArray(&graphdef.Tensor{DType: graphdef.DTInt32, TensorContent: `\001\000`})
	assert.ErrorIs(t, err, graphdef.ErrMisalignedContent)

	_, err = graphdef.TensorToArray(&graphdef.Tensor{DType: graphdef.DataType(7)})
	var typeErr *graphdef.UnsupportedTypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestUnescape(t *testing.T) {
	assert.Equal(t, "AB\t", graphdef.Unescape(`\101\102\t`))
}

func TestLegacyDecoder(t *testing.T) {
	d := graphdef.NewDecoder(nil, graphdef.WithLegacyFloatValues())
	arr, err := d.Tensor(&graphdef.Tensor{DType: graphdef.DTFloat, IntVal: []int32{2}})
	require.NoError(t, err)
	assert.Equal(t, float32(2), arr.Item())
}

func TestWriteSafeTensors(t *testing.T) {
	arr, err := tensor.New1D([1]int{2}, []float32{0.5, -1})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, graphdef.WriteSafeTensors(&buf, map[string]*tensor.Array{"w": arr}, nil))

	size := binary.LittleEndian.Uint64(buf.Bytes()[:8])
	assert.JSONEq(t, `{"w":{"dtype":"F32","shape":[2],"data_offsets":[0,8]}}`, string(buf.Bytes()[8:8+size]))
	assert.Equal(t, arr.Bytes(), buf.Bytes()[8+size:])
}
