package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/graphdef/internal/tensor"
)

// readSafeTensors splits a SafeTensors blob into its raw header and data section.
func readSafeTensors(t *testing.T, blob []byte) (map[string]json.RawMessage, []byte) {
	t.Helper()
	require.GreaterOrEqual(t, len(blob), 8)
	size := binary.LittleEndian.Uint64(blob[:8])
	require.LessOrEqual(t, 8+size, uint64(len(blob)))

	var header map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(blob[8:8+size], &header))
	return header, blob[8+size:]
}

func TestWriteSafeTensors(t *testing.T) {
	weights, err := tensor.New2D([2]int{2, 2}, []float32{1, 2, 3, 4})
	require.NoError(t, err)
	axis, err := tensor.Scalar([]int32{-1})
	require.NoError(t, err)
	mask, err := tensor.New1D([1]int{3}, []bool{true, false, true})
	require.NoError(t, err)

	var buf bytes.Buffer
	err = WriteSafeTensors(&buf, map[string]*tensor.Array{
		"weights": weights,
		"axis":    axis,
		"mask":    mask,
	}, map[string]string{"source": "graph.yaml"})
	require.NoError(t, err)

	header, data := readSafeTensors(t, buf.Bytes())
	require.Len(t, header, 4)

	var meta map[string]string
	require.NoError(t, json.Unmarshal(header[MetadataKey], &meta))
	assert.Equal(t, "graph.yaml", meta["source"])

	entry := func(name string) SafeTensorHeader {
		var h SafeTensorHeader
		require.NoError(t, json.Unmarshal(header[name], &h))
		return h
	}

	// Alphabetical: axis (4 bytes), mask (3 bytes), weights (16 bytes).
	assert.Equal(t, SafeTensorHeader{DType: "I32", Shape: []int64{}, DataOffsets: [2]int64{0, 4}}, entry("axis"))
	assert.Equal(t, SafeTensorHeader{DType: "BOOL", Shape: []int64{3}, DataOffsets: [2]int64{4, 7}}, entry("mask"))
	assert.Equal(t, SafeTensorHeader{DType: "F32", Shape: []int64{2, 2}, DataOffsets: [2]int64{7, 23}}, entry("weights"))

	require.Len(t, data, 23)
	assert.Equal(t, axis.Bytes(), data[0:4])
	assert.Equal(t, []byte{1, 0, 1}, data[4:7])
	assert.Equal(t, weights.Bytes(), data[7:23])
}

func TestWriteSafeTensorsNoMetadata(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSafeTensors(&buf, map[string]*tensor.Array{}, nil))

	header, data := readSafeTensors(t, buf.Bytes())
	assert.Empty(t, header)
	assert.Empty(t, data)
}

func TestWriteSafeTensorsReservedName(t *testing.T) {
	s, err := tensor.Scalar([]bool{true})
	require.NoError(t, err)

	var buf bytes.Buffer
	err = WriteSafeTensors(&buf, map[string]*tensor.Array{MetadataKey: s}, nil)
	assert.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteSafeTensorsWriteError(t *testing.T) {
	s, err := tensor.Scalar([]float32{1})
	require.NoError(t, err)

	err = WriteSafeTensors(failingWriter{}, map[string]*tensor.Array{"s": s}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
