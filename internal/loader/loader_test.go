package loader

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/graphdef/internal/graph"
)

const tensorYAML = `dtype: DT_INT32
tensor_shape:
  dim:
    - size: 2
tensor_content: '\001\000\000\000\002\000\000\000'
`

const graphJSONC = `{
  // exported by a text-format parser
  "node": [
    {
      "name": "c",
      "op": "Const",
      "attr": [{"key": "value", "value": {"tensor": {"dtype": "DT_BOOL", "bool_val": [true, false],}}}],
    },
  ],
}
`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func zstdBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDetectCompression(t *testing.T) {
	assert.Equal(t, CompressionNone, DetectCompression([]byte("dtype: DT_FLOAT")))
	assert.Equal(t, CompressionNone, DetectCompression(nil))
	assert.Equal(t, CompressionZstd, DetectCompression(zstdBytes(t, []byte("x"))))
	assert.Equal(t, CompressionGzip, DetectCompression(gzipBytes(t, []byte("x"))))
	assert.Equal(t, "zstd", CompressionZstd.String())
	assert.Equal(t, "unknown(9)", Compression(9).String())
}

func TestReadTensor(t *testing.T) {
	for _, tt := range []struct {
		name string
		data []byte
	}{
		{"tensor.yaml", []byte(tensorYAML)},
		{"tensor.yaml.zst", zstdBytes(t, []byte(tensorYAML))},
		{"tensor.yaml.gz", gzipBytes(t, []byte(tensorYAML))},
	} {
		t.Run(tt.name, func(t *testing.T) {
			record, err := ReadTensor(writeFile(t, tt.name, tt.data))
			require.NoError(t, err)
			assert.Equal(t, graph.DTInt32, record.DType)
			sizes, err := record.TensorShape.Sizes()
			require.NoError(t, err)
			assert.Equal(t, []int{2}, sizes)
			assert.Equal(t, `\001\000\000\000\002\000\000\000`, record.TensorContent)
		})
	}
}

func TestReadGraphJSONC(t *testing.T) {
	for _, name := range []string{"graph.jsonc", "graph.JSONC.zst"} {
		data := []byte(graphJSONC)
		if filepath.Ext(name) == ".zst" {
			data = zstdBytes(t, data)
		}

		g, err := ReadGraph(writeFile(t, name, data))
		require.NoError(t, err, name)
		require.Len(t, g.Node, 1)

		attr, ok := g.Node[0].Attribute("value")
		require.True(t, ok)
		assert.Equal(t, graph.Repeated[bool]{true, false}, attr.Tensor.BoolVal)
	}
}

func TestParseTensorCompressed(t *testing.T) {
	record, err := ParseTensor(zstdBytes(t, []byte(tensorYAML)))
	require.NoError(t, err)
	assert.Equal(t, graph.DTInt32, record.DType)

	g, err := ParseGraph(gzipBytes(t, []byte("node: {name: a, op: NoOp}\n")))
	require.NoError(t, err)
	assert.Equal(t, "NoOp", g.Node[0].Op)
}

func TestReadErrors(t *testing.T) {
	_, err := ReadGraph(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := writeFile(t, "bad.yaml.gz", append([]byte{}, gzipMagic...))
	_, err = ReadTensor(bad)
	assert.Error(t, err)

	empty := writeFile(t, "empty.yaml", nil)
	_, err = ReadTensor(empty)
	assert.ErrorIs(t, err, graph.ErrEmptyDocument)
	assert.Contains(t, err.Error(), "empty.yaml")
}
