package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/tidwall/jsonc"

	"github.com/born-ml/graphdef/internal/graph"
)

// Compression identifies how a record document is compressed on disk.
type Compression int

// Supported compressions.
const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionGzip
)

var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	gzipMagic = []byte{0x1F, 0x8B}
)

// String returns the compression name.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionGzip:
		return "gzip"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// DetectCompression inspects the leading magic bytes of data.
func DetectCompression(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(data, gzipMagic):
		return CompressionGzip
	default:
		return CompressionNone
	}
}

// Decompress returns the plain document bytes of data.
func Decompress(data []byte) ([]byte, error) {
	switch DetectCompression(data) {
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress zstd: %w", err)
		}
		return out, nil

	case CompressionGzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip: %w", err)
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress gzip: %w", err)
		}
		return out, nil

	default:
		return data, nil
	}
}

// ParseGraph decodes a GraphDef record document.
func ParseGraph(data []byte) (*graph.Graph, error) {
	plain, err := Decompress(data)
	if err != nil {
		return nil, err
	}
	return graph.DecodeGraph(bytes.NewReader(plain))
}

// ParseTensor decodes a single TensorProto record document.
func ParseTensor(data []byte) (*graph.Tensor, error) {
	plain, err := Decompress(data)
	if err != nil {
		return nil, err
	}
	return graph.DecodeTensor(bytes.NewReader(plain))
}

// ReadGraph reads and decodes a GraphDef record document from path.
func ReadGraph(path string) (*graph.Graph, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	g, err := graph.DecodeGraph(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// ReadTensor reads and decodes a single TensorProto record document from path.
func ReadTensor(path string) (*graph.Tensor, error) {
	data, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	t, err := graph.DecodeTensor(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// readDocument returns the decompressed document at path, with JSONC
// comments stripped when the name (minus compression suffixes) ends in .jsonc.
//
//nolint:gosec // G304: Path is provided by user, reading it is the point.
func readDocument(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	data, err := Decompress(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if isJSONC(path) {
		data = jsonc.ToJSON(data)
	}
	return data, nil
}

func isJSONC(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	name = strings.TrimSuffix(name, ".zst")
	name = strings.TrimSuffix(name, ".gz")
	return strings.HasSuffix(name, ".jsonc")
}
