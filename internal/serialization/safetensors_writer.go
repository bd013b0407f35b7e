package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/born-ml/graphdef/internal/tensor"
)

// MetadataKey is the reserved header key for free-form string metadata.
const MetadataKey = "__metadata__"

// SafeTensorHeader represents a tensor in the SafeTensors header.
type SafeTensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// WriteSafeTensors writes arrays to w in SafeTensors format.
//
// Tensors are written in alphabetical order by name (SafeTensors requirement).
// Metadata is optional and stored under MetadataKey.
func WriteSafeTensors(w io.Writer, arrays map[string]*tensor.Array, metadata map[string]string) error {
	names := make([]string, 0, len(arrays))
	for name := range arrays {
		if name == MetadataKey {
			return fmt.Errorf("tensor name %q is reserved", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	header := make(map[string]any, len(names)+1)
	if len(metadata) > 0 {
		header[MetadataKey] = metadata
	}

	var currentOffset int64
	for _, name := range names {
		arr := arrays[name]
		size := int64(arr.NumElements() * arr.DType().Size())

		shape := make([]int64, arr.Rank())
		for i, dim := range arr.Shape() {
			shape[i] = int64(dim)
		}

		header[name] = SafeTensorHeader{
			DType:       dtypeToSafeTensors(arr.DType()),
			Shape:       shape,
			DataOffsets: [2]int64{currentOffset, currentOffset + size},
		}
		currentOffset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, name := range names {
		if _, err := w.Write(arrays[name].Bytes()); err != nil {
			return fmt.Errorf("failed to write tensor %s: %w", name, err)
		}
	}
	return nil
}

// dtypeToSafeTensors converts tensor.DataType to SafeTensors dtype string.
func dtypeToSafeTensors(dt tensor.DataType) string {
	switch dt {
	case tensor.Int32:
		return "I32"
	case tensor.Float32:
		return "F32"
	case tensor.Bool:
		return "BOOL"
	default:
		panic(fmt.Sprintf("no SafeTensors dtype for %s", dt))
	}
}
