// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graphdef decodes the tensors of text-format TensorFlow graphs into
// Born shaped arrays.
//
// The text-format parser is not part of this package. Its output, the parsed
// record tree serialized as YAML or JSON, is read with [ReadGraph] or
// [ReadTensor]; tensors are then decoded with [TensorToArray] or, for every
// constant of a graph at once, [Constants].
//
// # Example Usage
//
//	g, err := graphdef.ReadGraph("frozen_model.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	consts, err := graphdef.Constants(g)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(consts["conv1/kernel"].Shape())
//
// # Supported Tensors
//
//   - Element types: DT_INT32, DT_FLOAT, DT_BOOL
//   - Ranks: 0 to 4
//   - Values: int_val / float_val / bool_val, or C-escaped tensor_content
//
// Anything else fails with [ErrUnsupportedType] or [ErrUnsupportedRank].
package graphdef

import (
	"io"
	"log/slog"

	"github.com/born-ml/graphdef/internal/decode"
	"github.com/born-ml/graphdef/internal/escape"
	"github.com/born-ml/graphdef/internal/graph"
	"github.com/born-ml/graphdef/internal/loader"
	"github.com/born-ml/graphdef/internal/serialization"
	"github.com/born-ml/graphdef/internal/tensor"
)

// Record types.
type (
	// Graph is a parsed GraphDef record.
	Graph = graph.Graph
	// Node is a parsed NodeDef record.
	Node = graph.Node
	// Tensor is a parsed TensorProto record.
	Tensor = graph.Tensor
	// TensorShape is a parsed TensorShapeProto record.
	TensorShape = graph.TensorShape
	// DataType is a TensorFlow element type tag.
	DataType = graph.DataType
)

// Supported element types.
const (
	DTInt32 DataType = graph.DTInt32
	DTFloat DataType = graph.DTFloat
	DTBool  DataType = graph.DTBool
)

// Decoding errors.
var (
	ErrUnsupportedType   = decode.ErrUnsupportedType
	ErrUnsupportedRank   = decode.ErrUnsupportedRank
	ErrMisalignedContent = decode.ErrMisalignedContent
)

type (
	// UnsupportedTypeError reports an element type that cannot be decoded.
	UnsupportedTypeError = decode.UnsupportedTypeError
	// UnsupportedRankError reports a tensor with more than four dimensions.
	UnsupportedRankError = decode.UnsupportedRankError
)

// Decoder decodes tensor records with fixed options.
type Decoder = decode.Decoder

// Option configures a Decoder.
type Option = decode.Option

// NewDecoder returns a Decoder logging to logger. A nil logger discards output.
func NewDecoder(logger *slog.Logger, opts ...Option) *Decoder {
	return decode.NewDecoder(logger, opts...)
}

// WithLegacyFloatValues makes DT_FLOAT records read explicit values from int_val.
func WithLegacyFloatValues() Option {
	return decode.WithLegacyFloatValues()
}

// Unescape decodes the C-style escapes of a text-format bytes field.
func Unescape(text string) string {
	return escape.Unescape(text)
}

// TensorToArray decodes a tensor record into a shaped array.
func TensorToArray(t *Tensor) (*tensor.Array, error) {
	return decode.TensorToArray(t)
}

// Constants decodes every Const node of g, keyed by node name.
func Constants(g *Graph) (map[string]*tensor.Array, error) {
	return decode.Constants(g)
}

// ReadGraph reads a GraphDef record document (YAML, JSON, JSONC; optionally
// zstd or gzip compressed).
func ReadGraph(path string) (*Graph, error) {
	return loader.ReadGraph(path)
}

// ReadTensor reads a single TensorProto record document.
func ReadTensor(path string) (*Tensor, error) {
	return loader.ReadTensor(path)
}

// WriteSafeTensors writes arrays to w in SafeTensors format, with optional
// string metadata.
func WriteSafeTensors(w io.Writer, arrays map[string]*tensor.Array, metadata map[string]string) error {
	return serialization.WriteSafeTensors(w, arrays, metadata)
}
