package decode

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/born-ml/graphdef/internal/graph"
	"github.com/born-ml/graphdef/internal/tensor"
)

// MaxRank is the highest rank a decoded array may have.
const MaxRank = 4

// OpConst is the op of nodes whose value attribute holds a constant tensor.
const OpConst = "Const"

// valueAttr is the attr key of a Const node's tensor.
const valueAttr = "value"

// Option configures a Decoder.
type Option func(*Decoder)

// WithLegacyFloatValues makes DT_FLOAT records read their explicit values
// from int_val instead of float_val, as early graph importers did.
func WithLegacyFloatValues() Option {
	return func(d *Decoder) {
		d.legacyFloatValues = true
	}
}

// Decoder decodes tensor records. It is immutable once built and safe for
// concurrent use.
type Decoder struct {
	logger            *slog.Logger
	legacyFloatValues bool
}

// NewDecoder returns a Decoder logging to logger. A nil logger discards output.
func NewDecoder(logger *slog.Logger, opts ...Option) *Decoder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	d := &Decoder{logger: logger}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDecoder = NewDecoder(nil)

// TensorToArray decodes a tensor record with default options.
func TensorToArray(t *graph.Tensor) (*tensor.Array, error) {
	return defaultDecoder.Tensor(t)
}

// Constants decodes the value of every Const node in g with default options.
func Constants(g *graph.Graph) (map[string]*tensor.Array, error) {
	return defaultDecoder.Constants(g)
}

// Tensor decodes a single tensor record into a shaped array.
//
// The element type is checked before any content is read, so an unsupported
// type never reaches byte reinterpretation.
func (d *Decoder) Tensor(t *graph.Tensor) (*tensor.Array, error) {
	if t == nil {
		return nil, errors.New("nil tensor record")
	}
	shape, err := t.TensorShape.Sizes()
	if err != nil {
		return nil, fmt.Errorf("tensor shape: %w", err)
	}

	switch t.DType {
	case graph.DTInt32:
		values := []int32(t.IntVal)
		if len(values) == 0 {
			if values, err = contentInt32(t.TensorContent); err != nil {
				return nil, err
			}
		}
		return toArray(shape, values)

	case graph.DTFloat:
		values := d.floatValues(t)
		if len(values) == 0 {
			if values, err = contentFloat32(t.TensorContent); err != nil {
				return nil, err
			}
		}
		return toArray(shape, values)

	case graph.DTBool:
		values := []bool(t.BoolVal)
		if len(values) == 0 {
			values = contentBool(t.TensorContent)
		}
		return toArray(shape, values)

	default:
		return nil, &UnsupportedTypeError{DType: t.DType}
	}
}

// floatValues returns the explicit values of a DT_FLOAT record.
func (d *Decoder) floatValues(t *graph.Tensor) []float32 {
	if !d.legacyFloatValues {
		return t.FloatVal
	}
	values := make([]float32, len(t.IntVal))
	for i, v := range t.IntVal {
		values[i] = float32(v)
	}
	return values
}

// Constants decodes the value attribute of every Const node in g, keyed by
// node name. The first failing node aborts decoding.
func (d *Decoder) Constants(g *graph.Graph) (map[string]*tensor.Array, error) {
	out := make(map[string]*tensor.Array)
	for i := range g.Node {
		node := &g.Node[i]
		if node.Op != OpConst {
			continue
		}

		attr, ok := node.Attribute(valueAttr)
		if !ok || attr.Tensor == nil {
			return nil, fmt.Errorf("const node %q has no value tensor", node.Name)
		}

		arr, err := d.Tensor(attr.Tensor)
		if err != nil {
			return nil, fmt.Errorf("const node %q: %w", node.Name, err)
		}
		d.logger.Debug("decoded constant",
			"node", node.Name,
			"dtype", arr.DType(),
			"shape", arr.Shape(),
		)
		out[node.Name] = arr
	}
	return out, nil
}

// toArray dispatches on rank to the fixed-rank constructors.
func toArray[T tensor.DType](shape []int, values []T) (*tensor.Array, error) {
	switch len(shape) {
	case 0:
		return tensor.Scalar(values)
	case 1:
		return tensor.New1D([1]int(shape), values)
	case 2:
		return tensor.New2D([2]int(shape), values)
	case 3:
		return tensor.New3D([3]int(shape), values)
	case 4:
		return tensor.New4D([4]int(shape), values)
	default:
		return nil, &UnsupportedRankError{Shape: shape}
	}
}
