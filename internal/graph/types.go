package graph

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Repeated is a repeated field that also accepts a single value, which a
// text-format parser produces when the field occurs exactly once.
type Repeated[T any] []T

// UnmarshalYAML decodes a sequence as is and wraps any other node in a
// one-element slice.
func (r *Repeated[T]) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var items []T
		if err := value.Decode(&items); err != nil {
			return err
		}
		*r = items
		return nil
	}

	var item T
	if err := value.Decode(&item); err != nil {
		return err
	}
	*r = Repeated[T]{item}
	return nil
}

// Dim is one dimension of a TensorShapeProto.
type Dim struct {
	Size int64  `yaml:"size"`
	Name string `yaml:"name,omitempty"`
}

// TensorShape is a TensorShapeProto. An absent dim list is a scalar.
type TensorShape struct {
	Dim         Repeated[Dim] `yaml:"dim,omitempty"`
	UnknownRank bool          `yaml:"unknown_rank,omitempty"`
}

// Sizes returns the dimension sizes in order. A size outside the int range
// is an error rather than a truncated value.
func (s *TensorShape) Sizes() ([]int, error) {
	if s == nil {
		return []int{}, nil
	}
	sizes := make([]int, len(s.Dim))
	for i, d := range s.Dim {
		if d.Size < math.MinInt || d.Size > math.MaxInt {
			return nil, fmt.Errorf("dimension %d: size %d out of int range", i, d.Size)
		}
		sizes[i] = int(d.Size)
	}
	return sizes, nil
}

// Tensor is a TensorProto record: element type, shape, and either an explicit
// per-type value list or packed raw bytes in TensorContent.
type Tensor struct {
	DType         DataType          `yaml:"dtype"`
	TensorShape   *TensorShape      `yaml:"tensor_shape,omitempty"`
	VersionNumber int32             `yaml:"version_number,omitempty"`
	TensorContent string            `yaml:"tensor_content,omitempty"` // C-escaped bytes
	IntVal        Repeated[int32]   `yaml:"int_val,omitempty"`
	FloatVal      Repeated[float32] `yaml:"float_val,omitempty"`
	BoolVal       Repeated[bool]    `yaml:"bool_val,omitempty"`
}

// AttrValue is the value half of a NodeDef attr entry. Only the fields
// used by constants and their type/shape annotations are kept.
type AttrValue struct {
	Tensor *Tensor      `yaml:"tensor,omitempty"`
	Type   DataType     `yaml:"type,omitempty"`
	Shape  *TensorShape `yaml:"shape,omitempty"`
	S      string       `yaml:"s,omitempty"`
	I      int64        `yaml:"i,omitempty"`
	F      float32      `yaml:"f,omitempty"`
	B      bool         `yaml:"b,omitempty"`
}

// AttrEntry is one key/value pair of a NodeDef attr map.
type AttrEntry struct {
	Key   string    `yaml:"key"`
	Value AttrValue `yaml:"value"`
}

// Node is a NodeDef record.
type Node struct {
	Name   string              `yaml:"name"`
	Op     string              `yaml:"op"`
	Input  Repeated[string]    `yaml:"input,omitempty"`
	Device string              `yaml:"device,omitempty"`
	Attr   Repeated[AttrEntry] `yaml:"attr,omitempty"`
}

// Attribute returns the attr value stored under key.
func (n *Node) Attribute(key string) (*AttrValue, bool) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			return &n.Attr[i].Value, true
		}
	}
	return nil, false
}

// Versions is a VersionDef record.
type Versions struct {
	Producer    int32 `yaml:"producer,omitempty"`
	MinConsumer int32 `yaml:"min_consumer,omitempty"`
}

// Graph is a GraphDef record.
type Graph struct {
	Node     Repeated[Node] `yaml:"node,omitempty"`
	Versions Versions       `yaml:"versions,omitempty"`
}

// Lookup returns the node with the given name.
func (g *Graph) Lookup(name string) (*Node, bool) {
	for i := range g.Node {
		if g.Node[i].Name == name {
			return &g.Node[i], true
		}
	}
	return nil, false
}
