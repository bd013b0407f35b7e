package graph

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when a record document holds no value.
var ErrEmptyDocument = errors.New("empty record document")

// DecodeGraph reads a GraphDef record from a YAML or JSON document.
// Unknown fields are ignored.
func DecodeGraph(r io.Reader) (*Graph, error) {
	g := &Graph{}
	if err := decodeDocument(r, g); err != nil {
		return nil, fmt.Errorf("failed to decode graph: %w", err)
	}
	return g, nil
}

// DecodeTensor reads a single TensorProto record from a YAML or JSON document.
func DecodeTensor(r io.Reader) (*Tensor, error) {
	t := &Tensor{}
	if err := decodeDocument(r, t); err != nil {
		return nil, fmt.Errorf("failed to decode tensor: %w", err)
	}
	return t, nil
}

func decodeDocument(r io.Reader, out any) error {
	if err := yaml.NewDecoder(r).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyDocument
		}
		return err
	}
	return nil
}
