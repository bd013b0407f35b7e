// Package codec encodes decoded arrays for output: deterministic CBOR
// records and content digests.
package codec

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/zeebo/blake3"

	"github.com/born-ml/graphdef/internal/tensor"
)

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2), so the same
// array always produces identical bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
}

// Record is the CBOR wire form of a named array.
// Exactly one of the value fields is set, matching DType.
type Record struct {
	Name    string    `cbor:"name"`
	DType   string    `cbor:"dtype"`
	Shape   []int     `cbor:"shape"`
	Int32   []int32   `cbor:"int32,omitempty"`
	Float32 []float32 `cbor:"float32,omitempty"`
	Bool    []bool    `cbor:"bool,omitempty"`
}

// NewRecord builds the wire form of a.
func NewRecord(name string, a *tensor.Array) Record {
	r := Record{
		Name:  name,
		DType: a.DType().String(),
		Shape: a.Shape().Clone(),
	}
	switch a.DType() {
	case tensor.Int32:
		r.Int32 = a.AsInt32()
	case tensor.Float32:
		r.Float32 = a.AsFloat32()
	case tensor.Bool:
		r.Bool = a.AsBool()
	}
	return r
}

// Encode returns the deterministic CBOR encoding of a named array.
func Encode(name string, a *tensor.Array) ([]byte, error) {
	data, err := encMode.Marshal(NewRecord(name, a))
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", name, err)
	}
	return data, nil
}

// EncodeAll returns the deterministic CBOR encoding of a list of named arrays.
func EncodeAll(records []Record) ([]byte, error) {
	data, err := encMode.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encoding %d records: %w", len(records), err)
	}
	return data, nil
}

// Decode parses a CBOR record produced by Encode.
func Decode(data []byte) (Record, error) {
	var r Record
	if err := cbor.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("decoding record: %w", err)
	}
	return r, nil
}

// Digest returns the hex BLAKE3 digest of a's dtype, shape and
// little-endian element bytes. Equal arrays have equal digests.
func Digest(a *tensor.Array) string {
	hasher := blake3.New()

	var word [8]byte
	binary.LittleEndian.PutUint64(word[:], uint64(a.DType()))
	hasher.Write(word[:])
	binary.LittleEndian.PutUint64(word[:], uint64(a.Rank()))
	hasher.Write(word[:])
	for _, dim := range a.Shape() {
		binary.LittleEndian.PutUint64(word[:], uint64(dim))
		hasher.Write(word[:])
	}

	hasher.Write(a.Bytes())
	return hex.EncodeToString(hasher.Sum(nil))
}
