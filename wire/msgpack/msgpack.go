// Package msgpack is a compact wire format on top of MessagePack.
//
// Struct fields are keyed by their numeric index and union arms are tagged by
// their zero-based arm index, so names never reach the wire. Layout:
//
//	unit, unit struct, none      nil
//	some(v), newtype struct(v)   v
//	unit variant                 index
//	newtype variant              [index, v]
//	tuple, tuple struct, seq     [v0, v1, ...]
//	tuple variant                [index, [v0, v1, ...]]
//	map                          {k: v, ...}
//	struct                       {fieldIndex: v, ...}
//	struct variant               [index, {fieldIndex: v, ...}]
//
// Decoding accepts text and binary identifiers as well, so data keyed by name
// is still readable.
package msgpack

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	vmsgpack "github.com/vmihailenco/msgpack/v5"

	"seeded-generator/wire"
)

var errUnknownLength = errors.New("msgpack: compound values need a known length")

// Marshal encodes m to MessagePack bytes.
func Marshal(m wire.Marshaler) ([]byte, error) {
	var buf bytes.Buffer
	if err := m.MarshalWire(NewEncoder(&buf)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Unmarshal decodes MessagePack bytes into u.
func Unmarshal(data []byte, u wire.Unmarshaler) error {
	return u.UnmarshalWire(NewDecoder(bytes.NewReader(data)))
}

// Encoder writes MessagePack.
type Encoder struct {
	enc *vmsgpack.Encoder
}

var _ wire.Encoder = (*Encoder)(nil)

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: vmsgpack.NewEncoder(w)}
}

func (e *Encoder) EncodeBool(v bool) error { return e.enc.EncodeBool(v) }
func (e *Encoder) EncodeInt(v int64) error { return e.enc.EncodeInt(v) }
func (e *Encoder) EncodeUint(v uint64) error { return e.enc.EncodeUint(v) }
func (e *Encoder) EncodeFloat(v float64) error { return e.enc.EncodeFloat64(v) }
func (e *Encoder) EncodeString(v string) error { return e.enc.EncodeString(v) }
func (e *Encoder) EncodeBytes(v []byte) error { return e.enc.EncodeBytes(v) }
func (e *Encoder) EncodeNone() error { return e.enc.EncodeNil() }
func (e *Encoder) EncodeUnit() error { return e.enc.EncodeNil() }
func (e *Encoder) EncodeUnitStruct(string) error { return e.enc.EncodeNil() }

func (e *Encoder) EncodeSome(v wire.Marshaler) error {
	return v.MarshalWire(e)
}

func (e *Encoder) EncodeUnitVariant(_ string, index uint32, _ string) error {
	return e.enc.EncodeUint(uint64(index))
}

func (e *Encoder) EncodeNewtypeStruct(_ string, v wire.Marshaler) error {
	return v.MarshalWire(e)
}

func (e *Encoder) EncodeNewtypeVariant(_ string, index uint32, _ string, v wire.Marshaler) error {
	if err := e.variantHeader(index); err != nil {
		return err
	}

	return v.MarshalWire(e)
}

func (e *Encoder) EncodeSeq(n int) (wire.SeqEncoder, error) {
	return e.seq(n)
}

func (e *Encoder) EncodeTupleStruct(_ string, n int) (wire.SeqEncoder, error) {
	return e.seq(n)
}

func (e *Encoder) EncodeTupleVariant(_ string, index uint32, _ string, n int) (wire.SeqEncoder, error) {
	if err := e.variantHeader(index); err != nil {
		return nil, err
	}

	return e.seq(n)
}

func (e *Encoder) EncodeMap(n int) (wire.MapEncoder, error) {
	if n < 0 {
		return nil, errUnknownLength
	}

	if err := e.enc.EncodeMapLen(n); err != nil {
		return nil, err
	}

	return &mapEncoder{e: e, want: n}, nil
}

func (e *Encoder) EncodeStruct(_ string, n int) (wire.StructEncoder, error) {
	return e.structure(n)
}

func (e *Encoder) EncodeStructVariant(_ string, index uint32, _ string, n int) (wire.StructEncoder, error) {
	if err := e.variantHeader(index); err != nil {
		return nil, err
	}

	return e.structure(n)
}

func (e *Encoder) variantHeader(index uint32) error {
	if err := e.enc.EncodeArrayLen(2); err != nil {
		return err
	}

	return e.enc.EncodeUint(uint64(index))
}

func (e *Encoder) seq(n int) (*seqEncoder, error) {
	if n < 0 {
		return nil, errUnknownLength
	}

	if err := e.enc.EncodeArrayLen(n); err != nil {
		return nil, err
	}

	return &seqEncoder{e: e, want: n}, nil
}

func (e *Encoder) structure(n int) (*structEncoder, error) {
	if n < 0 {
		return nil, errUnknownLength
	}

	if err := e.enc.EncodeMapLen(n); err != nil {
		return nil, err
	}

	return &structEncoder{e: e, want: n}, nil
}

func countMismatch(what string, got, want int) error {
	if got == want {
		return nil
	}

	return fmt.Errorf("msgpack: %s declared %d entries, wrote %d", what, want, got)
}

type seqEncoder struct {
	e         *Encoder
	want, got int
}

func (s *seqEncoder) Element(v wire.Marshaler) error {
	s.got++
	return v.MarshalWire(s.e)
}

func (s *seqEncoder) End() error {
	return countMismatch("sequence", s.got, s.want)
}

type mapEncoder struct {
	e         *Encoder
	want, got int
}

func (m *mapEncoder) Entry(k, v wire.Marshaler) error {
	m.got++

	if err := k.MarshalWire(m.e); err != nil {
		return err
	}

	return v.MarshalWire(m.e)
}

func (m *mapEncoder) End() error {
	return countMismatch("map", m.got, m.want)
}

type structEncoder struct {
	e         *Encoder
	want, got int
}

func (s *structEncoder) Field(index int, _ string, v wire.Marshaler) error {
	s.got++

	if err := s.e.enc.EncodeUint(uint64(index)); err != nil {
		return err
	}

	return v.MarshalWire(s.e)
}

func (s *structEncoder) Skip(int, string) error {
	return nil
}

func (s *structEncoder) End() error {
	return countMismatch("struct", s.got, s.want)
}
