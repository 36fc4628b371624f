package value

import (
	"seeded-generator/wire"
)

// Encoder builds a Value tree.
type Encoder struct {
	out *Value
}

var _ wire.Encoder = (*Encoder)(nil)

// NewEncoder returns an Encoder writing into a fresh tree.
func NewEncoder() *Encoder {
	return &Encoder{out: new(Value)}
}

// Value returns the tree built so far.
func (e *Encoder) Value() Value {
	return *e.out
}

// Marshal encodes m into a tree.
func Marshal(m wire.Marshaler) (Value, error) {
	e := NewEncoder()
	if err := m.MarshalWire(e); err != nil {
		return Value{}, err
	}

	return e.Value(), nil
}

func (e *Encoder) set(v Value) error {
	*e.out = v
	return nil
}

func (e *Encoder) EncodeBool(v bool) error { return e.set(Bool(v)) }
func (e *Encoder) EncodeInt(v int64) error { return e.set(Int(v)) }
func (e *Encoder) EncodeUint(v uint64) error { return e.set(Uint(v)) }
func (e *Encoder) EncodeFloat(v float64) error { return e.set(Float(v)) }
func (e *Encoder) EncodeString(v string) error { return e.set(String(v)) }
func (e *Encoder) EncodeNone() error { return e.set(None()) }
func (e *Encoder) EncodeUnit() error { return e.set(Unit()) }
func (e *Encoder) EncodeUnitStruct(string) error { return e.set(Unit()) }

func (e *Encoder) EncodeBytes(v []byte) error {
	return e.set(Bytes(append([]byte(nil), v...)))
}

// EncodeSome writes the inner value directly: presence is implied by the
// node not being None.
func (e *Encoder) EncodeSome(v wire.Marshaler) error {
	return v.MarshalWire(e)
}

func (e *Encoder) EncodeUnitVariant(_ string, _ uint32, variant string) error {
	return e.set(String(variant))
}

func (e *Encoder) EncodeNewtypeStruct(_ string, v wire.Marshaler) error {
	return v.MarshalWire(e)
}

func (e *Encoder) EncodeNewtypeVariant(_ string, _ uint32, variant string, v wire.Marshaler) error {
	inner, err := Marshal(v)
	if err != nil {
		return err
	}

	return e.set(Map(Named(variant, inner)))
}

func (e *Encoder) EncodeSeq(n int) (wire.SeqEncoder, error) {
	return newSeqEncoder(e.out, n, nil), nil
}

func (e *Encoder) EncodeTupleStruct(_ string, n int) (wire.SeqEncoder, error) {
	return newSeqEncoder(e.out, n, nil), nil
}

func (e *Encoder) EncodeTupleVariant(_ string, _ uint32, variant string, n int) (wire.SeqEncoder, error) {
	return newSeqEncoder(e.out, n, tagged(variant)), nil
}

func (e *Encoder) EncodeMap(n int) (wire.MapEncoder, error) {
	return &mapEncoder{out: e.out, entries: make([]Entry, 0, max(n, 0))}, nil
}

func (e *Encoder) EncodeStruct(_ string, n int) (wire.StructEncoder, error) {
	return &structEncoder{out: e.out, entries: make([]Entry, 0, max(n, 0))}, nil
}

func (e *Encoder) EncodeStructVariant(_ string, _ uint32, variant string, n int) (wire.StructEncoder, error) {
	return &structEncoder{out: e.out, entries: make([]Entry, 0, max(n, 0)), wrap: tagged(variant)}, nil
}

func tagged(variant string) func(Value) Value {
	return func(v Value) Value {
		return Map(Named(variant, v))
	}
}

type seqEncoder struct {
	out   *Value
	items []Value
	wrap  func(Value) Value
}

func newSeqEncoder(out *Value, n int, wrap func(Value) Value) *seqEncoder {
	return &seqEncoder{out: out, items: make([]Value, 0, max(n, 0)), wrap: wrap}
}

func (s *seqEncoder) Element(v wire.Marshaler) error {
	item, err := Marshal(v)
	if err != nil {
		return err
	}

	s.items = append(s.items, item)

	return nil
}

func (s *seqEncoder) End() error {
	v := Seq(s.items...)
	if s.wrap != nil {
		v = s.wrap(v)
	}

	*s.out = v

	return nil
}

type mapEncoder struct {
	out     *Value
	entries []Entry
}

func (m *mapEncoder) Entry(k, v wire.Marshaler) error {
	key, err := Marshal(k)
	if err != nil {
		return err
	}

	val, err := Marshal(v)
	if err != nil {
		return err
	}

	m.entries = append(m.entries, Pair(key, val))

	return nil
}

func (m *mapEncoder) End() error {
	*m.out = Map(m.entries...)
	return nil
}

type structEncoder struct {
	out     *Value
	entries []Entry
	wrap    func(Value) Value
}

func (s *structEncoder) Field(_ int, name string, v wire.Marshaler) error {
	val, err := Marshal(v)
	if err != nil {
		return err
	}

	s.entries = append(s.entries, Named(name, val))

	return nil
}

func (s *structEncoder) Skip(int, string) error {
	return nil
}

func (s *structEncoder) End() error {
	v := Map(s.entries...)
	if s.wrap != nil {
		v = s.wrap(v)
	}

	*s.out = v

	return nil
}
