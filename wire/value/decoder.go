package value

import (
	"errors"
	"math"

	"seeded-generator/wire"
)

var errValueBeforeKey = errors.New("value: map value requested before its key")

// Decoder reads a Value tree.
type Decoder struct {
	v Value
}

var _ wire.Decoder = (*Decoder)(nil)

// NewDecoder returns a Decoder reading v.
func NewDecoder(v Value) *Decoder {
	return &Decoder{v: v}
}

// Unmarshal decodes v into u.
func Unmarshal(v Value, u wire.Unmarshaler) error {
	return u.UnmarshalWire(NewDecoder(v))
}

func unexpected(v Value) wire.Unexpected {
	switch v.Kind {
	case KindBool:
		return wire.Bool(v.Bool)
	case KindInt:
		return wire.Signed(v.Int)
	case KindUint:
		return wire.Unsigned(v.Uint)
	case KindFloat:
		return wire.Float(v.Float)
	case KindString:
		return wire.Str(v.Str)
	case KindBytes:
		return wire.Bytes(v.Bytes)
	case KindUnit:
		return wire.Other("unit value")
	case KindNone:
		return wire.Other("null")
	case KindSeq:
		return wire.Other("sequence")
	case KindMap:
		return wire.Other("map")
	default:
		return wire.Other(v.Kind.String())
	}
}

func (d *Decoder) DecodeBool() (bool, error) {
	if d.v.Kind != KindBool {
		return false, wire.InvalidType(unexpected(d.v), "a boolean")
	}

	return d.v.Bool, nil
}

func (d *Decoder) DecodeInt() (int64, error) {
	switch d.v.Kind {
	case KindInt:
		return d.v.Int, nil
	case KindUint:
		if d.v.Uint > math.MaxInt64 {
			return 0, wire.InvalidValue(unexpected(d.v), "i64")
		}

		return int64(d.v.Uint), nil
	default:
		return 0, wire.InvalidType(unexpected(d.v), "an integer")
	}
}

func (d *Decoder) DecodeUint() (uint64, error) {
	switch d.v.Kind {
	case KindUint:
		return d.v.Uint, nil
	case KindInt:
		if d.v.Int < 0 {
			return 0, wire.InvalidValue(unexpected(d.v), "u64")
		}

		return uint64(d.v.Int), nil
	default:
		return 0, wire.InvalidType(unexpected(d.v), "an unsigned integer")
	}
}

func (d *Decoder) DecodeFloat() (float64, error) {
	switch d.v.Kind {
	case KindFloat:
		return d.v.Float, nil
	case KindInt:
		return float64(d.v.Int), nil
	case KindUint:
		return float64(d.v.Uint), nil
	default:
		return 0, wire.InvalidType(unexpected(d.v), "a float")
	}
}

func (d *Decoder) DecodeString() (string, error) {
	if d.v.Kind != KindString {
		return "", wire.InvalidType(unexpected(d.v), "a string")
	}

	return d.v.Str, nil
}

func (d *Decoder) DecodeBytes() ([]byte, error) {
	switch d.v.Kind {
	case KindBytes:
		return append([]byte(nil), d.v.Bytes...), nil
	case KindString:
		return []byte(d.v.Str), nil
	default:
		return nil, wire.InvalidType(unexpected(d.v), "a byte array")
	}
}

func (d *Decoder) DecodeOption() (wire.Decoder, bool, error) {
	if d.v.Kind == KindNone {
		return nil, false, nil
	}

	return d, true, nil
}

func (d *Decoder) DecodeUnit() error {
	if d.v.Kind != KindUnit {
		return wire.InvalidType(unexpected(d.v), "unit")
	}

	return nil
}

func (d *Decoder) DecodeUnitStruct(name string) error {
	if d.v.Kind != KindUnit {
		return wire.InvalidType(unexpected(d.v), "unit struct "+name)
	}

	return nil
}

func (d *Decoder) DecodeNewtypeStruct(string) (wire.Decoder, error) {
	return d, nil
}

func (d *Decoder) DecodeSeq() (wire.SeqDecoder, error) {
	if d.v.Kind != KindSeq {
		return nil, wire.InvalidType(unexpected(d.v), "a sequence")
	}

	return &seqDecoder{items: d.v.Items}, nil
}

func (d *Decoder) DecodeTupleStruct(name string, _ int) (wire.SeqDecoder, error) {
	if d.v.Kind != KindSeq {
		return nil, wire.InvalidType(unexpected(d.v), "tuple struct "+name)
	}

	return &seqDecoder{items: d.v.Items}, nil
}

func (d *Decoder) DecodeMap() (wire.MapDecoder, error) {
	if d.v.Kind != KindMap {
		return nil, wire.InvalidType(unexpected(d.v), "a map")
	}

	return &mapDecoder{entries: d.v.Entries}, nil
}

func (d *Decoder) DecodeStruct(name string, _ []string) (wire.MapDecoder, error) {
	if d.v.Kind != KindMap {
		return nil, wire.InvalidType(unexpected(d.v), "struct "+name)
	}

	return &mapDecoder{entries: d.v.Entries}, nil
}

func (d *Decoder) DecodeEnum(name string, _ []string, id wire.IdentifierVisitor) (wire.VariantDecoder, error) {
	switch d.v.Kind {
	case KindString, KindUint, KindInt, KindBytes:
		if err := d.DecodeIdentifier(id); err != nil {
			return nil, err
		}

		return unitVariant{}, nil
	case KindMap:
		if len(d.v.Entries) != 1 {
			return nil, wire.InvalidValue(wire.Other("map"), "map with a single key")
		}

		e := d.v.Entries[0]
		if err := NewDecoder(e.Key).DecodeIdentifier(id); err != nil {
			return nil, err
		}

		return &variantDecoder{payload: NewDecoder(e.Value)}, nil
	default:
		return nil, wire.InvalidType(unexpected(d.v), "enum "+name)
	}
}

func (d *Decoder) DecodeIdentifier(id wire.IdentifierVisitor) error {
	switch d.v.Kind {
	case KindString:
		return id.VisitString(d.v.Str)
	case KindUint:
		return id.VisitIndex(d.v.Uint)
	case KindInt:
		if d.v.Int < 0 {
			return wire.InvalidValue(unexpected(d.v), "identifier")
		}

		return id.VisitIndex(uint64(d.v.Int))
	case KindBytes:
		return id.VisitBytes(d.v.Bytes)
	default:
		return wire.InvalidType(unexpected(d.v), "identifier")
	}
}

type seqDecoder struct {
	items []Value
	pos   int
}

func (s *seqDecoder) Next() (wire.Decoder, bool, error) {
	if s.pos >= len(s.items) {
		return nil, false, nil
	}

	d := NewDecoder(s.items[s.pos])
	s.pos++

	return d, true, nil
}

func (s *seqDecoder) End() error {
	if s.pos < len(s.items) {
		return wire.InvalidLength(len(s.items), "fewer elements in sequence")
	}

	return nil
}

type mapDecoder struct {
	entries []Entry
	pos     int
	keyRead bool
}

func (m *mapDecoder) NextKey() (wire.Decoder, bool, error) {
	if m.pos >= len(m.entries) {
		return nil, false, nil
	}

	m.keyRead = true

	return NewDecoder(m.entries[m.pos].Key), true, nil
}

func (m *mapDecoder) NextValue() (wire.Decoder, error) {
	if !m.keyRead {
		return nil, errValueBeforeKey
	}

	d := NewDecoder(m.entries[m.pos].Value)
	m.pos++
	m.keyRead = false

	return d, nil
}

// unitVariant is the payload of a discriminant written without a payload.
type unitVariant struct{}

func (unitVariant) Unit() error {
	return nil
}

func (unitVariant) Newtype() (wire.Decoder, error) {
	return nil, wire.InvalidType(wire.Other("unit variant"), "newtype variant")
}

func (unitVariant) Tuple(int) (wire.SeqDecoder, error) {
	return nil, wire.InvalidType(wire.Other("unit variant"), "tuple variant")
}

func (unitVariant) Struct([]string) (wire.MapDecoder, error) {
	return nil, wire.InvalidType(wire.Other("unit variant"), "struct variant")
}

type variantDecoder struct {
	payload *Decoder
}

func (v *variantDecoder) Unit() error {
	return v.payload.DecodeUnit()
}

func (v *variantDecoder) Newtype() (wire.Decoder, error) {
	return v.payload, nil
}

func (v *variantDecoder) Tuple(int) (wire.SeqDecoder, error) {
	return v.payload.DecodeSeq()
}

func (v *variantDecoder) Struct([]string) (wire.MapDecoder, error) {
	return v.payload.DecodeMap()
}
