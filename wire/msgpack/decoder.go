package msgpack

import (
	"io"

	vmsgpack "github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"seeded-generator/wire"
)

// Decoder reads MessagePack. Sub-decoders share the underlying stream and
// must be consumed in order.
type Decoder struct {
	dec *vmsgpack.Decoder
}

var _ wire.Decoder = (*Decoder)(nil)

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: vmsgpack.NewDecoder(r)}
}

func (d *Decoder) DecodeBool() (bool, error) { return d.dec.DecodeBool() }
func (d *Decoder) DecodeInt() (int64, error) { return d.dec.DecodeInt64() }
func (d *Decoder) DecodeUint() (uint64, error) { return d.dec.DecodeUint64() }
func (d *Decoder) DecodeFloat() (float64, error) { return d.dec.DecodeFloat64() }
func (d *Decoder) DecodeString() (string, error) { return d.dec.DecodeString() }
func (d *Decoder) DecodeBytes() ([]byte, error) { return d.dec.DecodeBytes() }
func (d *Decoder) DecodeUnit() error { return d.dec.DecodeNil() }
func (d *Decoder) DecodeUnitStruct(string) error { return d.dec.DecodeNil() }
func (d *Decoder) DecodeMap() (wire.MapDecoder, error) { return d.mapping("a map") }

func (d *Decoder) DecodeOption() (wire.Decoder, bool, error) {
	c, err := d.dec.PeekCode()
	if err != nil {
		return nil, false, err
	}

	if c == msgpcode.Nil {
		return nil, false, d.dec.DecodeNil()
	}

	return d, true, nil
}

func (d *Decoder) DecodeNewtypeStruct(string) (wire.Decoder, error) {
	return d, nil
}

func (d *Decoder) DecodeSeq() (wire.SeqDecoder, error) {
	return d.seq("a sequence")
}

func (d *Decoder) DecodeTupleStruct(name string, _ int) (wire.SeqDecoder, error) {
	return d.seq("tuple struct " + name)
}

func (d *Decoder) DecodeStruct(name string, _ []string) (wire.MapDecoder, error) {
	return d.mapping("struct " + name)
}

func (d *Decoder) DecodeEnum(_ string, _ []string, id wire.IdentifierVisitor) (wire.VariantDecoder, error) {
	c, err := d.dec.PeekCode()
	if err != nil {
		return nil, err
	}

	if !isArray(c) {
		if err := d.DecodeIdentifier(id); err != nil {
			return nil, err
		}

		return unitVariant{}, nil
	}

	n, err := d.dec.DecodeArrayLen()
	if err != nil {
		return nil, err
	}

	if n != 2 {
		return nil, wire.InvalidLength(n, "2 elements in enum")
	}

	if err := d.DecodeIdentifier(id); err != nil {
		return nil, err
	}

	return &variantDecoder{d: d}, nil
}

func (d *Decoder) DecodeIdentifier(id wire.IdentifierVisitor) error {
	c, err := d.dec.PeekCode()
	if err != nil {
		return err
	}

	switch {
	case msgpcode.IsString(c):
		s, err := d.dec.DecodeString()
		if err != nil {
			return err
		}

		return id.VisitString(s)
	case msgpcode.IsBin(c):
		b, err := d.dec.DecodeBytes()
		if err != nil {
			return err
		}

		return id.VisitBytes(b)
	default:
		v, err := d.dec.DecodeUint64()
		if err != nil {
			return err
		}

		return id.VisitIndex(v)
	}
}

func (d *Decoder) seq(expected string) (*seqDecoder, error) {
	n, err := d.dec.DecodeArrayLen()
	if err != nil {
		return nil, err
	}

	if n < 0 {
		return nil, wire.InvalidType(wire.Other("nil"), expected)
	}

	return &seqDecoder{d: d, total: n, left: n}, nil
}

func (d *Decoder) mapping(expected string) (*mapDecoder, error) {
	n, err := d.dec.DecodeMapLen()
	if err != nil {
		return nil, err
	}

	if n < 0 {
		return nil, wire.InvalidType(wire.Other("nil"), expected)
	}

	return &mapDecoder{d: d, left: n}, nil
}

func isArray(c byte) bool {
	return msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32
}

type seqDecoder struct {
	d           *Decoder
	total, left int
}

func (s *seqDecoder) Next() (wire.Decoder, bool, error) {
	if s.left == 0 {
		return nil, false, nil
	}

	s.left--

	return s.d, true, nil
}

func (s *seqDecoder) End() error {
	if s.left > 0 {
		return wire.InvalidLength(s.total, "fewer elements in array")
	}

	return nil
}

type mapDecoder struct {
	d    *Decoder
	left int
}

func (m *mapDecoder) NextKey() (wire.Decoder, bool, error) {
	if m.left == 0 {
		return nil, false, nil
	}

	m.left--

	return m.d, true, nil
}

func (m *mapDecoder) NextValue() (wire.Decoder, error) {
	return m.d, nil
}

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
	d *Decoder
}

func (v *variantDecoder) Unit() error {
	return v.d.dec.DecodeNil()
}

func (v *variantDecoder) Newtype() (wire.Decoder, error) {
	return v.d, nil
}

func (v *variantDecoder) Tuple(int) (wire.SeqDecoder, error) {
	return v.d.seq("tuple variant")
}

func (v *variantDecoder) Struct([]string) (wire.MapDecoder, error) {
	return v.d.mapping("struct variant")
}
