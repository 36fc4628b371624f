package seeded

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"

	"seeded-generator/wire"
)

var (
	encoderType     = reflect.TypeFor[Encoder]()
	decoderType     = reflect.TypeFor[Decoder]()
	marshalerType   = reflect.TypeFor[wire.Marshaler]()
	unmarshalerType = reflect.TypeFor[wire.Unmarshaler]()
)

// element pairs a seed with one nested value.
type element struct {
	seed any
	v    any
}

func (el element) MarshalWire(e wire.Encoder) error {
	return encode(el.seed, e, el.v)
}

// addressOf returns a pointer to rv, copying it when rv is not addressable.
func addressOf(rv reflect.Value) any {
	if rv.CanAddr() {
		return rv.Addr().Interface()
	}

	p := reflect.New(rv.Type())
	p.Elem().Set(rv)

	return p.Interface()
}

// hasCodec reports whether values of t are handled by a method or a
// registered union rather than by kind.
func hasCodec(t reflect.Type, iface reflect.Type, plain reflect.Type) bool {
	pt := reflect.PointerTo(t)
	if t.Implements(iface) || pt.Implements(iface) || t.Implements(plain) || pt.Implements(plain) {
		return true
	}

	_, ok := lookupUnion(pt)

	return ok
}

func encodeValue(seed any, e wire.Encoder, rv reflect.Value) error {
	t := rv.Type()
	if hasCodec(t, encoderType, marshalerType) {
		return encode(seed, e, addressOf(rv))
	}

	switch kindOf(t) {
	case kindBool:
		return e.EncodeBool(rv.Bool())
	case kindInt:
		return e.EncodeInt(rv.Int())
	case kindUint:
		return e.EncodeUint(rv.Uint())
	case kindFloat:
		return e.EncodeFloat(rv.Float())
	case kindString:
		return e.EncodeString(rv.String())
	case kindBytes:
		return e.EncodeBytes(rv.Bytes())
	case kindSeq, kindArray:
		s, err := e.EncodeSeq(rv.Len())
		if err != nil {
			return err
		}

		for i := range rv.Len() {
			if err := s.Element(element{seed: seed, v: addressOf(rv.Index(i))}); err != nil {
				return err
			}
		}

		return s.End()
	case kindMap:
		return encodeMap(seed, seed, e, rv)
	case kindPointer:
		if rv.IsNil() {
			return e.EncodeNone()
		}

		return encode(seed, e, rv.Interface())
	default:
		return fmt.Errorf("%w: %v", ErrNotEncodable, t)
	}
}

// encodeMap writes the entries of rv, keys with keySeed and values with
// valueSeed. Ordered keys are written sorted.
func encodeMap(keySeed, valueSeed any, e wire.Encoder, rv reflect.Value) error {
	keys := rv.MapKeys()
	if kindOf(rv.Type().Key()).isOrdered() {
		slices.SortFunc(keys, compareKeys)
	}

	m, err := e.EncodeMap(len(keys))
	if err != nil {
		return err
	}

	for _, k := range keys {
		key := element{seed: keySeed, v: addressOf(k)}
		val := element{seed: valueSeed, v: addressOf(rv.MapIndex(k))}

		if err := m.Entry(key, val); err != nil {
			return err
		}
	}

	return m.End()
}

func compareKeys(a, b reflect.Value) int {
	switch kindOf(a.Type()) {
	case kindInt:
		return cmp.Compare(a.Int(), b.Int())
	case kindUint:
		return cmp.Compare(a.Uint(), b.Uint())
	case kindFloat:
		return cmp.Compare(a.Float(), b.Float())
	default:
		return cmp.Compare(a.String(), b.String())
	}
}

// decodeValue decodes into the settable rv.
func decodeValue(seed any, d wire.Decoder, rv reflect.Value) error {
	t := rv.Type()

	switch kindOf(t) {
	case kindBool:
		b, err := d.DecodeBool()
		if err != nil {
			return err
		}

		rv.SetBool(b)
	case kindInt:
		n, err := d.DecodeInt()
		if err != nil {
			return err
		}

		if rv.OverflowInt(n) {
			return wire.InvalidValue(wire.Signed(n), t.String())
		}

		rv.SetInt(n)
	case kindUint:
		n, err := d.DecodeUint()
		if err != nil {
			return err
		}

		if rv.OverflowUint(n) {
			return wire.InvalidValue(wire.Unsigned(n), t.String())
		}

		rv.SetUint(n)
	case kindFloat:
		f, err := d.DecodeFloat()
		if err != nil {
			return err
		}

		rv.SetFloat(f)
	case kindString:
		s, err := d.DecodeString()
		if err != nil {
			return err
		}

		rv.SetString(s)
	case kindBytes:
		b, err := d.DecodeBytes()
		if err != nil {
			return err
		}

		rv.SetBytes(b)
	case kindSeq:
		return decodeSeq(seed, d, rv)
	case kindArray:
		return decodeArray(seed, d, rv)
	case kindMap:
		return decodeMap(seed, seed, d, rv)
	case kindPointer:
		inner, ok, err := d.DecodeOption()
		if err != nil {
			return err
		}

		if !ok {
			rv.SetZero()
			return nil
		}

		p := reflect.New(t.Elem())
		if err := decode(seed, inner, p.Interface()); err != nil {
			return err
		}

		rv.Set(p)
	default:
		return fmt.Errorf("%w: %v", ErrNotDecodable, t)
	}

	return nil
}

func decodeSeq(seed any, d wire.Decoder, rv reflect.Value) error {
	s, err := d.DecodeSeq()
	if err != nil {
		return err
	}

	out := reflect.MakeSlice(rv.Type(), 0, 0)

	for {
		ed, ok, err := s.Next()
		if err != nil {
			return err
		}

		if !ok {
			break
		}

		ev := reflect.New(rv.Type().Elem())
		if err := decode(seed, ed, ev.Interface()); err != nil {
			return err
		}

		out = reflect.Append(out, ev.Elem())
	}

	if err := s.End(); err != nil {
		return err
	}

	rv.Set(out)

	return nil
}

func decodeArray(seed any, d wire.Decoder, rv reflect.Value) error {
	s, err := d.DecodeSeq()
	if err != nil {
		return err
	}

	expected := fmt.Sprintf("an array of length %d", rv.Len())

	for i := range rv.Len() {
		if err := DecodeElementWith(s, i, expected, func(ed wire.Decoder) error {
			return decode(seed, ed, rv.Index(i).Addr().Interface())
		}); err != nil {
			return err
		}
	}

	return s.End()
}

func decodeMap(keySeed, valueSeed any, d wire.Decoder, rv reflect.Value) error {
	m, err := d.DecodeMap()
	if err != nil {
		return err
	}

	t := rv.Type()
	out := reflect.MakeMap(t)

	for {
		kd, ok, err := m.NextKey()
		if err != nil {
			return err
		}

		if !ok {
			break
		}

		k := reflect.New(t.Key())
		if err := decode(keySeed, kd, k.Interface()); err != nil {
			return err
		}

		vd, err := m.NextValue()
		if err != nil {
			return err
		}

		v := reflect.New(t.Elem())
		if err := decode(valueSeed, vd, v.Interface()); err != nil {
			return err
		}

		out.SetMapIndex(k.Elem(), v.Elem())
	}

	rv.Set(out)

	return nil
}
