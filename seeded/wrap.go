package seeded

import (
	"seeded-generator/wire"
)

// Seeded pairs a seed with a value so the pair can be handed to any call
// site expecting a wire.Marshaler.
type Seeded[Q any] struct {
	Seed  *Q
	Value any
}

// New pairs seed with v, usually the address of the value to encode.
func New[Q any](seed *Q, v any) Seeded[Q] {
	return Seeded[Q]{Seed: seed, Value: v}
}

func (s Seeded[Q]) MarshalWire(e wire.Encoder) error {
	return encode(s.Seed, e, s.Value)
}

// Target pairs a seed with a decode target so the pair can be handed to any
// call site expecting a wire.Unmarshaler.
type Target[Q any] struct {
	Seed  *Q
	Value any
}

// Into pairs seed with the pointer v.
func Into[Q any](seed *Q, v any) Target[Q] {
	return Target[Q]{Seed: seed, Value: v}
}

func (t Target[Q]) UnmarshalWire(d wire.Decoder) error {
	return decode(t.Seed, d, t.Value)
}

// MarshalFunc adapts a function to wire.Marshaler.
type MarshalFunc func(e wire.Encoder) error

func (f MarshalFunc) MarshalWire(e wire.Encoder) error {
	return f(e)
}

// UnmarshalFunc adapts a function to wire.Unmarshaler.
type UnmarshalFunc func(d wire.Decoder) error

func (f UnmarshalFunc) UnmarshalWire(d wire.Decoder) error {
	return f(d)
}

// DecodeElement decodes the next element of s into v. A sequence that ends
// early fails with an invalid length error at index.
func DecodeElement[Q any](seed *Q, s wire.SeqDecoder, index int, expected string, v any) error {
	return DecodeElementWith(s, index, expected, func(d wire.Decoder) error {
		return decode(seed, d, v)
	})
}

// DecodeElementWith is DecodeElement with a custom routine.
func DecodeElementWith(s wire.SeqDecoder, index int, expected string, fn func(d wire.Decoder) error) error {
	d, ok, err := s.Next()
	if err != nil {
		return err
	}

	if !ok {
		return wire.InvalidLength(index, expected)
	}

	return fn(d)
}

// DecodeValue decodes the value following the key just read from m into v.
func DecodeValue[Q any](seed *Q, m wire.MapDecoder, v any) error {
	return DecodeValueWith(m, func(d wire.Decoder) error {
		return decode(seed, d, v)
	})
}

// DecodeValueWith is DecodeValue with a custom routine.
func DecodeValueWith(m wire.MapDecoder, fn func(d wire.Decoder) error) error {
	d, err := m.NextValue()
	if err != nil {
		return err
	}

	return fn(d)
}
