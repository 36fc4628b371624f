package seeded

import (
	"seeded-generator/wire"
)

// Option is a value that may be absent. An absent value is written as the
// wire's none; a present one as the value itself.
type Option[T any] struct {
	Value T
	Valid bool
}

// Some returns a present Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{Value: v, Valid: true}
}

// None returns an absent Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.Value, o.Valid
}

func (o *Option[T]) EncodeSeeded(seed any, e wire.Encoder) error {
	if !o.Valid {
		return e.EncodeNone()
	}

	return e.EncodeSome(element{seed: seed, v: &o.Value})
}

func (o *Option[T]) DecodeSeeded(seed any, d wire.Decoder) error {
	inner, ok, err := d.DecodeOption()
	if err != nil {
		return err
	}

	if !ok {
		*o = Option[T]{}
		return nil
	}

	var v T
	if err := decode(seed, inner, &v); err != nil {
		return err
	}

	*o = Some(v)

	return nil
}
