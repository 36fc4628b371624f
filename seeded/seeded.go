package seeded

import (
	"errors"
	"fmt"
	"reflect"

	"seeded-generator/wire"
)

// Encoder is implemented by values that encode themselves with a seed.
type Encoder interface {
	EncodeSeeded(seed any, e wire.Encoder) error
}

// Decoder is implemented by pointers that decode into their target with a
// seed.
type Decoder interface {
	DecodeSeeded(seed any, d wire.Decoder) error
}

var (
	ErrUnsupportedSeed  = errors.New("seeded: unsupported seed type")
	ErrNotEncodable     = errors.New("seeded: value cannot be encoded")
	ErrNotDecodable     = errors.New("seeded: value cannot be decoded")
	ErrUnsatisfiedBound = errors.New("seeded: unsatisfied bound")
	ErrNilUnion         = errors.New("seeded: nil union value")
	ErrUnknownArm       = errors.New("seeded: union holds a type that is not an arm")
)

// UnsupportedSeedError is returned by a seeded implementation handed a seed
// type it was not generated for.
type UnsupportedSeedError struct {
	Type reflect.Type
	Seed reflect.Type
}

func (e *UnsupportedSeedError) Error() string {
	return fmt.Sprintf("seeded: %v does not support seed %v", e.Type, e.Seed)
}

func (e *UnsupportedSeedError) Unwrap() error {
	return ErrUnsupportedSeed
}

// UnsupportedSeed builds the error returned for an unknown seed type.
func UnsupportedSeed(v, seed any) error {
	return &UnsupportedSeedError{Type: reflect.TypeOf(v), Seed: reflect.TypeOf(seed)}
}

// NilUnion reports an attempt to encode a union holding no arm.
func NilUnion(name string) error {
	return fmt.Errorf("%w: %s", ErrNilUnion, name)
}

// UnknownArm reports a union holding a value of a type that is not one of
// its arms, e.g. a pointer to an arm stored by value.
func UnknownArm(name string, v any) error {
	if v == nil {
		return NilUnion(name)
	}

	return fmt.Errorf("%w: %s holds %T", ErrUnknownArm, name, v)
}

// Encode writes v with the given seed. Pointers are followed: v is usually
// the address of the value to encode.
func Encode[Q any](seed *Q, e wire.Encoder, v any) error {
	return encode(seed, e, v)
}

// Decode reads into v, which must be a non-nil pointer, with the given seed.
func Decode[Q any](seed *Q, d wire.Decoder, v any) error {
	return decode(seed, d, v)
}

// rejects reports whether err is v's own refusal of the seed, as opposed to
// a refusal somewhere below it.
func rejects(err error, v any) bool {
	var use *UnsupportedSeedError
	return errors.As(err, &use) && use.Type == reflect.TypeOf(v)
}

func encode(seed any, e wire.Encoder, v any) error {
	if v == nil {
		return fmt.Errorf("%w: nil", ErrNotEncodable)
	}

	if enc, ok := v.(Encoder); ok {
		err := enc.EncodeSeeded(seed, e)
		if err == nil || !rejects(err, v) {
			return err
		}

		if m, ok := v.(wire.Marshaler); ok {
			return m.MarshalWire(e)
		}

		return err
	}

	if c, ok := lookupUnion(reflect.TypeOf(v)); ok && c.encode != nil {
		return c.encode(v, seed, e)
	}

	if m, ok := v.(wire.Marshaler); ok {
		return m.MarshalWire(e)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return e.EncodeNone()
		}

		return encodeValue(seed, e, rv.Elem())
	}

	return encodeValue(seed, e, rv)
}

func decode(seed any, d wire.Decoder, v any) error {
	if dec, ok := v.(Decoder); ok {
		err := dec.DecodeSeeded(seed, d)
		if err == nil || !rejects(err, v) {
			return err
		}

		if u, ok := v.(wire.Unmarshaler); ok {
			return u.UnmarshalWire(d)
		}

		return err
	}

	if c, ok := lookupUnion(reflect.TypeOf(v)); ok && c.decode != nil {
		return c.decode(v, seed, d)
	}

	if u, ok := v.(wire.Unmarshaler); ok {
		return u.UnmarshalWire(d)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target %T is not a non-nil pointer", ErrNotDecodable, v)
	}

	return decodeValue(seed, d, rv.Elem())
}
