package seeded

import (
	"fmt"
	"reflect"

	"seeded-generator/wire"
)

// IsNone reports whether an Option is absent. Use it with
// skip_serializing_if.
func IsNone[T any](o *Option[T]) bool {
	return !o.Valid
}

// IsNil reports whether a pointer field is nil.
func IsNil[T any](p **T) bool {
	return *p == nil
}

// IsZero reports whether a comparable field holds its zero value.
func IsZero[T comparable](v *T) bool {
	var zero T
	return *v == zero
}

// IsEmpty reports whether a slice field is empty.
func IsEmpty[S ~[]E, E any](s *S) bool {
	return len(*s) == 0
}

type unseeded struct{}

// Unseeded is a field routine for with(...) that drops the seed and uses the
// value's ordinary encoding.
var Unseeded unseeded

func (unseeded) EncodeWith(v, _ any, e wire.Encoder) error {
	return encode(nil, e, v)
}

func (unseeded) DecodeWith(v, _ any, d wire.Decoder) error {
	return decode(nil, d, v)
}

type unseededKeys struct{}

// UnseededKeys is a field routine for with(...) on map fields: keys use their
// ordinary encoding and values get the seed. Ordered keys are written sorted.
var UnseededKeys unseededKeys

func (unseededKeys) EncodeWith(v, seed any, e wire.Encoder) error {
	rv, err := mapField(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotEncodable, err)
	}

	return encodeMap(nil, seed, e, rv)
}

func (unseededKeys) DecodeWith(v, seed any, d wire.Decoder) error {
	rv, err := mapField(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotDecodable, err)
	}

	return decodeMap(nil, seed, d, rv)
}

// mapField returns the map v points to.
func mapField(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Map {
		return reflect.Value{}, fmt.Errorf("UnseededKeys needs a pointer to a map, got %T", v)
	}

	return rv.Elem(), nil
}
