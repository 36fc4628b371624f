package seeded

import (
	"fmt"
	"reflect"
	"sync"
)

type boundKey struct {
	t, iface reflect.Type
}

// checked caches supports results; generated code checks bounds on every
// call.
var checked sync.Map

// BoundError reports a type argument that does not satisfy a bound of a
// generated implementation.
type BoundError struct {
	Type  reflect.Type
	Bound string
}

func (e *BoundError) Error() string {
	return fmt.Sprintf("seeded: %v does not satisfy %s", e.Type, e.Bound)
}

func (e *BoundError) Unwrap() error {
	return ErrUnsatisfiedBound
}

// RequireEncodable fails unless values of T can be encoded with a seed,
// either through their own implementation or through the unseeded fallback.
func RequireEncodable[T any]() error {
	t := reflect.TypeFor[T]()
	if cachedSupports(t, encoderType, marshalerType) {
		return nil
	}

	return &BoundError{Type: t, Bound: "seeded encoding"}
}

// RequireDecodable is RequireEncodable for decoding.
func RequireDecodable[T any]() error {
	t := reflect.TypeFor[T]()
	if cachedSupports(t, decoderType, unmarshalerType) {
		return nil
	}

	return &BoundError{Type: t, Bound: "seeded decoding"}
}

// RequireBound fails unless T or *T implements the interface I. The
// predicate text is reported on failure.
func RequireBound[T, I any](predicate string) error {
	t := reflect.TypeFor[T]()

	it := reflect.TypeFor[I]()
	if it.Kind() == reflect.Interface && (t.Implements(it) || reflect.PointerTo(t).Implements(it)) {
		return nil
	}

	return &BoundError{Type: t, Bound: predicate}
}

func cachedSupports(t, iface, plain reflect.Type) bool {
	key := boundKey{t: t, iface: iface}
	if ok, hit := checked.Load(key); hit {
		return ok.(bool)
	}

	ok := supports(t, iface, plain, map[reflect.Type]bool{})
	checked.Store(key, ok)

	return ok
}

func supports(t, iface, plain reflect.Type, seen map[reflect.Type]bool) bool {
	if seen[t] {
		return true
	}

	seen[t] = true

	if hasCodec(t, iface, plain) {
		return true
	}

	k := kindOf(t)

	switch {
	case k.isPrimitive():
		return true
	case k == kindSeq || k == kindArray || k == kindPointer:
		return supports(t.Elem(), iface, plain, seen)
	case k == kindMap:
		return supports(t.Key(), iface, plain, seen) && supports(t.Elem(), iface, plain, seen)
	default:
		return false
	}
}
