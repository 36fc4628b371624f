package seeded

import (
	"reflect"
	"sync"

	"seeded-generator/wire"
)

type unionCodec struct {
	encode func(v, seed any, e wire.Encoder) error
	decode func(v, seed any, d wire.Decoder) error
}

// unions maps *U, for a union interface U, to its codec. Written from init
// functions, read during traversals.
var unions sync.Map

// RegisterUnion installs the codec for the union interface U. Interfaces
// cannot carry methods, so generated code registers its functions here and
// dispatch finds them through *U. Either function may be nil when the union
// supports a single direction.
func RegisterUnion[U any](
	enc func(x *U, seed any, e wire.Encoder) error,
	dec func(x *U, seed any, d wire.Decoder) error,
) {
	var c unionCodec

	if enc != nil {
		c.encode = func(v, seed any, e wire.Encoder) error {
			return enc(v.(*U), seed, e)
		}
	}

	if dec != nil {
		c.decode = func(v, seed any, d wire.Decoder) error {
			return dec(v.(*U), seed, d)
		}
	}

	unions.Store(reflect.TypeFor[*U](), c)
}

func lookupUnion(t reflect.Type) (unionCodec, bool) {
	if t == nil {
		return unionCodec{}, false
	}

	c, ok := unions.Load(t)
	if !ok {
		return unionCodec{}, false
	}

	return c.(unionCodec), true
}
