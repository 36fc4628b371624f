// Package seeded implements encoding and decoding with a caller-supplied
// seed: auxiliary context such as an interning table or a schema registry
// that is threaded, unchanged, through every nested value of a traversal.
//
// A type takes part by implementing Encoder and/or Decoder. The methods
// receive the seed as an interface value and switch on its dynamic type, one
// case per seed type the type supports; seeds are always passed as pointers.
// These methods are normally produced by seeded-generator from directives on
// the type declaration:
//
//	//seeded(serde(seed(Interner)))
//	type Doc struct {
//		Title Symbol
//		Tags  []Symbol `seeded:"default"`
//	}
//
// Encode and Decode dispatch any value: seeded implementations first, then
// registered unions, then ordinary wire.Marshaler and wire.Unmarshaler
// implementations (which ignore the seed), then primitives and the built-in
// composite kinds (slices, arrays, maps, pointers).
//
// The seed is shared, never copied; the traversal treats it as read-only.
package seeded
