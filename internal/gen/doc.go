// Package gen provides deterministic Go code generation for seeded
// encoding and decoding.
//
// Generation approach uses text/template + go/format for readable,
// reflection-free Go code.
//
// For every planned type the generated file contains:
//   - one function per spec (encode<Type><Suffix>, decode<Type><Suffix>);
//     specs with params(...) get exported functions instead
//   - EncodeSeeded/DecodeSeeded methods switching on the seed type, or for
//     unions an init function registering the same switch with
//     seeded.RegisterUnion
//   - identifier types resolving field keys and union discriminants given
//     as an index, a string or raw bytes
//   - visit functions decoding the fields of a named shape
//
// Codegen patterns:
//   - Unit, newtype, tuple and struct layouts, as records or union arms
//   - Field values wrapped in seeded containers (Slice, SortedMap, HashMap,
//     Ptr) so the traversal avoids reflection
//   - Custom field routines through with(...)
//   - Field counts computed at encode time for skip_serializing_if
//   - Type-parameter bounds checked on entry
package gen
