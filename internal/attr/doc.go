// Package attr parses and merges the declarative options attached to a type
// or a field.
//
// Options are written as a parenthesized list, either in a directive comment
// on the declaration
//
//	//seeded(serde(seed(Interner), bounds(T comparable)), rename("Sym"))
//
// or, for fields, in the `seeded` struct tag without the outer parentheses:
//
//	Name string `seeded:"rename(\"name\"), default"`
//
// The text is tokenized with go/scanner; paths and types inside the list are
// parsed as Go expressions with go/parser. Fragments found on one item are
// merged left to right: flags OR together, scalar values take the later
// non-empty value, and lists (seed specs, bounds) concatenate.
package attr
