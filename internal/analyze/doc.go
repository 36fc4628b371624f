// Package analyze loads Go packages and extracts the declarations the
// generator works on.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to collect,
// per package, every named type together with its `//seeded(...)`
// directives, its fields (with their directives and `seeded` struct tags),
// its type parameters and, for interface types, the package types that
// implement it (union arms).
//
// Key types:
//   - Package: one loaded package and its declarations in source order
//   - Decl: a struct, named non-struct type, or union interface
//   - Field: a struct field with its directives
//   - Arm: a union member type
package analyze
