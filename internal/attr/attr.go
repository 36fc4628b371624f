package attr

import (
	"go/ast"
	"go/token"
	"go/types"
)

// Expr is a Go expression or type taken from an attribute list.
type Expr struct {
	// Text is the expression as written.
	Text string
	// Node is its syntax tree.
	Node ast.Expr
}

// String renders the expression in canonical form, so that "a . B" and
// "a.B" compare equal.
func (e *Expr) String() string {
	if e == nil {
		return ""
	}

	return types.ExprString(e.Node)
}

// Param is one extra type parameter declared by params(...).
type Param struct {
	Name       string
	Constraint *Expr
}

func (p Param) String() string {
	return p.Name + " " + p.Constraint.String()
}

// Predicate is one bound from bounds(...) or override_bounds(...): the type
// named Param must satisfy Constraint.
type Predicate struct {
	Param      string
	Constraint *Expr
}

func (p Predicate) String() string {
	return p.Param + " " + p.Constraint.String()
}

// Spec is one seed spec: the generated code gains one encode or decode path
// for values of the Seed type.
type Spec struct {
	// Seed is the seed's type, nil when seed(...) was not given.
	Seed *Expr
	// Params are extra type parameters of the generated entry point.
	Params []Param
	// Bounds are checked unconditionally.
	Bounds []Predicate
	// OverrideBounds replace the automatic bound of the parameter they name.
	OverrideBounds []Predicate
	// Pos is the position of the ser/de/serde key that declared the spec.
	Pos token.Position
}

// SeedString renders the seed type as written, or "" when it is missing.
func (s *Spec) SeedString() string {
	return s.Seed.String()
}

// Overrides reports whether override_bounds names param.
func (s *Spec) Overrides(param string) bool {
	for _, p := range s.OverrideBounds {
		if p.Param == param {
			return true
		}
	}

	return false
}

// Direction selects the encode or the decode side of a type.
type Direction int

const (
	Ser Direction = iota
	De
)

func (d Direction) String() string {
	if d == De {
		return "de"
	}

	return "ser"
}

// TypeAttributes are the options of a struct, named type or union.
type TypeAttributes struct {
	Ser []Spec
	De  []Spec
	// Transparent encodes the single non-skipped field in place of the value.
	Transparent bool
	// Tuple makes a struct's fields positional.
	Tuple bool
	// Rename overrides the wire name of the type, or of the arm when the type
	// is a union member.
	Rename string
}

// Merge folds a later fragment into a.
func (a *TypeAttributes) Merge(b TypeAttributes) {
	a.Ser = append(a.Ser, b.Ser...)
	a.De = append(a.De, b.De...)
	a.Transparent = a.Transparent || b.Transparent
	a.Tuple = a.Tuple || b.Tuple

	if b.Rename != "" {
		a.Rename = b.Rename
	}
}

// Specs returns the specs of one direction.
func (a *TypeAttributes) Specs(d Direction) []Spec {
	if d == De {
		return a.De
	}

	return a.Ser
}

// Empty reports whether no option was set.
func (a *TypeAttributes) Empty() bool {
	return len(a.Ser) == 0 && len(a.De) == 0 && !a.Transparent && !a.Tuple && a.Rename == ""
}

// FieldAttributes are the options of one struct field.
type FieldAttributes struct {
	// Skip removes the field from the wire; decoding leaves it zero.
	Skip bool
	// Default lets the field be absent on decode.
	Default bool
	// With names a value with EncodeWith and DecodeWith methods used instead
	// of the seeded codec of the field's type.
	With *Expr
	// SkipIf names a predicate func(*F) bool; the field is omitted from the
	// wire when it returns true.
	SkipIf *Expr
	// Rename overrides the field's wire name.
	Rename string
}

// Merge folds a later fragment into a.
func (a *FieldAttributes) Merge(b FieldAttributes) {
	a.Skip = a.Skip || b.Skip
	a.Default = a.Default || b.Default

	if b.With != nil {
		a.With = b.With
	}

	if b.SkipIf != nil {
		a.SkipIf = b.SkipIf
	}

	if b.Rename != "" {
		a.Rename = b.Rename
	}
}
