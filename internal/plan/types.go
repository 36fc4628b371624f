package plan

import (
	"go/token"
	"go/types"

	"seeded-generator/internal/analyze"
	"seeded-generator/internal/attr"
	"seeded-generator/internal/bounds"
	"seeded-generator/internal/diagnostic"
)

// Plan is everything needed to generate the code of one package.
type Plan struct {
	Package *analyze.Package
	// Types lists the declarations to generate code for, in source order.
	Types []*Type
	// Diagnostics contains all warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics
}

// TypeKind separates records (structs and named types) from unions.
type TypeKind int

//go:generate go tool stringer -type=TypeKind -trimprefix=Kind

const (
	KindRecord TypeKind = iota
	KindUnion
)

// Type is one declaration with at least one spec.
type Type struct {
	Decl *analyze.Decl
	// Name is the Go identifier.
	Name string
	// WireName is the name passed to the wire format.
	WireName string
	Kind     TypeKind
	Attrs    attr.TypeAttributes
	// Shape is the layout of a record.
	Shape Shape
	// Arms are the members of a union in declaration order.
	Arms []Arm
	Ser  []Spec
	De   []Spec
}

// Specs returns the specs of one direction.
func (t *Type) Specs(d attr.Direction) []Spec {
	if d == attr.De {
		return t.De
	}

	return t.Ser
}

// Transparent returns the field encoded in place of a transparent record.
func (t *Type) Transparent() (Field, bool) {
	if !t.Attrs.Transparent || t.Kind != KindRecord {
		return Field{}, false
	}

	active := t.Shape.Active()
	if len(active) == 0 {
		return Field{}, false
	}

	return active[0], true
}

// Arm is one member of a union.
type Arm struct {
	// Name is the wire name of the variant.
	Name string
	// Index is the zero-based discriminant.
	Index int
	Decl  *analyze.Decl
	// Pointer marks arms stored in the union as *T.
	Pointer bool
	Shape   Shape
}

// Spec is one seed spec together with everything derived from it.
type Spec struct {
	attr.Spec
	Direction attr.Direction
	// Suffix distinguishes the generated functions of this spec from the
	// other specs of the type, e.g. "Interner" for seed(*intern.Interner).
	Suffix string
	Bounds []bounds.Bound
}

// Dispatched reports whether the spec is reachable from the generated
// EncodeSeeded or DecodeSeeded method. Specs with extra type parameters are
// only reachable through their typed entry point.
func (s *Spec) Dispatched() bool {
	return len(s.Params) == 0
}

// ShapeKind is the normalized layout of a field list.
type ShapeKind int

//go:generate go tool stringer -type=ShapeKind -trimprefix=Shape

const (
	// ShapeUnit has no fields.
	ShapeUnit ShapeKind = iota
	// ShapePositional is addressed by position.
	ShapePositional
	// ShapeNamed is addressed by field name.
	ShapeNamed
)

// Shape is a normalized field list.
type Shape struct {
	Kind   ShapeKind
	Fields []Field
}

// Field is one member of a shape.
type Field struct {
	// GoName is the field's Go identifier. It is empty when Convert is set.
	GoName string
	// WireName is the resolved wire name. Positional fields have none.
	WireName string
	Type     types.Type
	Attrs    attr.FieldAttributes
	// Index is the declaration index.
	Index int
	// WireIndex is the position among the non-skipped fields, or -1.
	WireIndex int
	Pos       token.Position
	// Convert marks the single field of a named non-struct type: the value
	// is reached by converting the declaration to its underlying type.
	Convert bool
}

// Skipped reports whether the field never appears on the wire.
func (f *Field) Skipped() bool {
	return f.WireIndex < 0
}
