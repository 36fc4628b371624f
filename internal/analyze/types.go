package analyze

import (
	"go/token"
	"go/types"
)

// DeclKind is the syntactic kind of a declaration.
type DeclKind int

//go:generate go tool stringer -type=DeclKind -trimprefix=Decl

const (
	// DeclStruct is a struct type.
	DeclStruct DeclKind = iota
	// DeclNamed is a named type whose underlying type is not a struct or an
	// interface, e.g. `type Celsius float64`.
	DeclNamed
	// DeclUnion is an interface type; its arms are the package types
	// implementing it.
	DeclUnion
	// DeclOther is anything else (e.g. a named pointer or function type).
	DeclOther
)

// Directive is one attribute list found on a declaration or field.
type Directive struct {
	// Text is the attribute list, parentheses included.
	Text string
	// Pos is the position of the first byte of Text.
	Pos token.Position
	// Tag marks text taken from a `seeded` struct tag.
	Tag bool
}

// TypeParam is a type parameter of a generic declaration.
type TypeParam struct {
	Name       string
	Constraint types.Type
}

// Field describes a struct field.
type Field struct {
	Name       string
	Type       types.Type
	Embedded   bool
	Exported   bool
	Index      int
	Pos        token.Position
	Directives []Directive
}

// Arm is a union member.
type Arm struct {
	Decl *Decl
	// Pointer marks arms whose method set implements the union only through
	// a pointer receiver; such values are stored in the union as *T.
	Pointer bool
}

// Decl describes a named type declared in an analyzed package.
type Decl struct {
	Name       string
	Kind       DeclKind
	Obj        *types.TypeName
	Pos        token.Position
	TypeParams []TypeParam
	Directives []Directive
	// Fields lists struct fields in declaration order.
	Fields []Field
	// Underlying is the underlying type of a DeclNamed declaration.
	Underlying types.Type
	// Arms lists the members of a DeclUnion declaration in source order.
	Arms []Arm
	// Problem explains why a DeclUnion cannot be used as a union, if so.
	Problem string
	// Imports maps the names imports are visible under in the declaring
	// file to their paths; directive expressions resolve against it.
	Imports map[string]string
}

// Generic reports whether the declaration has type parameters.
func (d *Decl) Generic() bool {
	return len(d.TypeParams) > 0
}

// Package holds the declarations of one loaded package.
type Package struct {
	Path  string
	Name  string
	Dir   string
	Types *types.Package
	Fset  *token.FileSet
	// Decls lists every named type of the package in source order.
	Decls []*Decl

	byName map[string]*Decl
}

// Lookup returns the declaration with the given name, or nil.
func (p *Package) Lookup(name string) *Decl {
	return p.byName[name]
}

// NewPackage assembles a Package from already built declarations.
func NewPackage(path, name string, decls ...*Decl) *Package {
	p := &Package{
		Path:   path,
		Name:   name,
		Decls:  decls,
		byName: make(map[string]*Decl, len(decls)),
	}

	for _, d := range decls {
		p.byName[d.Name] = d
	}

	return p
}
