package plan

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"go.uber.org/zap"

	"seeded-generator/internal/analyze"
	"seeded-generator/internal/attr"
	"seeded-generator/internal/bounds"
	"seeded-generator/internal/diagnostic"
	"seeded-generator/internal/mapping"
)

// Resolver performs the resolution pipeline for one package.
type Resolver struct {
	pkg       *analyze.Package
	overrides *mapping.OverrideFile
	log       *zap.Logger
	diags     diagnostic.Diagnostics

	// Attributes and shapes are computed once per declaration: arm types are
	// visited again for every union they belong to.
	typeAttrs map[*analyze.Decl]typeAttrsResult
	shapes    map[*analyze.Decl]shapeResult
}

type typeAttrsResult struct {
	attrs attr.TypeAttributes
	ok    bool
}

type shapeResult struct {
	shape Shape
	ok    bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithOverrides adds the fragments of an overrides file.
func WithOverrides(of *mapping.OverrideFile) Option {
	return func(r *Resolver) { r.overrides = of }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Resolver) { r.log = log }
}

// NewResolver creates a new Resolver.
func NewResolver(pkg *analyze.Package, opts ...Option) *Resolver {
	r := &Resolver{
		pkg:       pkg,
		log:       zap.NewNop(),
		typeAttrs: make(map[*analyze.Decl]typeAttrsResult),
		shapes:    make(map[*analyze.Decl]shapeResult),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve builds the plan. Errors are reported in Plan.Diagnostics; types
// with errors are left out of Plan.Types.
func (r *Resolver) Resolve() *Plan {
	p := &Plan{Package: r.pkg}

	if r.overrides != nil {
		r.diags.Merge(*mapping.Validate(r.overrides, r.pkg))
	}

	for _, d := range r.pkg.Decls {
		ta, ok := r.attributes(d)
		if !ok || (len(ta.Ser) == 0 && len(ta.De) == 0) {
			continue
		}

		t, ok := r.resolveType(d, ta)
		if !ok {
			continue
		}

		r.log.Debug("type planned",
			zap.String("type", t.Name),
			zap.Stringer("kind", t.Kind),
			zap.Int("ser", len(t.Ser)),
			zap.Int("de", len(t.De)))

		p.Types = append(p.Types, t)
	}

	p.Diagnostics = r.diags

	return p
}

// attributes parses the type-level directives of d followed by its
// overrides.
func (r *Resolver) attributes(d *analyze.Decl) (attr.TypeAttributes, bool) {
	if res, done := r.typeAttrs[d]; done {
		return res.attrs, res.ok
	}

	var (
		ta attr.TypeAttributes
		ok = true
	)

	dirs := append(append([]analyze.Directive{}, d.Directives...), r.overrides.TypeDirectives(d.Name)...)
	for _, dir := range dirs {
		next, err := attr.ParseType(dir.Text, dir.Pos)
		if err != nil {
			r.attrError(err, d.Name, "")

			ok = false

			continue
		}

		ta.Merge(next)
	}

	r.typeAttrs[d] = typeAttrsResult{attrs: ta, ok: ok}

	return ta, ok
}

func (r *Resolver) attrError(err error, typ, field string) {
	var ae *attr.Error
	if !errors.As(err, &ae) {
		r.diags.AddError(diagnostic.CodeAttributeParseError, err.Error(), token.Position{}, typ, field)
		return
	}

	diag := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Code:     ae.Code,
		Message:  ae.Msg,
		Pos:      ae.Pos,
		Type:     typ,
		Field:    field,
	}

	if ae.Suggestion != "" {
		diag.Suggestions = []string{ae.Suggestion}
	}

	r.diags.Add(diag)
}

func (r *Resolver) resolveType(d *analyze.Decl, ta attr.TypeAttributes) (*Type, bool) {
	t := &Type{
		Decl:     d,
		Name:     d.Name,
		WireName: d.Name,
		Attrs:    ta,
	}

	if ta.Rename != "" {
		t.WireName = ta.Rename
	}

	var ok bool

	switch d.Kind {
	case analyze.DeclUnion:
		t.Kind = KindUnion
		ok = r.resolveUnion(t)
	case analyze.DeclStruct, analyze.DeclNamed:
		t.Kind = KindRecord
		t.Shape, ok = r.shape(d, ta)
		ok = r.checkTransparent(t) && ok
	default:
		r.diags.AddError(diagnostic.CodeUnsupportedShape,
			fmt.Sprintf("%s has underlying type %s; only structs, named basic, slice, array and map types and interfaces are supported",
				d.Name, underlying(d)),
			d.Pos, d.Name, "")

		return nil, false
	}

	ok = r.resolveSpecs(t) && ok

	return t, ok
}

func underlying(d *analyze.Decl) string {
	if d.Underlying != nil {
		return d.Underlying.Underlying().String()
	}

	return d.Obj.Type().Underlying().String()
}

// shape normalizes the fields of a struct or named type.
func (r *Resolver) shape(d *analyze.Decl, ta attr.TypeAttributes) (Shape, bool) {
	if res, done := r.shapes[d]; done {
		return res.shape, res.ok
	}

	var (
		shape Shape
		ok    = true
	)

	switch d.Kind {
	case analyze.DeclNamed:
		shape = Normalize([]Field{{
			Type:    d.Underlying,
			Pos:     d.Pos,
			Convert: true,
		}}, true)
	case analyze.DeclStruct:
		fields := make([]Field, 0, len(d.Fields))

		for _, f := range d.Fields {
			field, good := r.field(d, f, ta.Tuple)
			ok = ok && good

			fields = append(fields, field)
		}

		shape = Normalize(fields, ta.Tuple)
	default:
		r.diags.AddError(diagnostic.CodeUnsupportedShape,
			fmt.Sprintf("%s has underlying type %s and cannot be a union arm", d.Name, underlying(d)),
			d.Pos, d.Name, "")

		ok = false
	}

	r.shapes[d] = shapeResult{shape: shape, ok: ok}

	return shape, ok
}

// field parses the directives of one struct field.
func (r *Resolver) field(d *analyze.Decl, f analyze.Field, positional bool) (Field, bool) {
	var (
		fa attr.FieldAttributes
		ok = true
	)

	dirs := append(append([]analyze.Directive{}, f.Directives...), r.overrides.FieldDirectives(d.Name, f.Name)...)
	for _, dir := range dirs {
		next, err := attr.ParseField(dir.Text, dir.Pos)
		if err != nil {
			r.attrError(err, d.Name, f.Name)

			ok = false

			continue
		}

		fa.Merge(next)
	}

	// A blank field cannot be read or written.
	if f.Name == "_" {
		fa.Skip = true
	}

	field := Field{
		GoName: f.Name,
		Type:   f.Type,
		Attrs:  fa,
		Index:  f.Index,
		Pos:    f.Pos,
	}

	if !positional {
		field.WireName = wireName(f.Name)
		if fa.Rename != "" {
			field.WireName = fa.Rename
		}

		return field, ok
	}

	for _, opt := range []struct {
		set  bool
		name string
	}{
		{fa.Rename != "", "rename"},
		{fa.Default, "default"},
		{fa.SkipIf != nil, "skip_serializing_if"},
	} {
		if opt.set {
			r.diags.AddWarning(diagnostic.CodeIgnoredAttribute,
				fmt.Sprintf("`%s` has no effect on a positional field", opt.name), f.Pos, d.Name, f.Name)
		}
	}

	return field, ok
}

func (r *Resolver) checkTransparent(t *Type) bool {
	if !t.Attrs.Transparent {
		return true
	}

	switch n := len(t.Shape.Active()); {
	case t.Shape.Kind == ShapeUnit:
		r.diags.AddError(diagnostic.CodeTransparentOnUnit,
			"`transparent` needs a field to pass through; "+t.Name+" has none", t.Decl.Pos, t.Name, "")
	case n != 1:
		r.diags.AddError(diagnostic.CodeTransparentFieldCount,
			fmt.Sprintf("`transparent` needs exactly one non-skipped field, %s has %d", t.Name, n),
			t.Decl.Pos, t.Name, "")
	default:
		return true
	}

	return false
}

func (r *Resolver) resolveUnion(t *Type) bool {
	d := t.Decl

	if d.Problem != "" {
		r.diags.AddError(diagnostic.CodeUnsupportedUnionType, d.Problem, d.Pos, d.Name, "")
		return false
	}

	ok := true

	if t.Attrs.Transparent {
		r.diags.AddError(diagnostic.CodeTransparentOnEnum,
			"`transparent` cannot be used on a union", d.Pos, d.Name, "")

		ok = false
	}

	if t.Attrs.Tuple {
		r.diags.AddWarning(diagnostic.CodeIgnoredAttribute,
			"`tuple` has no effect on a union; mark the arm types instead", d.Pos, d.Name, "")
	}

	if len(d.Arms) == 0 {
		r.diags.AddError(diagnostic.CodeEmptyUnion,
			fmt.Sprintf("no type in package %s implements %s", r.pkg.Name, d.Name), d.Pos, d.Name, "")

		return false
	}

	names := make(map[string]string, len(d.Arms))

	for i, a := range d.Arms {
		ta, good := r.attributes(a.Decl)
		if !good {
			ok = false
			continue
		}

		shape, good := r.shape(a.Decl, ta)
		if !good {
			ok = false
			continue
		}

		arm := Arm{
			Name:    a.Decl.Name,
			Index:   i,
			Decl:    a.Decl,
			Pointer: a.Pointer,
			Shape:   shape,
		}

		if ta.Rename != "" {
			arm.Name = ta.Rename
		}

		if other, dup := names[arm.Name]; dup {
			r.diags.AddError(diagnostic.CodeUnsupportedUnionType,
				fmt.Sprintf("arms %s and %s share the wire name %q", other, a.Decl.Name, arm.Name),
				a.Decl.Pos, d.Name, a.Decl.Name)

			ok = false
		}

		names[arm.Name] = a.Decl.Name
		t.Arms = append(t.Arms, arm)
	}

	return ok
}

// resolveSpecs validates the specs of both directions, names them and
// synthesizes their bounds.
func (r *Resolver) resolveSpecs(t *Type) bool {
	ok := true

	for _, dir := range []attr.Direction{attr.Ser, attr.De} {
		var (
			seen  = make(map[string]bool)
			names = make(suffixes)
			out   []Spec
		)

		for _, spec := range t.Attrs.Specs(dir) {
			if spec.Seed == nil {
				r.diags.AddError(diagnostic.CodeMissingSeed,
					fmt.Sprintf("`%s` spec without `seed(...)`", dir), spec.Pos, t.Name, "")

				ok = false

				continue
			}

			key := spec.SeedString()
			if seen[key] {
				r.diags.AddError(diagnostic.CodeDuplicateSeed,
					fmt.Sprintf("seed %s is already handled by another `%s` spec", key, dir), spec.Pos, t.Name, "")

				ok = false

				continue
			}

			seen[key] = true

			if !r.checkParams(t, spec) {
				ok = false
				continue
			}

			s := Spec{
				Spec:      spec,
				Direction: dir,
				Suffix:    names.next(key),
				Bounds:    bounds.Synthesize(t.Decl.TypeParams, spec, dir),
			}

			r.resolveBounds(t, &s)

			if !s.Dispatched() {
				r.diags.AddInfo(diagnostic.CodeExtraParamsSpec,
					fmt.Sprintf("seed %s declares params(...); call %s directly, %s does not reach it",
						key, EntryName(t.Name, s), dispatchMethod(dir)),
					spec.Pos, t.Name, "")
			}

			out = append(out, s)
		}

		if dir == attr.De {
			t.De = out
		} else {
			t.Ser = out
		}
	}

	return ok
}

func (r *Resolver) checkParams(t *Type, spec attr.Spec) bool {
	declared := make(map[string]bool, len(t.Decl.TypeParams)+len(spec.Params))
	for _, tp := range t.Decl.TypeParams {
		declared[tp.Name] = true
	}

	for _, p := range spec.Params {
		if declared[p.Name] {
			r.diags.AddError(diagnostic.CodeDuplicateParam,
				fmt.Sprintf("type parameter %s is declared twice", p.Name), spec.Pos, t.Name, "")

			return false
		}

		declared[p.Name] = true
	}

	return true
}

func (r *Resolver) resolveBounds(t *Type, s *Spec) {
	var unchecked []bounds.Bound

	if r.pkg.Types != nil && r.pkg.Fset != nil && t.Decl.Obj != nil {
		unchecked = bounds.Resolve(s.Bounds, r.pkg.Fset, r.pkg.Types, t.Decl.Obj.Pos())
	} else {
		for _, b := range s.Bounds {
			if !b.Checked() {
				unchecked = append(unchecked, b)
			}
		}
	}

	for _, b := range unchecked {
		r.diags.AddWarning(diagnostic.CodeUncheckedBound,
			fmt.Sprintf("bound `%s` is not checked at run time; only basic interfaces can be", b),
			s.Pos, t.Name, "")
	}
}

// EntryName is the name of the function implementing spec s of the type
// named typeName: unexported behind the dispatch method, exported when the
// spec has extra type parameters.
func EntryName(typeName string, s Spec) string {
	prefix := "encode"
	if s.Direction == attr.De {
		prefix = "decode"
	}

	if !s.Dispatched() {
		prefix = strings.ToUpper(prefix[:1]) + prefix[1:]
	}

	return prefix + typeName + s.Suffix
}

func dispatchMethod(dir attr.Direction) string {
	if dir == attr.De {
		return "DecodeSeeded"
	}

	return "EncodeSeeded"
}
