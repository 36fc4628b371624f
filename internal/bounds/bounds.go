package bounds

import (
	"go/token"
	"go/types"

	"seeded-generator/internal/analyze"
	"seeded-generator/internal/attr"
)

// Kind tells where a bound comes from.
type Kind int

//go:generate go tool stringer -type=Kind

const (
	// Auto is synthesized for a type parameter of the declaration.
	Auto Kind = iota
	// Extra comes from bounds(...).
	Extra
	// Override comes from override_bounds(...).
	Override
)

// Bound is one requirement on a type parameter.
type Bound struct {
	Kind      Kind
	Param     string
	Direction attr.Direction
	// Constraint is the required interface; nil for Auto bounds.
	Constraint *attr.Expr
	// Interface is set by Resolve when Constraint is a basic interface, the
	// only kind of constraint a run-time check can verify.
	Interface *types.Interface
}

func (b Bound) String() string {
	if b.Kind != Auto {
		return b.Param + " " + b.Constraint.String()
	}

	if b.Direction == attr.De {
		return b.Param + " seeded-decodable"
	}

	return b.Param + " seeded-encodable"
}

// Checked reports whether the bound can be verified at run time.
func (b Bound) Checked() bool {
	return b.Kind == Auto || b.Interface != nil
}

// Synthesize lists the bounds of one spec of a declaration with the given
// type parameters.
func Synthesize(params []analyze.TypeParam, spec attr.Spec, dir attr.Direction) []Bound {
	out := make([]Bound, 0, len(params)+len(spec.Bounds)+len(spec.OverrideBounds))

	for _, p := range params {
		if spec.Overrides(p.Name) {
			continue
		}

		out = append(out, Bound{Kind: Auto, Param: p.Name, Direction: dir})
	}

	for _, p := range spec.Bounds {
		out = append(out, Bound{Kind: Extra, Param: p.Param, Direction: dir, Constraint: p.Constraint})
	}

	for _, p := range spec.OverrideBounds {
		out = append(out, Bound{Kind: Override, Param: p.Param, Direction: dir, Constraint: p.Constraint})
	}

	return out
}

// Resolve type-checks the constraints of bs in the scope enclosing pos and
// fills in Interface where possible. It returns the bounds left unchecked.
func Resolve(bs []Bound, fset *token.FileSet, pkg *types.Package, pos token.Pos) []Bound {
	var unchecked []Bound

	for i := range bs {
		b := &bs[i]
		if b.Kind == Auto || b.Constraint == nil {
			continue
		}

		tv, err := types.Eval(fset, pkg, pos, b.Constraint.Text)
		if err == nil && tv.IsType() {
			if iface, ok := tv.Type.Underlying().(*types.Interface); ok && iface.IsMethodSet() {
				b.Interface = iface
				continue
			}
		}

		unchecked = append(unchecked, *b)
	}

	return unchecked
}
