package gen

import (
	"strings"

	"seeded-generator/internal/analyze"
	"seeded-generator/internal/plan"
)

// typeParams renders the type parameter lists of one spec's functions: the
// declaration's own parameters followed by the spec's extra ones.
type typeParams struct {
	names       []string
	constraints []string
	// own is the number of parameters belonging to the declaration.
	own int
}

func (f *file) params(d *analyze.Decl, s plan.Spec) (typeParams, error) {
	var tp typeParams

	for _, p := range d.TypeParams {
		tp.names = append(tp.names, p.Name)
		tp.constraints = append(tp.constraints, f.typeString(p.Constraint))
	}

	tp.own = len(tp.names)

	for _, p := range s.Params {
		c, err := f.expr(d, p.Constraint)
		if err != nil {
			return typeParams{}, err
		}

		tp.names = append(tp.names, p.Name)
		tp.constraints = append(tp.constraints, c)
	}

	return tp, nil
}

// Def is the parameter list of a function declaration, e.g. "[T any, K comparable]".
func (tp typeParams) Def() string {
	if len(tp.names) == 0 {
		return ""
	}

	parts := make([]string, len(tp.names))
	for i, n := range tp.names {
		parts[i] = n + " " + tp.constraints[i]
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// Header instantiates the declared type with its own parameters, e.g. "[T]".
func (tp typeParams) Header() string {
	return list(tp.names[:tp.own])
}

// Ref instantiates a function with every parameter, e.g. "[T, K]".
func (tp typeParams) Ref() string {
	return list(tp.names)
}

func list(names []string) string {
	if len(names) == 0 {
		return ""
	}

	return "[" + strings.Join(names, ", ") + "]"
}
