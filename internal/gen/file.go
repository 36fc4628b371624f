package gen

import (
	"fmt"
	"go/types"
	"strings"

	"seeded-generator/internal/analyze"
	"seeded-generator/internal/attr"
	"seeded-generator/internal/bounds"
	"seeded-generator/internal/plan"
)

// Import paths of the runtime packages generated code calls into.
const (
	seededPath = "seeded-generator/seeded"
	wirePath   = "seeded-generator/wire"
)

// file collects the declarations of one generated file.
type file struct {
	pkg      *analyze.Package
	imports  *analyze.Imports
	comments bool

	decls []string

	// identifier types and visit functions already emitted, by name; a
	// visit function is keyed by its full signature.
	idents   map[string]bool
	visitors map[string]string
	names    map[string]bool
}

func newFile(pkg *analyze.Package, comments bool) *file {
	return &file{
		pkg:      pkg,
		imports:  analyze.NewImports(pkg.Types),
		comments: comments,
		idents:   make(map[string]bool),
		visitors: make(map[string]string),
		names:    make(map[string]bool),
	}
}

// sd qualifies an identifier of the seeded package.
func (f *file) sd(name string) string {
	return qualify(f.imports.Add(seededPath, "seeded"), name)
}

// wr qualifies an identifier of the wire package.
func (f *file) wr(name string) string {
	return qualify(f.imports.Add(wirePath, "wire"), name)
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}

	return pkg + "." + name
}

func (f *file) typeString(t types.Type) string {
	return f.imports.TypeString(t)
}

// expr renders a directive expression written in the file declaring d.
func (f *file) expr(d *analyze.Decl, e *attr.Expr) (string, error) {
	s, err := f.imports.Expr(e.Text, d.Imports)
	if err != nil {
		return "", fmt.Errorf("%s: %w", d.Name, err)
	}

	return s, nil
}

// add appends a top-level declaration.
func (f *file) add(decl string) {
	f.decls = append(f.decls, strings.Trim(decl, "\n"))
}

// doc returns a doc comment line when comments are enabled.
func (f *file) doc(format string, args ...any) string {
	if !f.comments {
		return ""
	}

	return "// " + fmt.Sprintf(format, args...) + "\n"
}

// specContext is everything the emitters need about one spec.
type specContext struct {
	t      *plan.Type
	spec   plan.Spec
	params typeParams
	// seed is the rendered seed type, without the pointer.
	seed string
	// self is the rendered type the function works on, e.g. "Wrapper[T]".
	self string
	entry string
}

func (f *file) specContext(t *plan.Type, s plan.Spec) (*specContext, error) {
	params, err := f.params(t.Decl, s)
	if err != nil {
		return nil, err
	}

	seed, err := f.expr(t.Decl, s.Seed)
	if err != nil {
		return nil, err
	}

	return &specContext{
		t:      t,
		spec:   s,
		params: params,
		seed:   seed,
		self:   t.Name + params.Header(),
		entry:  plan.EntryName(t.Name, s),
	}, nil
}

// bounds writes the run-time checks of the spec's bounds.
func (f *file) bounds(c *code, sc *specContext) error {
	for _, b := range sc.spec.Bounds {
		switch {
		case b.Kind == bounds.Auto:
			fn := "RequireEncodable"
			if b.Direction == attr.De {
				fn = "RequireDecodable"
			}

			c.check("%s[%s]()", f.sd(fn), b.Param)
		case b.Interface != nil:
			iface, err := f.expr(sc.t.Decl, b.Constraint)
			if err != nil {
				return err
			}

			c.check("%s[%s, %s](%q)", f.sd("RequireBound"), b.Param, iface, b.String())
		default:
			c.line("// %s: not checked", b.String())
		}
	}

	if len(sc.spec.Bounds) > 0 {
		c.line("")
	}

	return nil
}
