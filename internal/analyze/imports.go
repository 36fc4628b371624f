package analyze

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"go/types"
	"path"
	"sort"

	"golang.org/x/tools/go/ast/astutil"
)

// ImportSpec is one import of a generated file.
type ImportSpec struct {
	Alias string
	Path  string
}

// Imports renders types and expressions as seen from one package and
// collects the imports the rendered text needs.
type Imports struct {
	pkg   *types.Package
	names map[string]string // path -> name used in the file
	used  map[string]string // name -> path
}

// NewImports returns an empty import set for a file of package pkg.
func NewImports(pkg *types.Package) *Imports {
	return &Imports{
		pkg:   pkg,
		names: make(map[string]string),
		used:  make(map[string]string),
	}
}

// Add registers an import of importPath and returns the name to refer to
// it by. name is the preferred name; a numeric suffix resolves clashes.
func (im *Imports) Add(importPath, name string) string {
	if im.pkg != nil && importPath == im.pkg.Path() {
		return ""
	}

	if n, ok := im.names[importPath]; ok {
		return n
	}

	n := name
	for i := 2; ; i++ {
		if _, taken := im.used[n]; !taken {
			break
		}

		n = fmt.Sprintf("%s%d", name, i)
	}

	im.names[importPath] = n
	im.used[n] = importPath

	return n
}

// Qualifier is a types.Qualifier registering every package it names.
func (im *Imports) Qualifier(p *types.Package) string {
	if p == nil || (im.pkg != nil && p.Path() == im.pkg.Path()) {
		return ""
	}

	return im.Add(p.Path(), p.Name())
}

// TypeString renders t.
func (im *Imports) TypeString(t types.Type) string {
	return types.TypeString(t, im.Qualifier)
}

// Expr renders an expression written in a file whose imports are fileImports
// (visible name to path), renaming package qualifiers to the names used by
// this import set.
func (im *Imports) Expr(src string, fileImports map[string]string) (string, error) {
	fset := token.NewFileSet()

	e, err := parser.ParseExprFrom(fset, "", src, 0)
	if err != nil {
		return "", fmt.Errorf("parsing %q: %w", src, err)
	}

	astutil.Apply(e, func(c *astutil.Cursor) bool {
		sel, ok := c.Node().(*ast.SelectorExpr)
		if !ok {
			return true
		}

		if id, ok := sel.X.(*ast.Ident); ok {
			if p, ok := fileImports[id.Name]; ok {
				id.Name = im.Add(p, id.Name)
			}
		}

		return true
	}, nil)

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, e); err != nil {
		return "", fmt.Errorf("printing %q: %w", src, err)
	}

	return buf.String(), nil
}

// Specs returns the collected imports sorted by path. An alias is set when
// the name differs from the last path element.
func (im *Imports) Specs() []ImportSpec {
	specs := make([]ImportSpec, 0, len(im.names))

	for p, n := range im.names {
		spec := ImportSpec{Path: p}
		if n != path.Base(p) {
			spec.Alias = n
		}

		specs = append(specs, spec)
	}

	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Path < specs[j].Path
	})

	return specs
}
