package analyze

import (
	"bufio"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// GeneratedHeader is the first line of every file seeded-generator writes.
const GeneratedHeader = "// Code generated by seeded-generator. DO NOT EDIT."

// Analyzer loads Go packages and extracts their declarations.
type Analyzer struct {
	dir     string
	ignored string
	log     *zap.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDir sets the directory patterns are resolved in.
func WithDir(dir string) Option {
	return func(a *Analyzer) { a.dir = dir }
}

// WithIgnoredFile makes files with the given base name read as empty, so a
// stale or broken generated file does not stop its package from loading.
// Files starting with GeneratedHeader are blanked as well, whatever their
// name.
func WithIgnoredFile(name string) Option {
	return func(a *Analyzer) { a.ignored = name }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(a *Analyzer) { a.log = log }
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{log: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// LoadPackages loads the packages matching patterns (standard Go package
// patterns such as "./..." or "seeded-generator/examples/fixtures").
func (a *Analyzer) LoadPackages(patterns ...string) ([]*Package, error) {
	overlay, err := a.overlay(patterns)
	if err != nil {
		return nil, err
	}

	cfg := &packages.Config{
		Mode:    LoadMode,
		Dir:     a.dir,
		Overlay: overlay,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	out := make([]*Package, 0, len(pkgs))

	for _, pkg := range pkgs {
		p := a.processPackage(pkg)
		a.log.Debug("package loaded",
			zap.String("path", p.Path),
			zap.Int("decls", len(p.Decls)))

		out = append(out, p)
	}

	return out, nil
}

// overlay blanks the ignored files of the matched packages, keeping only
// their package clause.
func (a *Analyzer) overlay(patterns []string) (map[string][]byte, error) {
	if a.ignored == "" {
		return nil, nil
	}

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	overlay := make(map[string][]byte)

	for _, pkg := range pkgs {
		for _, f := range pkg.GoFiles {
			if filepath.Base(f) != a.ignored && !generated(f) {
				continue
			}

			overlay[f] = []byte("package " + pkg.Name + "\n")

			a.log.Debug("ignoring generated file", zap.String("file", f))
		}
	}

	return overlay, nil
}

// generated reports whether the file at path starts with GeneratedHeader.
func generated(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}

	return strings.TrimRight(line, "\r\n") == GeneratedHeader
}

// processPackage extracts named types from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) *Package {
	p := &Package{
		Path:   pkg.PkgPath,
		Name:   pkg.Name,
		Types:  pkg.Types,
		Fset:   pkg.Fset,
		byName: make(map[string]*Decl),
	}

	if len(pkg.GoFiles) > 0 {
		p.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	for _, file := range pkg.Syntax {
		imports := fileImports(pkg, file)

		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok || ts.Assign.IsValid() {
					continue
				}

				obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
				if !ok {
					continue
				}

				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}

				d := a.analyzeDecl(pkg, obj, ts)
				d.Directives = directives(pkg.Fset, doc)
				d.Imports = imports

				p.Decls = append(p.Decls, d)
				p.byName[d.Name] = d
			}
		}
	}

	sort.SliceStable(p.Decls, func(i, j int) bool {
		return declLess(p.Decls[i].Pos, p.Decls[j].Pos)
	})

	for _, d := range p.Decls {
		if d.Kind == DeclUnion && d.Problem == "" {
			a.findArms(p, d)
		}
	}

	return p
}

func declLess(a, b token.Position) bool {
	if a.Filename != b.Filename {
		return a.Filename < b.Filename
	}

	return a.Offset < b.Offset
}

// analyzeDecl classifies one type declaration.
func (a *Analyzer) analyzeDecl(pkg *packages.Package, obj *types.TypeName, ts *ast.TypeSpec) *Decl {
	d := &Decl{
		Name: obj.Name(),
		Obj:  obj,
		Pos:  pkg.Fset.Position(ts.Name.Pos()),
	}

	named, _ := obj.Type().(*types.Named)
	if named != nil {
		for i := range named.TypeParams().Len() {
			tp := named.TypeParams().At(i)
			d.TypeParams = append(d.TypeParams, TypeParam{
				Name:       tp.Obj().Name(),
				Constraint: tp.Constraint(),
			})
		}
	}

	// A definition over another named type (type N Other[int]) is a
	// newtype whatever Other's underlying type is.
	if _, literal := ts.Type.(*ast.StructType); !literal {
		if _, literal := ts.Type.(*ast.InterfaceType); !literal {
			return a.analyzeNamed(pkg, d, ts)
		}
	}

	switch ut := obj.Type().Underlying().(type) {
	case *types.Struct:
		d.Kind = DeclStruct
		d.Fields = structFields(pkg, ut, ts.Type.(*ast.StructType))
	case *types.Interface:
		d.Kind = DeclUnion

		switch {
		case d.Generic():
			d.Problem = "generic interfaces cannot be unions"
		case !ut.IsMethodSet():
			d.Problem = "interfaces with type sets cannot be unions"
		case ut.NumMethods() == 0:
			d.Problem = "a union interface must declare at least one method"
		}
	}

	return d
}

// analyzeNamed classifies a definition whose right-hand side is not a
// struct or interface literal.
func (a *Analyzer) analyzeNamed(pkg *packages.Package, d *Decl, ts *ast.TypeSpec) *Decl {
	d.Underlying = pkg.TypesInfo.TypeOf(ts.Type)
	if d.Underlying == nil {
		d.Kind = DeclOther
		return d
	}

	switch d.Underlying.Underlying().(type) {
	case *types.Struct, *types.Basic, *types.Slice, *types.Array, *types.Map:
		d.Kind = DeclNamed
	default:
		d.Kind = DeclOther
	}

	return d
}

// structFields pairs go/types fields with their syntax to pick up
// directives and tags.
func structFields(pkg *packages.Package, st *types.Struct, syntax *ast.StructType) []Field {
	var (
		out   []Field
		index int
	)

	for _, f := range syntax.Fields.List {
		dirs := directives(pkg.Fset, f.Doc)
		dirs = append(dirs, directives(pkg.Fset, f.Comment)...)

		if tag, ok := tagDirective(pkg.Fset, f.Tag); ok {
			dirs = append(dirs, tag)
		}

		count := max(len(f.Names), 1)
		for range count {
			if index >= st.NumFields() {
				break
			}

			v := st.Field(index)
			out = append(out, Field{
				Name:       v.Name(),
				Type:       v.Type(),
				Embedded:   v.Embedded(),
				Exported:   v.Exported(),
				Index:      index,
				Pos:        pkg.Fset.Position(v.Pos()),
				Directives: dirs,
			})
			index++
		}
	}

	return out
}

// findArms collects the package types implementing the union interface u.
func (a *Analyzer) findArms(p *Package, u *Decl) {
	iface, ok := u.Obj.Type().Underlying().(*types.Interface)
	if !ok {
		return
	}

	for _, d := range p.Decls {
		if d == u || d.Kind == DeclUnion || d.Generic() {
			continue
		}

		t := d.Obj.Type()

		switch {
		case types.Implements(t, iface):
			u.Arms = append(u.Arms, Arm{Decl: d})
		case types.Implements(types.NewPointer(t), iface):
			u.Arms = append(u.Arms, Arm{Decl: d, Pointer: true})
		}
	}

	a.log.Debug("union arms found",
		zap.String("union", u.Name),
		zap.Int("arms", len(u.Arms)))
}

// fileImports maps the names a file's imports are visible under to their
// paths.
func fileImports(pkg *packages.Package, file *ast.File) map[string]string {
	out := make(map[string]string, len(file.Imports))

	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		var name string

		switch {
		case spec.Name != nil:
			name = spec.Name.Name
		case pkg.Imports[path] != nil:
			name = pkg.Imports[path].Name
		default:
			name = filepath.Base(path)
		}

		if name == "_" || name == "." {
			continue
		}

		out[name] = path
	}

	return out
}
