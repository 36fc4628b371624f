package analyze

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtures = "seeded-generator/examples/fixtures"

func loadFixtures(t *testing.T, opts ...Option) *Package {
	t.Helper()

	pkgs, err := NewAnalyzer(opts...).LoadPackages(fixtures)
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	return pkgs[0]
}

func loadSource(t *testing.T, src string) *Package {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/sample\n\ngo 1.24\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sample.go"), []byte(src), 0o644))

	pkgs, err := NewAnalyzer(WithDir(dir)).LoadPackages(".")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	return pkgs[0]
}

func texts(dirs []Directive) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, d.Text)
	}

	return out
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	p := loadFixtures(t, WithIgnoredFile("seeded_gen.go"))

	assert.Equal(t, fixtures, p.Path)
	assert.Equal(t, "fixtures", p.Name)
	assert.NotEmpty(t, p.Dir)
	assert.NotNil(t, p.Types)

	order := make(map[string]int, len(p.Decls))
	for i, d := range p.Decls {
		order[d.Name] = i
	}

	// document.go, generic.go, glossary.go, shapes.go
	assert.Less(t, order["Document"], order["Label"])
	assert.Less(t, order["Label"], order["Named"])
	assert.Less(t, order["Keyed"], order["Glossary"])
	assert.Less(t, order["Glossary"], order["Bar"])
	assert.Less(t, order["Bar"], order["Wrapper"])
}

func TestAnalyzer_TypeDirectives(t *testing.T) {
	p := loadFixtures(t, WithIgnoredFile("seeded_gen.go"))

	doc := p.Lookup("Document")
	require.NotNil(t, doc)
	assert.Equal(t, DeclStruct, doc.Kind)
	assert.Equal(t, []string{"(serde(seed(Interner)))"}, texts(doc.Directives))

	label := p.Lookup("Label")
	require.NotNil(t, label)
	assert.Equal(t, []string{"(serde(seed(Interner)), transparent)"}, texts(label.Directives))

	assert.Empty(t, p.Lookup("Interner").Directives)
}

func TestAnalyzer_FieldDirectives(t *testing.T) {
	p := loadFixtures(t, WithIgnoredFile("seeded_gen.go"))

	doc := p.Lookup("Document")
	require.NotNil(t, doc)
	require.Len(t, doc.Fields, 7)

	byName := make(map[string]Field, len(doc.Fields))
	for _, f := range doc.Fields {
		byName[f.Name] = f
	}

	assert.Equal(t, []string{`(rename("kind"))`}, texts(byName["type_"].Directives))
	assert.False(t, byName["type_"].Exported)
	assert.Empty(t, byName["Parent"].Directives)
	assert.Equal(t, []string{"(skip)"}, texts(byName["cache"].Directives))
	assert.Equal(t, []string{"(with(shout))"}, texts(byName["Title"].Directives))

	note := byName["Note"]
	require.Len(t, note.Directives, 1)
	assert.True(t, note.Directives[0].Tag)
	assert.Equal(t, "(default, skip_serializing_if(seeded.IsNone))", note.Directives[0].Text)
	assert.Equal(t, 5, note.Index)

	assert.Equal(t, "seeded-generator/seeded", doc.Imports["seeded"])
	assert.Equal(t, "fmt", doc.Imports["fmt"])
}

func TestAnalyzer_UnionArms(t *testing.T) {
	p := loadFixtures(t, WithIgnoredFile("seeded_gen.go"))

	bar := p.Lookup("Bar")
	require.NotNil(t, bar)
	assert.Equal(t, DeclUnion, bar.Kind)
	assert.Empty(t, bar.Problem)

	var names []string

	for _, a := range bar.Arms {
		names = append(names, a.Decl.Name)
		assert.Equal(t, a.Decl.Name == "Tuple", a.Pointer, a.Decl.Name)
	}

	assert.Equal(t, []string{"Unit", "Newtype", "Tuple", "Struct"}, names)
}

func TestAnalyzer_NamedAndGeneric(t *testing.T) {
	p := loadFixtures(t, WithIgnoredFile("seeded_gen.go"))

	newtype := p.Lookup("Newtype")
	require.NotNil(t, newtype)
	assert.Equal(t, DeclNamed, newtype.Kind)
	assert.Equal(t, fixtures+".Seeded[uint32]", newtype.Underlying.String())

	wrapper := p.Lookup("Wrapper")
	require.NotNil(t, wrapper)
	assert.True(t, wrapper.Generic())
	require.Len(t, wrapper.TypeParams, 1)
	assert.Equal(t, "T", wrapper.TypeParams[0].Name)

	assert.False(t, p.Lookup("Keyed").Generic())
}

func TestAnalyzer_IgnoredFile(t *testing.T) {
	hasMethod := func(p *Package) bool {
		doc := p.Lookup("Document")
		require.NotNil(t, doc)

		ms := types.NewMethodSet(types.NewPointer(doc.Obj.Type()))

		return ms.Lookup(p.Types, "EncodeSeeded") != nil
	}

	assert.True(t, hasMethod(loadFixtures(t)))
	assert.False(t, hasMethod(loadFixtures(t, WithIgnoredFile("seeded_gen.go"))))
}

func TestAnalyzer_IgnoresEveryGeneratedFile(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"go.mod":    "module example.com/sample\n\ngo 1.24\n",
		"sample.go": "package sample\n\ntype A struct{ X int }\n",
		// Left behind under an earlier output name; its import does not resolve.
		"old_gen.go": GeneratedHeader + "\n\npackage sample\n\nimport _ \"example.com/missing\"\n",
		// A hand-written file mentioning the header later on is kept.
		"notes.go": "package sample\n\n" + GeneratedHeader + "\nfunc (A) Notes() {}\n",
	}

	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	pkgs, err := NewAnalyzer(WithDir(dir), WithIgnoredFile("seeded_gen.go")).LoadPackages(".")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	a := pkgs[0].Lookup("A")
	require.NotNil(t, a)

	ms := types.NewMethodSet(a.Obj.Type())
	assert.NotNil(t, ms.Lookup(pkgs[0].Types, "Notes"))

	_, err = NewAnalyzer(WithDir(dir)).LoadPackages(".")
	require.Error(t, err, "without an ignored file name nothing is blanked")
}

func TestGenerated(t *testing.T) {
	dir := t.TempDir()

	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		return path
	}

	assert.True(t, generated(write("a.go", GeneratedHeader+"\n\npackage a\n")))
	assert.True(t, generated(write("b.go", GeneratedHeader+"\r\npackage a\n")))
	assert.True(t, generated(write("c.go", GeneratedHeader)))
	assert.False(t, generated(write("d.go", "package a\n")))
	assert.False(t, generated(write("e.go", "// Code generated by stringer. DO NOT EDIT.\n")))
	assert.False(t, generated(filepath.Join(dir, "missing.go")))
}

func TestAnalyzer_UnionProblems(t *testing.T) {
	p := loadSource(t, `package sample

type Number interface {
	~int | ~float64
}

type Box[T any] interface {
	Get() T
}

type Marker interface{}

type Shape interface {
	area() float64
}

type Square struct{ side float64 }

func (s Square) area() float64 { return s.side * s.side }

type Ptr *int
`)

	tests := []struct {
		name    string
		problem string
	}{
		{"Number", "interfaces with type sets cannot be unions"},
		{"Box", "generic interfaces cannot be unions"},
		{"Marker", "a union interface must declare at least one method"},
		{"Shape", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := p.Lookup(tc.name)
			require.NotNil(t, d)
			assert.Equal(t, DeclUnion, d.Kind)
			assert.Equal(t, tc.problem, d.Problem)
		})
	}

	shape := p.Lookup("Shape")
	require.Len(t, shape.Arms, 1)
	assert.Equal(t, "Square", shape.Arms[0].Decl.Name)

	assert.Equal(t, DeclOther, p.Lookup("Ptr").Kind)
}

func TestDirectives(t *testing.T) {
	src := `package p

// Doc text.
//
//seeded(ser(seed(S)))
//seededness is prose
//seeded skip
// seeded(not a directive)
type T struct{}
`

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "p.go", src, parser.ParseComments)
	require.NoError(t, err)

	var doc *ast.CommentGroup
	for _, cg := range f.Comments {
		doc = cg
	}

	dirs := directives(fset, doc)
	assert.Equal(t, []string{"(ser(seed(S)))", "skip"}, texts(dirs))
	assert.Equal(t, 5, dirs[0].Pos.Line)
	assert.Equal(t, 9, dirs[0].Pos.Column)
	assert.Equal(t, 10, dirs[1].Pos.Column)
}
