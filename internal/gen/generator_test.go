package gen

import (
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seeded-generator/internal/analyze"
	"seeded-generator/internal/diagnostic"
	"seeded-generator/internal/plan"
)

const fixtures = "seeded-generator/examples/fixtures"

func loadFixtures(t *testing.T) *plan.Plan {
	t.Helper()

	pkgs, err := analyze.NewAnalyzer(analyze.WithIgnoredFile("seeded_gen.go")).LoadPackages(fixtures)
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	p := plan.NewResolver(pkgs[0]).Resolve()
	require.False(t, p.Diagnostics.HasErrors(), "%v", p.Diagnostics.Error())

	return p
}

// loadSource resolves a single-file package written to a temporary module.
func loadSource(t *testing.T, src string) *plan.Plan {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/sample\n\ngo 1.24\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sample.go"), []byte(src), 0o644))

	pkgs, err := analyze.NewAnalyzer(analyze.WithDir(dir)).LoadPackages(".")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	p := plan.NewResolver(pkgs[0]).Resolve()
	require.False(t, p.Diagnostics.HasErrors(), "%v", p.Diagnostics.Error())

	return p
}

func generate(t *testing.T, config GeneratorConfig, p *plan.Plan) string {
	t.Helper()

	file, err := NewGenerator(config).Generate(p)
	require.NoError(t, err)
	assert.Equal(t, config.Output, file.Filename)

	return string(file.Content)
}

func TestGenerator_Generate_Fixtures(t *testing.T) {
	content := generate(t, DefaultGeneratorConfig(), loadFixtures(t))

	assert.True(t, strings.HasPrefix(content, analyze.GeneratedHeader+"\n\npackage fixtures\n"))
	assert.Contains(t, content, "\t\"fmt\"\n")
	assert.Contains(t, content, "\t\"seeded-generator/seeded\"\n")
	assert.Contains(t, content, "\t\"seeded-generator/wire\"\n")

	tests := []struct {
		name     string
		snippets []string
	}{
		{
			name: "dispatch methods",
			snippets: []string{
				"// EncodeSeeded implements seeded.Encoder.",
				"func (x *Document) EncodeSeeded(seed any, e wire.Encoder) error {",
				"func (x *Document) DecodeSeeded(seed any, d wire.Decoder) error {",
				"return encodeDocumentInterner(x, seed, e)",
				"return seeded.UnsupportedSeed(x, seed)",
				"func (x *Wrapper[T]) EncodeSeeded(seed any, e wire.Encoder) error {",
				"return encodeWrapperSeed[T](x, seed, e)",
			},
		},
		{
			name: "field strategies",
			snippets: []string{
				`if err := s.Field(0, "kind", seeded.New(seed, &x.type_)); err != nil {`,
				`if err := s.Field(1, "Tags", seeded.New(seed, (*seeded.Slice[Symbol])(&x.Tags))); err != nil {`,
				`if err := s.Field(2, "Attrs", seeded.New(seed, (*seeded.SortedMap[string, Symbol])(&x.Attrs))); err != nil {`,
				`if err := s.Field(3, "Parent", seeded.New(seed, seeded.Ptr(&x.Parent))); err != nil {`,
				`seeded.MarshalFunc(func(e wire.Encoder) error { return shout.EncodeWith(&x.Title, seed, e) })`,
				`seeded.DecodeValueWith(m, func(d wire.Decoder) error { return shout.DecodeWith(&out.Title, seed, d) })`,
				`seeded.MarshalFunc(func(e wire.Encoder) error { return seeded.Unseeded.EncodeWith(&x.Title, seed, e) })`,
				`seeded.MarshalFunc(func(e wire.Encoder) error { return seeded.UnseededKeys.EncodeWith(&x.Entries, seed, e) })`,
				`seeded.DecodeValueWith(m, func(d wire.Decoder) error { return seeded.UnseededKeys.DecodeWith(&out.Entries, seed, d) })`,
			},
		},
		{
			name: "skip_serializing_if",
			snippets: []string{
				"n := 5",
				"if !seeded.IsNone(&x.Note) {",
				`s, err := e.EncodeStruct("Document", n)`,
				`if err := s.Skip(4, "Note"); err != nil {`,
				`} else if err := s.Field(4, "Note", seeded.New(seed, &x.Note)); err != nil {`,
			},
		},
		{
			name: "visitor",
			snippets: []string{
				"func visitDocumentInterner(seed *Interner, m wire.MapDecoder) (Document, error) {",
				"seen [6]bool",
				"if err := kd.DecodeIdentifier(&id); err != nil {",
				"return out, wire.MissingField(\"kind\")",
				`var documentFields = []string{"kind", "Tags", "Attrs", "Parent", "Note", "Title"}`,
				"return wire.UnknownField(v, documentFields)",
				"return wire.UnknownFieldBytes(v, documentFields)",
				"return wire.InvalidFieldIndex(v)",
			},
		},
		{
			name: "transparent",
			snippets: []string{
				"return seeded.Encode(seed, e, &x.Name)",
				"if err := seeded.Decode(seed, d, &out.Name); err != nil {",
			},
		},
		{
			name: "positional",
			snippets: []string{
				`s, err := e.EncodeTupleStruct("Triple", 2)`,
				"if err := s.Element(seeded.New(seed, &x.Third)); err != nil {",
				`if err := seeded.DecodeElement(seed, s, 1, "tuple struct Triple with 2 elements", &out.Third); err != nil {`,
				`return e.EncodeNewtypeStruct("Newtype", seeded.New(seed, (*Seeded[uint32])(x)))`,
				`return e.EncodeUnitStruct("Unit")`,
			},
		},
		{
			name: "union",
			snippets: []string{
				"func dispatchEncodeBar(x *Bar, seed any, e wire.Encoder) error {",
				"seeded.RegisterUnion[Bar](dispatchEncodeBar, dispatchDecodeBar)",
				"switch arm := (*x).(type) {",
				"case *Tuple:",
				`return seeded.NilUnion("Bar")`,
				`return e.EncodeUnitVariant("Bar", 0, "Unit")`,
				`return e.EncodeNewtypeVariant("Bar", 1, "Newtype", seeded.New(seed, (*Seeded[uint32])(&arm)))`,
				`s, err := e.EncodeStructVariant("Bar", 3, "Struct", 2)`,
				`return seeded.UnknownArm("Bar", *x)`,
				`vd, err := d.DecodeEnum("Bar", barVariants, &id)`,
				"return wire.InvalidVariantIndex(v)",
				"*x = &arm",
				`"tuple variant Bar::Tuple with 2 elements"`,
			},
		},
		{
			name: "bounds",
			snippets: []string{
				"if err := seeded.RequireEncodable[T](); err != nil {",
				"if err := seeded.RequireDecodable[T](); err != nil {",
				`if err := seeded.RequireBound[T, fmt.Stringer]("T fmt.Stringer"); err != nil {`,
			},
		},
		{
			name: "params entry point",
			snippets: []string{
				"func DecodeKeyedTableK[K comparable](x *Keyed, seed *Table[K], d wire.Decoder) error {",
				"out, err := visitKeyedTableK[K](seed, m)",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, s := range tc.snippets {
				assert.Contains(t, content, s)
			}
		})
	}

	assert.NotContains(t, content, "Scratch")
	assert.NotContains(t, content, "cache")
	assert.NotContains(t, content, "Hits")
	assert.NotContains(t, content, "func (x *Keyed) DecodeSeeded")
	assert.NotContains(t, content, "func (x *Named[T]) DecodeSeeded")
	assert.Equal(t, 1, strings.Count(content, "type structField int"))
	assert.Equal(t, 1, strings.Count(content, "func visitStructSeed("))
}

func TestGenerator_Generate_Deterministic(t *testing.T) {
	p := loadFixtures(t)

	first := generate(t, DefaultGeneratorConfig(), p)
	second := generate(t, DefaultGeneratorConfig(), p)

	assert.Equal(t, first, second)
}

func TestGenerator_Generate_WithoutComments(t *testing.T) {
	config := DefaultGeneratorConfig()
	config.Comments = false

	content := generate(t, config, loadFixtures(t))

	assert.NotContains(t, content, "// encodeDocumentInterner writes x")
	assert.NotContains(t, content, "// EncodeSeeded implements")
	assert.Contains(t, content, "func encodeDocumentInterner(x *Document, seed *Interner, e wire.Encoder) error {")
}

func TestGenerator_Generate_Unformatted(t *testing.T) {
	config := DefaultGeneratorConfig()
	config.Format = false
	config.Output = "codecs.go"

	content := generate(t, config, loadFixtures(t))

	assert.Contains(t, content, "package fixtures")
	assert.Contains(t, content, "func encodeDocumentInterner(")
}

func TestGenerator_Generate_PlanWithErrors(t *testing.T) {
	p := &plan.Plan{Package: analyze.NewPackage("example.com/broken", "broken")}
	p.Diagnostics.AddError(diagnostic.CodeMissingSeed, "`ser` spec without `seed(...)`", token.Position{}, "T", "")

	_, err := NewGenerator(DefaultGeneratorConfig()).Generate(p)
	require.ErrorIs(t, err, ErrPlanHasErrors)
}

const sampleSource = `package sample

import "bytes"

var _ bytes.Buffer

type Seed struct{}

type Key [2]int

//seeded(ser(seed(Seed)), ser(seed(bytes.Buffer)))
type Record struct {
	Index map[Key]string
	Raw   []byte
	Count int ` + "`seeded:\"skip_serializing_if(isZero)\"`" + `
}

func isZero(n *int) bool { return *n == 0 }

//seeded(serde(seed(Seed), bounds(T comparable)))
type Box[T any] struct {
	V T
}

//seeded(de(seed(Seed)))
type Names []string

//seeded(ser(seed(Seed)))
type Mode interface {
	isMode()
}

type On struct{}

type Off struct{}

func (On) isMode()  {}
func (Off) isMode() {}
`

func TestGenerator_Generate_Sample(t *testing.T) {
	content := generate(t, DefaultGeneratorConfig(), loadSource(t, sampleSource))

	snippets := []string{
		"package sample",
		"\t\"bytes\"\n",
		"case *Seed:\n\t\treturn encodeRecordSeed(x, seed, e)",
		"case *bytes.Buffer:\n\t\treturn encodeRecordBytesBuffer(x, seed, e)",
		"func encodeRecordBytesBuffer(x *Record, seed *bytes.Buffer, e wire.Encoder) error {",
		`seeded.New(seed, (*seeded.HashMap[Key, string])(&x.Index))`,
		`if err := s.Field(1, "Raw", seeded.New(seed, &x.Raw)); err != nil {`,
		"if !isZero(&x.Count) {",
		"n := 2",
		"// T comparable: not checked",
		"func encodeBoxSeed[T any](x *Box[T], seed *Seed, e wire.Encoder) error {",
		"func (x *Names) DecodeSeeded(seed any, d wire.Decoder) error {",
		"if err := seeded.Decode(seed, nd, (*seeded.Slice[string])(&out)); err != nil {",
		"seeded.RegisterUnion[Mode](dispatchEncodeMode, nil)",
		"switch (*x).(type) {",
		`return e.EncodeUnitVariant("Mode", 1, "Off")`,
	}

	for _, s := range snippets {
		assert.Contains(t, content, s)
	}

	assert.NotContains(t, content, "func (x *Names) EncodeSeeded")
	assert.NotContains(t, content, "dispatchDecodeMode")
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	file := &GeneratedFile{Filename: "seeded_gen.go", Content: []byte("package p\n")}

	current, err := UpToDate(file, dir)
	require.NoError(t, err)
	assert.False(t, current)

	require.NoError(t, writeDebugUnformatted(dir, file.Filename, []byte("package p\nfunc (")))
	assert.FileExists(t, filepath.Join(dir, "_seeded_gen.unformatted.go"))

	require.NoError(t, WriteFile(file, dir))
	assert.NoFileExists(t, filepath.Join(dir, "_seeded_gen.unformatted.go"))

	current, err = UpToDate(file, dir)
	require.NoError(t, err)
	assert.True(t, current)

	file.Content = []byte("package q\n")
	current, err = UpToDate(file, dir)
	require.NoError(t, err)
	assert.False(t, current)
}

func TestDebugName(t *testing.T) {
	assert.Equal(t, "_seeded_gen.unformatted.go", debugName("seeded_gen.go"))
	assert.Equal(t, "_out.unformatted.go", debugName("out"))
}
