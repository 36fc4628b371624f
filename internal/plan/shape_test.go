package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"seeded-generator/internal/attr"
)

func fields(names ...string) []Field {
	out := make([]Field, 0, len(names))

	for i, n := range names {
		f := Field{GoName: n, WireName: n, Index: i}
		if n == "_" {
			f.Attrs.Skip = true
		}

		out = append(out, f)
	}

	return out
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		fields     []Field
		positional bool
		kind       ShapeKind
		layout     Layout
		wire       []int
	}{
		{name: "empty struct", kind: ShapeUnit, layout: LayoutUnit},
		{name: "empty tuple", positional: true, kind: ShapeUnit, layout: LayoutUnit},
		{name: "named", fields: fields("a", "b"), kind: ShapeNamed, layout: LayoutStruct, wire: []int{0, 1}},
		{name: "named single", fields: fields("a"), kind: ShapeNamed, layout: LayoutStruct, wire: []int{0}},
		{name: "named all skipped", fields: fields("_"), kind: ShapeNamed, layout: LayoutStruct, wire: []int{-1}},
		{name: "tuple", fields: fields("a", "b", "c"), positional: true, kind: ShapePositional, layout: LayoutTuple, wire: []int{0, 1, 2}},
		{name: "tuple with hole", fields: fields("a", "_", "c"), positional: true, kind: ShapePositional, layout: LayoutTuple, wire: []int{0, -1, 1}},
		{name: "tuple collapses to newtype", fields: fields("_", "b"), positional: true, kind: ShapePositional, layout: LayoutNewtype, wire: []int{-1, 0}},
		{name: "tuple collapses to unit", fields: fields("_", "_"), positional: true, kind: ShapePositional, layout: LayoutUnit, wire: []int{-1, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Normalize(tt.fields, tt.positional)

			assert.Equal(t, tt.kind, s.Kind)
			assert.Equal(t, tt.layout, s.Layout())

			var wire []int
			for _, f := range s.Fields {
				wire = append(wire, f.WireIndex)
			}

			assert.Equal(t, tt.wire, wire)
			assert.Len(t, s.Active(), len(tt.fields)-countSkipped(tt.fields))
		})
	}
}

func countSkipped(fs []Field) int {
	n := 0

	for _, f := range fs {
		if f.Attrs.Skip {
			n++
		}
	}

	return n
}

func TestNormalize_DoesNotModifyInput(t *testing.T) {
	in := fields("a", "_")
	in[0].WireIndex = 7

	Normalize(in, false)

	assert.Equal(t, 7, in[0].WireIndex)
	assert.Zero(t, in[1].WireIndex)
}

func TestShape_Names(t *testing.T) {
	s := Normalize(fields("a", "_", "c"), false)
	assert.Equal(t, []string{"a", "c"}, s.Names())
	assert.Empty(t, Shape{}.Names())
}

func TestLayout_String(t *testing.T) {
	assert.Equal(t, "newtype", LayoutNewtype.String())
	assert.Equal(t, "Layout(9)", Layout(9).String())
}

func TestWireName(t *testing.T) {
	assert.Equal(t, "type", wireName("type_"))
	assert.Equal(t, "_", wireName("_"))
	assert.Equal(t, "Name", wireName("Name"))
	assert.Equal(t, "a_b", wireName("a_b"))
}

func TestSuffix(t *testing.T) {
	tests := map[string]string{
		"Interner":        "Interner",
		"*intern.Table":   "InternTable",
		"Interner[K]":     "InternerK",
		"map[string]int":  "MapStringInt",
		"bytes.Buffer":    "BytesBuffer",
		"[]*seed.Context": "SeedContext",
		"*":               "Seed",
	}

	for in, want := range tests {
		assert.Equal(t, want, suffix(in), in)
	}
}

func TestSuffixes_Distinct(t *testing.T) {
	s := make(suffixes)

	assert.Equal(t, "ATable", s.next("a.Table"))
	assert.Equal(t, "ATable2", s.next("*a.Table"))
	assert.Equal(t, "ATable3", s.next("a_Table"))
	assert.Equal(t, "B", s.next("B"))
}

func TestEntryName(t *testing.T) {
	spec := Spec{Direction: attr.Ser, Suffix: "Interner"}
	assert.Equal(t, "encodeDocInterner", EntryName("Doc", spec))

	spec.Direction = attr.De
	spec.Params = []attr.Param{{Name: "K"}}
	assert.Equal(t, "DecodeDocInterner", EntryName("Doc", spec))
}

func TestExportYAML(t *testing.T) {
	p := NewResolver(loadFixtures(t)).Resolve()

	data, err := ExportYAML(p)
	require.NoError(t, err)

	var r Report
	require.NoError(t, yaml.Unmarshal(data, &r))

	assert.Equal(t, "seeded-generator/examples/fixtures", r.Package)

	byName := make(map[string]TypeReport, len(r.Types))
	for _, tr := range r.Types {
		byName[tr.Name] = tr
	}

	bar := byName["Bar"]
	assert.Equal(t, "Union", bar.Kind)
	assert.Empty(t, bar.Layout)
	require.Len(t, bar.Arms, 4)
	assert.Equal(t, "tuple", bar.Arms[2].Layout)
	assert.True(t, bar.Arms[2].Pointer)

	newtype := byName["Newtype"]
	assert.Equal(t, "newtype", newtype.Layout)
	require.Len(t, newtype.Fields, 1)
	assert.Equal(t, "(conversion)", newtype.Fields[0].Name)
	assert.Empty(t, newtype.Fields[0].Wire)

	// Positional fields are reported by wire index only.
	triple := byName["Triple"]
	require.Len(t, triple.Fields, 3)
	assert.Empty(t, triple.Fields[2].Wire)
	require.NotNil(t, triple.Fields[2].Index)
	assert.Equal(t, 1, *triple.Fields[2].Index)
	assert.Nil(t, triple.Fields[1].Index)

	doc := byName["Document"]
	assert.Equal(t, "struct", doc.Layout)
	require.Len(t, doc.Ser, 1)
	assert.Equal(t, SpecReport{Seed: "Interner", Func: "encodeDocumentInterner"}, doc.Ser[0])

	assert.Equal(t, "kind", doc.Fields[0].Wire)

	cache := doc.Fields[4]
	assert.True(t, cache.Skip)
	assert.Nil(t, cache.Index)
	require.NotNil(t, doc.Fields[5].Index)
	assert.Equal(t, 4, *doc.Fields[5].Index)
	assert.Equal(t, "seeded.IsNone", doc.Fields[5].SkipIf)

	keyed := byName["Keyed"]
	require.Len(t, keyed.De, 1)
	assert.Equal(t, []string{"K comparable"}, keyed.De[0].Params)

	assert.Equal(t, []string{"T fmt.Stringer"}, byName["Named"].Ser[0].Bounds)
	assert.NotEmpty(t, r.Diagnostics)
}
