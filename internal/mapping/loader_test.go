package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	yaml := `
version: "1"
types:
  - name: Struct
    attrs: serde(seed(Interner))
    fields:
      foo: (rename("Foo"))
      bar:
        - default
        - "skip_serializing_if(seeded.IsNone)"
  - name: Bar
    attrs:
      - (ser(seed(Interner)))
      - transparent
`

	of, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.NotNil(t, of)

	assert.Equal(t, "1", of.Version)
	require.Len(t, of.Types, 2)

	st := of.Lookup("Struct")
	require.NotNil(t, st)
	assert.Equal(t, 4, st.Line)

	// Parentheses are added and the column moved onto the one added.
	require.Len(t, st.Attrs, 1)
	assert.Equal(t, "(serde(seed(Interner)))", st.Attrs[0].Text)
	assert.Equal(t, 5, st.Attrs[0].Line)
	assert.Equal(t, 11, st.Attrs[0].Column)

	assert.Equal(t, `(rename("Foo"))`, st.Fields["foo"].First())
	require.Len(t, st.Fields["bar"], 2)
	assert.Equal(t, "(default)", st.Fields["bar"][0].Text)
	assert.Equal(t, "(skip_serializing_if(seeded.IsNone))", st.Fields["bar"][1].Text)

	// The quote is not part of the text.
	assert.Equal(t, 11, st.Fields["bar"][1].Column)

	bar := of.Lookup("Bar")
	require.NotNil(t, bar)
	assert.Len(t, bar.Attrs, 2)
	assert.Nil(t, of.Lookup("Missing"))
}

func TestParse_DefaultsAndMerge(t *testing.T) {
	yaml := `
types:
  - name: A
    attrs: ser(seed(S))
  - name: A
    attrs: de(seed(S))
    fields:
      x: skip
`

	of, err := Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, "1", of.Version)
	require.Len(t, of.Types, 1)

	a := of.Types[0]
	require.Len(t, a.Attrs, 2)
	assert.Equal(t, "(ser(seed(S)))", a.Attrs[0].Text)
	assert.Equal(t, "(de(seed(S)))", a.Attrs[1].Text)
	assert.Equal(t, "(skip)", a.Fields["x"].First())
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("types: [\n"))
	require.Error(t, err)

	_, err = Parse([]byte("types:\n  - name: A\n    attrs: {a: b}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected string or array")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte("types:\n  - name: A\n    attrs: transparent\n"), 0o644))

	of, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, of.Path)

	dirs := of.TypeDirectives("A")
	require.Len(t, dirs, 1)
	assert.Equal(t, "(transparent)", dirs[0].Text)
	assert.Equal(t, path, dirs[0].Pos.Filename)
	assert.Equal(t, 3, dirs[0].Pos.Line)

	assert.Nil(t, of.TypeDirectives("B"))
	assert.Nil(t, of.FieldDirectives("A", "x"))
	assert.Nil(t, of.FieldDirectives("B", "x"))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestOverrideFile_NoFragments(t *testing.T) {
	of, err := Parse([]byte("types:\n  - name: A\n    fields:\n      x: skip\n"))
	require.NoError(t, err)

	assert.Nil(t, of.TypeDirectives("A"))
	assert.Nil(t, of.FieldDirectives("A", "y"))
	require.Len(t, of.FieldDirectives("A", "x"), 1)

	var none *OverrideFile
	assert.Nil(t, none.TypeDirectives("A"))
	assert.Nil(t, none.FieldDirectives("A", "x"))
}

func TestMarshal_RoundTrip(t *testing.T) {
	of, err := Parse([]byte("types:\n  - name: A\n    attrs: [transparent, rename(\"B\")]\n    fields:\n      x: skip\n"))
	require.NoError(t, err)

	data, err := Marshal(of)
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, of.Types[0].Attrs[1].Text, again.Types[0].Attrs[1].Text)
	assert.Equal(t, "(skip)", again.Types[0].Fields["x"].First())
}
