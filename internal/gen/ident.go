package gen

import (
	"strconv"

	"seeded-generator/internal/analyze"
	"seeded-generator/internal/plan"
)

// identData feeds identTemplate.
type identData struct {
	Type  string
	Names string
	Cases []identCase
	// Kind is "Field" or "Variant" and selects the wire error helpers.
	Kind string
	// Index, Unknown and UnknownBytes are the qualified error helpers.
	Index        string
	Unknown      string
	UnknownBytes string
}

type identCase struct {
	Index int
	Name  string
}

var identTemplate = mustParse("ident", `
// {{.Type}} identifies a {{if eq .Kind "Field"}}field{{else}}variant{{end}} by index, name or name bytes.
type {{.Type}} int

var {{.Names}} = []string{ {{- range $i, $c := .Cases}}{{if $i}}, {{end}}{{$c.Name}}{{end -}} }

func (id *{{.Type}}) VisitIndex(v uint64) error {
{{- if .Cases}}
	if v >= uint64(len({{.Names}})) {
		return {{.Index}}(v)
	}

	*id = {{.Type}}(v)

	return nil
{{- else}}
	return {{.Index}}(v)
{{- end}}
}

func (id *{{.Type}}) VisitString(v string) error {
{{- if .Cases}}
	switch v {
{{- range .Cases}}
	case {{.Name}}:
		*id = {{.Index}}
{{- end}}
	default:
		return {{.Unknown}}(v, {{.Names}})
	}

	return nil
{{- else}}
	return {{.Unknown}}(v, {{.Names}})
{{- end}}
}

func (id *{{.Type}}) VisitBytes(v []byte) error {
{{- if .Cases}}
	switch string(v) {
{{- range .Cases}}
	case {{.Name}}:
		*id = {{.Index}}
{{- end}}
	default:
		return {{.UnknownBytes}}(v, {{.Names}})
	}

	return nil
{{- else}}
	return {{.UnknownBytes}}(v, {{.Names}})
{{- end}}
}
`)

// ident writes the field identifier of a declaration's named shape and
// returns the name of its field list.
func (f *file) ident(d *analyze.Decl, s plan.Shape) string {
	typ := fieldIdent(d.Name)

	f.identifier(identData{
		Type:         typ,
		Names:        typ + "s",
		Cases:        cases(s.Names()),
		Kind:         "Field",
		Index:        f.wr("InvalidFieldIndex"),
		Unknown:      f.wr("UnknownField"),
		UnknownBytes: f.wr("UnknownFieldBytes"),
	})

	return typ + "s"
}

// variants writes the variant identifier of a union and returns the name of
// its variant list.
func (f *file) variants(u *plan.Type) string {
	typ := variantIdent(u.Name)

	names := make([]string, len(u.Arms))
	for i, a := range u.Arms {
		names[i] = a.Name
	}

	f.identifier(identData{
		Type:         typ,
		Names:        typ + "s",
		Cases:        cases(names),
		Kind:         "Variant",
		Index:        f.wr("InvalidVariantIndex"),
		Unknown:      f.wr("UnknownVariant"),
		UnknownBytes: f.wr("UnknownVariantBytes"),
	})

	return typ + "s"
}

func (f *file) identifier(data identData) {
	if f.idents[data.Type] {
		return
	}

	f.idents[data.Type] = true

	_ = f.execute(identTemplate, data)
}

func cases(names []string) []identCase {
	out := make([]identCase, len(names))
	for i, n := range names {
		out[i] = identCase{Index: i, Name: strconv.Quote(n)}
	}

	return out
}
