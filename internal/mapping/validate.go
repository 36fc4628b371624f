package mapping

import (
	"fmt"
	"go/token"
	"sort"

	"seeded-generator/internal/analyze"
	"seeded-generator/internal/diagnostic"
	"seeded-generator/internal/match"
)

// Validate checks that every type and field the overrides name exists in
// pkg. Unknown names are warnings: the entry is ignored.
func Validate(of *OverrideFile, pkg *analyze.Package) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if of == nil || pkg == nil {
		return res
	}

	typeNames := make([]string, 0, len(pkg.Decls))
	for _, d := range pkg.Decls {
		typeNames = append(typeNames, d.Name)
	}

	for i := range of.Types {
		t := &of.Types[i]
		pos := of.position(t.Line, 0)

		d := pkg.Lookup(t.Name)
		if d == nil {
			res.Add(unknown(pos, fmt.Sprintf("type %q not found in package %s", t.Name, pkg.Path),
				t.Name, "", t.Name, typeNames))

			continue
		}

		if len(t.Fields) > 0 && d.Kind != analyze.DeclStruct {
			res.AddWarning(diagnostic.CodeUnknownOverride,
				fmt.Sprintf("%s is not a struct; its field overrides are ignored", t.Name), pos, t.Name, "")

			continue
		}

		fieldNames := make([]string, 0, len(d.Fields))
		for _, f := range d.Fields {
			fieldNames = append(fieldNames, f.Name)
		}

		names := make([]string, 0, len(t.Fields))
		for name := range t.Fields {
			names = append(names, name)
		}

		sort.Strings(names)

		for _, name := range names {
			if hasField(d, name) {
				continue
			}

			at := pos
			if frags := t.Fields[name]; len(frags) > 0 {
				at = of.position(frags[0].Line, 0)
			}

			res.Add(unknown(at, fmt.Sprintf("%s has no field %q", t.Name, name),
				t.Name, name, name, fieldNames))
		}
	}

	return res
}

func unknown(pos token.Position, msg, typ, field, name string, known []string) diagnostic.Diagnostic {
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityWarning,
		Code:     diagnostic.CodeUnknownOverride,
		Message:  msg,
		Pos:      pos,
		Type:     typ,
		Field:    field,
	}

	if s, ok := match.Suggest(name, known); ok {
		d.Suggestions = []string{s}
	}

	return d
}

func hasField(d *analyze.Decl, name string) bool {
	for _, f := range d.Fields {
		if f.Name == name {
			return true
		}
	}

	return false
}
