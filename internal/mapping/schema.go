package mapping

import (
	"go/token"

	"seeded-generator/internal/analyze"
)

// OverrideFile represents the root of a YAML overrides file.
type OverrideFile struct {
	// Version of the overrides schema.
	Version string `yaml:"version,omitempty"`

	// Types lists the per-type overrides.
	Types []TypeOverride `yaml:"types"`

	// Path is the file the overrides were read from, if any.
	Path string `yaml:"-"`
}

// TypeOverride holds the extra attributes of one type.
type TypeOverride struct {
	// Name is the type's identifier in the generated package.
	Name string `yaml:"name"`

	// Attrs are type-level attribute lists.
	Attrs Fragments `yaml:"attrs,omitempty"`

	// Fields maps Go field names to field-level attribute lists.
	Fields map[string]Fragments `yaml:"fields,omitempty"`

	// Line is the line of the entry in the file.
	Line int `yaml:"-"`
}

// Fragment is one attribute list with the position it was written at.
type Fragment struct {
	Text   string
	Line   int
	Column int
}

// Lookup returns the override of the named type, or nil.
func (of *OverrideFile) Lookup(name string) *TypeOverride {
	if of == nil {
		return nil
	}

	for i := range of.Types {
		if of.Types[i].Name == name {
			return &of.Types[i]
		}
	}

	return nil
}

// TypeDirectives returns the type-level fragments as directives.
func (of *OverrideFile) TypeDirectives(name string) []analyze.Directive {
	t := of.Lookup(name)
	if t == nil {
		return nil
	}

	return of.directives(t.Attrs)
}

// FieldDirectives returns the fragments of one field as directives.
func (of *OverrideFile) FieldDirectives(typeName, field string) []analyze.Directive {
	t := of.Lookup(typeName)
	if t == nil {
		return nil
	}

	return of.directives(t.Fields[field])
}

func (of *OverrideFile) directives(frags Fragments) []analyze.Directive {
	if len(frags) == 0 {
		return nil
	}

	out := make([]analyze.Directive, 0, len(frags))
	for _, f := range frags {
		out = append(out, analyze.Directive{
			Text: f.Text,
			Pos:  of.position(f.Line, f.Column),
		})
	}

	return out
}

func (of *OverrideFile) position(line, column int) token.Position {
	return token.Position{Filename: of.Path, Line: line, Column: column}
}
