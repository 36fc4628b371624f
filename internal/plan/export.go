package plan

import (
	"gopkg.in/yaml.v3"
)

// Report is the YAML view of a plan printed by `seeded-generator inspect`.
type Report struct {
	Package     string       `yaml:"package"`
	Types       []TypeReport `yaml:"types"`
	Diagnostics []string     `yaml:"diagnostics,omitempty"`
}

// TypeReport describes one planned type.
type TypeReport struct {
	Name        string        `yaml:"name"`
	Wire        string        `yaml:"wire"`
	Kind        string        `yaml:"kind"`
	Layout      string        `yaml:"layout,omitempty"`
	Transparent bool          `yaml:"transparent,omitempty"`
	Fields      []FieldReport `yaml:"fields,omitempty"`
	Arms        []ArmReport   `yaml:"arms,omitempty"`
	Ser         []SpecReport  `yaml:"ser,omitempty"`
	De          []SpecReport  `yaml:"de,omitempty"`
}

// FieldReport describes one field.
type FieldReport struct {
	Name    string `yaml:"name"`
	Wire    string `yaml:"wire,omitempty"`
	Type    string `yaml:"type"`
	Index   *int   `yaml:"index,omitempty"`
	Skip    bool   `yaml:"skip,omitempty"`
	Default bool   `yaml:"default,omitempty"`
	With    string `yaml:"with,omitempty"`
	SkipIf  string `yaml:"skip_serializing_if,omitempty"`
}

// ArmReport describes one union arm.
type ArmReport struct {
	Index   int           `yaml:"index"`
	Name    string        `yaml:"name"`
	Type    string        `yaml:"type"`
	Pointer bool          `yaml:"pointer,omitempty"`
	Layout  string        `yaml:"layout"`
	Fields  []FieldReport `yaml:"fields,omitempty"`
}

// SpecReport describes one spec.
type SpecReport struct {
	Seed   string   `yaml:"seed"`
	Func   string   `yaml:"func"`
	Params []string `yaml:"params,omitempty"`
	Bounds []string `yaml:"bounds,omitempty"`
}

// Export builds the report of p.
func Export(p *Plan) *Report {
	r := &Report{Types: []TypeReport{}}
	if p.Package != nil {
		r.Package = p.Package.Path
	}

	for _, t := range p.Types {
		tr := TypeReport{
			Name: t.Name,
			Wire: t.WireName,
			Kind: t.Kind.String(),
			Ser:  exportSpecs(t, t.Ser),
			De:   exportSpecs(t, t.De),
		}

		if t.Kind == KindRecord {
			tr.Layout = t.Shape.Layout().String()
			tr.Transparent = t.Attrs.Transparent
			tr.Fields = exportFields(t.Shape)
		}

		for _, a := range t.Arms {
			tr.Arms = append(tr.Arms, ArmReport{
				Index:   a.Index,
				Name:    a.Name,
				Type:    a.Decl.Name,
				Pointer: a.Pointer,
				Layout:  a.Shape.Layout().String(),
				Fields:  exportFields(a.Shape),
			})
		}

		r.Types = append(r.Types, tr)
	}

	for _, d := range p.Diagnostics.All() {
		r.Diagnostics = append(r.Diagnostics, d.Severity.String()+": "+d.String())
	}

	return r
}

// ExportYAML renders the report of p as YAML.
func ExportYAML(p *Plan) ([]byte, error) {
	return yaml.Marshal(Export(p))
}

func exportFields(s Shape) []FieldReport {
	out := make([]FieldReport, 0, len(s.Fields))

	for _, f := range s.Fields {
		fr := FieldReport{
			Name:    f.GoName,
			Wire:    f.WireName,
			Skip:    f.Skipped(),
			Default: f.Attrs.Default,
			With:    f.Attrs.With.String(),
			SkipIf:  f.Attrs.SkipIf.String(),
		}

		if f.Type != nil {
			fr.Type = f.Type.String()
		}

		if f.Convert {
			fr.Name = "(conversion)"
		}

		if !f.Skipped() {
			fr.Index = &f.WireIndex
		}

		out = append(out, fr)
	}

	return out
}

func exportSpecs(t *Type, specs []Spec) []SpecReport {
	out := make([]SpecReport, 0, len(specs))

	for _, s := range specs {
		sr := SpecReport{
			Seed: s.SeedString(),
			Func: EntryName(t.Name, s),
		}

		for _, p := range s.Params {
			sr.Params = append(sr.Params, p.String())
		}

		for _, b := range s.Bounds {
			sr.Bounds = append(sr.Bounds, b.String())
		}

		out = append(out, sr)
	}

	return out
}
