package gen

import (
	"bytes"
	"fmt"
	"text/template"

	"seeded-generator/internal/attr"
	"seeded-generator/internal/plan"
)

// dispatchData feeds dispatchTemplate.
type dispatchData struct {
	// Method is set for a record's method; Func names a union's function.
	Method   string
	Iface    string
	Func     string
	Comments bool

	Self    string
	Arg     string
	ArgType string
	Cases   []dispatchCase

	Unsupported string
}

// dispatchCase routes one seed type to its entry point.
type dispatchCase struct {
	Seed  string
	Entry string
}

var dispatchTemplate = mustParse("dispatch", `
{{- if .Method}}{{if .Comments}}// {{.Method}} implements seeded.{{.Iface}}.
{{end}}func (x *{{.Self}}) {{.Method}}(seed any, {{.Arg}} {{.ArgType}}) error {
{{- else}}func {{.Func}}(x *{{.Self}}, seed any, {{.Arg}} {{.ArgType}}) error {
{{- end}}
	switch seed := seed.(type) {
{{- range .Cases}}
	case *{{.Seed}}:
		return {{.Entry}}(x, seed, {{$.Arg}})
{{- end}}
	}

	return {{.Unsupported}}(x, seed)
}
`)

// registerData feeds registerTemplate.
type registerData struct {
	Register string
	Self     string
	Encode   string
	Decode   string
}

var registerTemplate = mustParse("register", `func init() {
	{{.Register}}[{{.Self}}]({{.Encode}}, {{.Decode}})
}
`)

// dispatch writes the methods, or for a union the registered functions,
// routing a dynamically typed seed to the matching spec.
func (f *file) dispatch(t *plan.Type) error {
	reg := registerData{Self: t.Name, Encode: "nil", Decode: "nil"}

	for _, dir := range []attr.Direction{attr.Ser, attr.De} {
		data := dispatchData{
			Method:   "EncodeSeeded",
			Iface:    "Encoder",
			Func:     "dispatchEncode" + t.Name,
			Comments: f.comments,
			Arg:      "e",
			ArgType:  "Encoder",
		}

		if dir == attr.De {
			data.Method, data.Iface, data.Func = "DecodeSeeded", "Decoder", "dispatchDecode"+t.Name
			data.Arg, data.ArgType = "d", "Decoder"
		}

		for _, s := range t.Specs(dir) {
			if !s.Dispatched() {
				continue
			}

			sc, err := f.specContext(t, s)
			if err != nil {
				return err
			}

			data.Self = sc.self
			data.Cases = append(data.Cases, dispatchCase{Seed: sc.seed, Entry: sc.entry + sc.params.Ref()})
		}

		if len(data.Cases) == 0 {
			continue
		}

		data.ArgType = f.wr(data.ArgType)
		data.Unsupported = f.sd("UnsupportedSeed")

		if t.Kind == plan.KindUnion {
			if dir == attr.De {
				reg.Decode = data.Func
			} else {
				reg.Encode = data.Func
			}

			data.Method = ""
		}

		if err := f.execute(dispatchTemplate, data); err != nil {
			return err
		}
	}

	if t.Kind == plan.KindUnion && (reg.Encode != "nil" || reg.Decode != "nil") {
		reg.Register = f.sd("RegisterUnion")

		return f.execute(registerTemplate, reg)
	}

	return nil
}

// execute renders a template into a new declaration.
func (f *file) execute(tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing %s template: %w", tmpl.Name(), err)
	}

	f.add(buf.String())

	return nil
}
