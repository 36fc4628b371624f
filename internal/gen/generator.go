package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"text/template"

	"go.uber.org/zap"

	"seeded-generator/internal/analyze"
	"seeded-generator/internal/attr"
	"seeded-generator/internal/plan"
)

// ErrPlanHasErrors is returned when asked to generate code for a plan whose
// resolution reported errors.
var ErrPlanHasErrors = errors.New("plan has errors")

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Output is the name of the generated file, written to the package
	// directory.
	Output string
	// Comments enables doc comments on generated functions.
	Comments bool
	// Format runs gofmt on the result.
	Format bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Output:   "seeded_gen.go",
		Comments: true,
		Format:   true,
	}
}

// Generator generates the seeded codecs of a resolved plan.
type Generator struct {
	config GeneratorConfig
	log    *zap.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithGeneratorLogger sets the logger.
func WithGeneratorLogger(log *zap.Logger) GeneratorOption {
	return func(g *Generator) { g.log = log }
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig, opts ...GeneratorOption) *Generator {
	g := &Generator{config: config, log: zap.NewNop()}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "seeded_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// templateData feeds fileTemplate.
type templateData struct {
	Header      string
	PackageName string
	Imports     []analyze.ImportSpec
	Decls       []string
}

var fileTemplate = mustParse("file", `{{.Header}}

package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{range .Decls}}
{{.}}
{{end}}`)

func mustParse(name, text string) *template.Template {
	return template.Must(template.New(name).Parse(text))
}

// Generate renders the file holding the codecs of every type in p.
func (g *Generator) Generate(p *plan.Plan) (*GeneratedFile, error) {
	if p.Diagnostics.HasErrors() {
		return nil, fmt.Errorf("%w: %d error(s)", ErrPlanHasErrors, len(p.Diagnostics.Errors))
	}

	f := newFile(p.Package, g.config.Comments)

	for _, t := range p.Types {
		if err := g.generateType(f, t); err != nil {
			return nil, fmt.Errorf("generating %s: %w", t.Name, err)
		}
	}

	data := &templateData{
		Header:      analyze.GeneratedHeader,
		PackageName: p.Package.Name,
		Imports:     f.imports.Specs(),
		Decls:       f.decls,
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	out := &GeneratedFile{Filename: g.config.Output, Content: buf.Bytes()}

	if !g.config.Format {
		return out, nil
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if werr := writeDebugUnformatted(p.Package.Dir, out.Filename, buf.Bytes()); werr != nil {
			g.log.Warn("writing unformatted output", zap.Error(werr))
		}

		return out, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	out.Content = formatted

	g.log.Debug("file generated",
		zap.String("package", p.Package.Path),
		zap.String("file", out.Filename),
		zap.Int("types", len(p.Types)),
		zap.Int("bytes", len(formatted)))

	return out, nil
}

// generateType writes the dispatch, the entry points and their helpers for
// one type.
func (g *Generator) generateType(f *file, t *plan.Type) error {
	if err := f.dispatch(t); err != nil {
		return err
	}

	for _, dir := range []attr.Direction{attr.Ser, attr.De} {
		for _, s := range t.Specs(dir) {
			sc, err := f.specContext(t, s)
			if err != nil {
				return err
			}

			if dir == attr.De {
				err = f.decoder(sc)
			} else {
				err = f.encoder(sc)
			}

			if err != nil {
				return err
			}
		}
	}

	return nil
}
