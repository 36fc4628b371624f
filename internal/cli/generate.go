package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"seeded-generator/internal/analyze"
	"seeded-generator/internal/gen"
	"seeded-generator/internal/plan"
)

// ErrStale is returned by generate --check when a generated file differs
// from what would be written.
var ErrStale = errors.New("generated code is out of date")

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [packages]",
		Short: "Write the seeded codecs of the annotated types of each package",
		Long: `Loads the packages matching the given patterns (default ".") and writes
one file per package holding the codecs of every annotated type. A package
with errors gets no file; the command then fails.`,
		RunE: runGenerate,
	}

	cmd.Flags().Bool("comments", true, "emit doc comments on generated functions")
	cmd.Flags().Bool("format", true, "gofmt the generated file")
	cmd.Flags().Bool("check", false, "only verify that the generated files are up to date")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}

	pkgs, err := analyze.NewAnalyzer(
		analyze.WithDir(s.dir),
		analyze.WithIgnoredFile(s.cfg.Output),
		analyze.WithLogger(s.log),
	).LoadPackages(patternsOrDot(args)...)
	if err != nil {
		return err
	}

	generator := gen.NewGenerator(gen.GeneratorConfig{
		Output:   s.cfg.Output,
		Comments: s.cfg.Comments,
		Format:   s.cfg.Format,
	}, gen.WithGeneratorLogger(s.log))

	out := cmd.OutOrStdout()
	success := color.New(color.FgGreen)

	var failed, stale int

	for _, pkg := range pkgs {
		p := plan.NewResolver(pkg, plan.WithOverrides(s.overrides), plan.WithLogger(s.log)).Resolve()
		printDiagnostics(cmd.ErrOrStderr(), p.Diagnostics)

		if p.Diagnostics.HasErrors() {
			failed++
			continue
		}

		if len(p.Types) == 0 {
			s.log.Debug("no annotated types", zap.String("package", pkg.Path))
			continue
		}

		file, err := generator.Generate(p)
		if err != nil {
			color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "%s: %v\n", pkg.Path, err)

			failed++

			continue
		}

		path := filepath.Join(pkg.Dir, file.Filename)

		if check {
			ok, err := gen.UpToDate(file, pkg.Dir)
			if err != nil {
				return err
			}

			if !ok {
				color.New(color.FgYellow).Fprintf(out, "stale %s\n", path)

				stale++
			}

			continue
		}

		if err := gen.WriteFile(file, pkg.Dir); err != nil {
			return err
		}

		success.Fprintf(out, "generated %s (%d types)\n", path, len(p.Types))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d package(s) failed", failed, len(pkgs))
	}

	if stale > 0 {
		return fmt.Errorf("%w: %d file(s)", ErrStale, stale)
	}

	return nil
}
