package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"seeded-generator/internal/analyze"
	"seeded-generator/internal/plan"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [packages]",
		Short: "Print the resolved generation plan of each package as YAML",
		RunE:  runInspect,
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
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

	out := cmd.OutOrStdout()
	failed := 0

	for i, pkg := range pkgs {
		p := plan.NewResolver(pkg, plan.WithOverrides(s.overrides), plan.WithLogger(s.log)).Resolve()
		if p.Diagnostics.HasErrors() {
			failed++
		}

		data, err := plan.ExportYAML(p)
		if err != nil {
			return fmt.Errorf("rendering plan of %s: %w", pkg.Path, err)
		}

		if i > 0 {
			fmt.Fprintln(out, "---")
		}

		if _, err := out.Write(data); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d package(s) have errors", failed, len(pkgs))
	}

	return nil
}
