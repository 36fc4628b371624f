// Package cli implements the seeded-generator command tree.
package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"seeded-generator/internal/config"
	"seeded-generator/internal/diagnostic"
	"seeded-generator/internal/logging"
	"seeded-generator/internal/mapping"
)

var (
	// Version information, set at build time.
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "seeded-generator",
		Short: "Generate seeded encode/decode code for annotated Go types",
		Long: color.CyanString(`seeded-generator - codecs threading a seed through serialization

Types annotated with //seeded(...) directives get EncodeSeeded and
DecodeSeeded methods that pass an external seed value (an interning
table, a registry, a decoding mode) down to every nested value.`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("dir", "C", ".", "directory to load packages and seeded.yaml from")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringP("output", "o", "seeded_gen.go", "name of the generated file in each package")
	rootCmd.PersistentFlags().String("overrides", "", "YAML file with extra attributes per type and field")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewGenerateCommand())
	rootCmd.AddCommand(NewInspectCommand())

	return rootCmd
}

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)
			out := cmd.OutOrStdout()

			for _, line := range [][2]string{
				{"seeded-generator version: ", Version},
				{"Git commit: ", GitCommit},
				{"Build date: ", BuildDate},
				{"Go version: ", runtime.Version()},
			} {
				titleColor.Fprint(out, line[0])
				valueColor.Fprintln(out, line[1])
			}
		},
	}
}

// Execute runs the root command with args.
func Execute(args []string) error {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)

		return err
	}

	return nil
}

// session is the configuration and logger shared by the commands that load
// packages.
type session struct {
	dir       string
	cfg       *config.Config
	log       *zap.Logger
	overrides *mapping.OverrideFile
}

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"output":    config.KeyOutput,
	"overrides": config.KeyOverrides,
	"log-level": config.KeyLogLevel,
	"comments":  config.KeyComments,
	"format":    config.KeyFormat,
}

func newSession(cmd *cobra.Command) (*session, error) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return nil, err
	}

	v := config.New(dir)

	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	s := &session{
		dir: dir,
		cfg: cfg,
		log: logging.NewOrNop(cfg.Log.Level, cfg.Log.Development),
	}

	if cfg.Overrides != "" {
		path := cfg.Overrides
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}

		s.overrides, err = mapping.LoadFile(path)
		if err != nil {
			return nil, err
		}

		s.log.Debug("overrides loaded", zap.String("file", path), zap.Int("types", len(s.overrides.Types)))
	}

	return s, nil
}

// printDiagnostics writes every diagnostic of ds, colored by severity.
func printDiagnostics(w io.Writer, ds diagnostic.Diagnostics) {
	for _, d := range ds.All() {
		c := color.New(color.FgCyan)

		switch d.Severity {
		case diagnostic.SeverityError:
			c = color.New(color.FgRed)
		case diagnostic.SeverityWarning:
			c = color.New(color.FgYellow)
		}

		c.Fprintf(w, "%s: %s\n", d.Severity, d)
	}
}

func patternsOrDot(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}

	return args
}
