// Package config loads the settings of the seeded-generator command from
// seeded.yaml, SEEDED_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Setting keys. Nested keys map to environment variables with dots replaced
// by underscores, e.g. log.level is SEEDED_LOG_LEVEL.
const (
	KeyOutput    = "output"
	KeyOverrides = "overrides"
	KeyComments  = "comments"
	KeyFormat    = "format"
	KeyLogLevel  = "log.level"
	KeyLogDev    = "log.development"
)

// FileName is the config file looked up in the working directory, without
// extension.
const FileName = "seeded"

// EnvPrefix prefixes every environment variable read.
const EnvPrefix = "SEEDED"

// Config represents the seeded-generator configuration.
type Config struct {
	// Output is the name of the generated file in each package directory.
	Output string `mapstructure:"output"`
	// Overrides is the path of a YAML overrides file, if any.
	Overrides string    `mapstructure:"overrides"`
	Comments  bool      `mapstructure:"comments"`
	Format    bool      `mapstructure:"format"`
	Log       LogConfig `mapstructure:"log"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// New returns a viper instance holding the defaults and looking for
// seeded.yaml in dir.
func New(dir string) *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyOutput, "seeded_gen.go")
	v.SetDefault(KeyOverrides, "")
	v.SetDefault(KeyComments, true)
	v.SetDefault(KeyFormat, true)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogDev, false)

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file, if there is one, and decodes the merged
// settings of v.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Output == "" {
		return errors.New("output must not be empty")
	}

	if filepath.Base(cfg.Output) != cfg.Output {
		return fmt.Errorf("output %q must be a file name, not a path", cfg.Output)
	}

	if filepath.Ext(cfg.Output) != ".go" || strings.HasSuffix(cfg.Output, "_test.go") {
		return fmt.Errorf("output %q must be a non-test .go file", cfg.Output)
	}

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	return nil
}
