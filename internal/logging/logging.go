// Package logging builds the zap loggers handed to the analyzer, resolver
// and generator.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a console logger writing to stderr at the given level
// ("debug", "info", "warn", "error").
func New(level string, development bool) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}

	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	if !development {
		cfg.Sampling = nil
		cfg.DisableStacktrace = true
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	return log, nil
}

// NewOrNop is New falling back to a no-op logger.
func NewOrNop(level string, development bool) *zap.Logger {
	log, err := New(level, development)
	if err != nil {
		return zap.NewNop()
	}

	return log
}
