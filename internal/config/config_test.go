package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".yaml"), []byte(body), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(t.TempDir()))
	require.NoError(t, err)

	assert.Equal(t, &Config{
		Output:   "seeded_gen.go",
		Comments: true,
		Format:   true,
		Log:      LogConfig{Level: "info"},
	}, cfg)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
output: codecs_gen.go
overrides: seeded.overrides.yaml
comments: false
log:
  level: debug
  development: true
`)

	cfg, err := Load(New(dir))
	require.NoError(t, err)

	assert.Equal(t, "codecs_gen.go", cfg.Output)
	assert.Equal(t, "seeded.overrides.yaml", cfg.Overrides)
	assert.False(t, cfg.Comments)
	assert.True(t, cfg.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "output: codecs_gen.go\n")

	t.Setenv("SEEDED_OUTPUT", "env_gen.go")
	t.Setenv("SEEDED_LOG_LEVEL", "warn")

	cfg, err := Load(New(dir))
	require.NoError(t, err)

	assert.Equal(t, "env_gen.go", cfg.Output)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_SetOverridesEverything(t *testing.T) {
	t.Setenv("SEEDED_FORMAT", "true")

	v := New(t.TempDir())
	v.Set(KeyFormat, false)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.False(t, cfg.Format)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"path output", "output: gen/out.go\n", "must be a file name"},
		{"not go", "output: out.txt\n", "must be a non-test .go file"},
		{"test file", "output: out_test.go\n", "must be a non-test .go file"},
		{"empty output", "output: \"\"\n", "output must not be empty"},
		{"log level", "log:\n  level: loud\n", `invalid log level "loud"`},
		{"bad yaml", "output: [\n", "failed to read config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.body)

			_, err := Load(New(dir))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
