package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pointSource = `package sample

type S struct{}

//seeded(serde(seed(S)))
type Point struct {
	X int
	Y int
}
`

func init() {
	color.NoColor = true
}

func writeModule(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/sample\n\ngo 1.24\n"), 0o644))

	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	assert.Equal(t, "seeded-generator", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.True(t, cmd.SilenceUsage)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}

	assert.ElementsMatch(t, []string{"version", "generate", "inspect"}, names)
}

func TestVersionCommand(t *testing.T) {
	Version = "1.0.0-test"
	GitCommit = "abc123"

	t.Cleanup(func() {
		Version = "dev"
		GitCommit = "unknown"
	})

	stdout, _, err := run(t, "version")
	require.NoError(t, err)

	assert.Contains(t, stdout, "seeded-generator version: 1.0.0-test\n")
	assert.Contains(t, stdout, "Git commit: abc123\n")
	assert.Contains(t, stdout, "Go version: go")
}

func TestGenerate_WriteThenCheck(t *testing.T) {
	dir := writeModule(t, map[string]string{"point.go": pointSource})

	stdout, _, err := run(t, "generate", "-C", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "generated ")
	assert.Contains(t, stdout, "(1 types)")

	path := filepath.Join(dir, "seeded_gen.go")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "// Code generated by seeded-generator. DO NOT EDIT.")
	assert.Contains(t, string(content), "func (x *Point) EncodeSeeded(")

	_, _, err = run(t, "generate", "-C", dir, "--check")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, append(content, '\n'), 0o644))

	stdout, _, err = run(t, "generate", "-C", dir, "--check")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStale))
	assert.Contains(t, stdout, "stale ")
}

func TestGenerate_NoComments(t *testing.T) {
	dir := writeModule(t, map[string]string{"point.go": pointSource})

	_, _, err := run(t, "generate", "-C", dir, "--comments=false")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "seeded_gen.go"))
	require.NoError(t, err)
	assert.NotContains(t, string(content), "// EncodeSeeded implements")
}

func TestGenerate_ConfigFile(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"point.go":    pointSource,
		"seeded.yaml": "output: codecs_gen.go\n",
	})

	_, _, err := run(t, "generate", "-C", dir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "codecs_gen.go"))
	assert.NoFileExists(t, filepath.Join(dir, "seeded_gen.go"))

	// The flag wins over the file. codecs_gen.go stays behind and is skipped
	// while loading: its imports do not resolve in this module.
	_, _, err = run(t, "generate", "-C", dir, "-o", "flag_gen.go")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "flag_gen.go"))
	assert.FileExists(t, filepath.Join(dir, "codecs_gen.go"))

	_, _, err = run(t, "generate", "-C", dir, "-o", "flag_gen.go", "--check")
	require.NoError(t, err)
}

func TestGenerate_Overrides(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"line.go": "package sample\n\ntype S struct{}\n\ntype Line struct {\n\tFrom int\n\tTo   int\n}\n",
		"overrides.yaml": `types:
  - name: Line
    attrs: ser(seed(S))
    fields:
      To: rename("to")
`,
	})

	_, _, err := run(t, "generate", "-C", dir, "--overrides", "overrides.yaml")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "seeded_gen.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "func encodeLineS(")
	assert.Contains(t, string(content), `"to"`)
	assert.NotContains(t, string(content), "DecodeSeeded")
}

func TestGenerate_Diagnostics(t *testing.T) {
	dir := writeModule(t, map[string]string{
		"bad.go": "package sample\n\ntype S struct{}\n\n//seeded(serde(seed(S)), transparant)\ntype Bad struct{ X int }\n",
	})

	_, stderr, err := run(t, "generate", "-C", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 package(s) failed")
	assert.Contains(t, stderr, "error: ")
	assert.Contains(t, stderr, "[UnrecognizedKey]")
	assert.Contains(t, stderr, "did you mean `transparent`?")
	assert.NoFileExists(t, filepath.Join(dir, "seeded_gen.go"))
}

func TestGenerate_InvalidConfig(t *testing.T) {
	dir := writeModule(t, map[string]string{"point.go": pointSource})

	_, _, err := run(t, "generate", "-C", dir, "-o", "gen/out.go")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a file name")
}

func TestInspect(t *testing.T) {
	dir := writeModule(t, map[string]string{"point.go": pointSource})

	stdout, _, err := run(t, "inspect", "-C", dir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "package: example.com/sample")
	assert.Contains(t, stdout, "name: Point")
	assert.Contains(t, stdout, "func: encodePointS")
	assert.Contains(t, stdout, "func: decodePointS")
	assert.NoFileExists(t, filepath.Join(dir, "seeded_gen.go"))
}

func TestExecute_ReportsError(t *testing.T) {
	err := Execute([]string{"generate", "-C", t.TempDir(), "-o", "x.txt"})
	require.Error(t, err)
}
