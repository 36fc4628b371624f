package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFile writes the generated file into dir. A debug sidecar left by an
// earlier failed run is removed.
func WriteFile(file *GeneratedFile, dir string) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	outputPath := filepath.Join(dir, file.Filename)
	if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
		return fmt.Errorf("writing file %s: %w", file.Filename, err)
	}

	err := os.Remove(filepath.Join(dir, debugName(file.Filename)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing debug output: %w", err)
	}

	return nil
}

// UpToDate reports whether dir already holds exactly the generated file.
func UpToDate(file *GeneratedFile, dir string) (bool, error) {
	current, err := os.ReadFile(filepath.Join(dir, file.Filename))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("reading file %s: %w", file.Filename, err)
	}

	return bytes.Equal(current, file.Content), nil
}
