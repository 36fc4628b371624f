package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// writeDebugUnformatted writes code gofmt rejected to a sidecar next to the
// intended output. Best-effort: the caller only logs its error.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(outDir, debugName(filename)), content, filePerm)
}

// debugName keeps the .go extension so editors highlight the sidecar; the
// leading underscore keeps it out of the package build.
func debugName(filename string) string {
	return "_" + strings.TrimSuffix(filename, ".go") + ".unformatted.go"
}
