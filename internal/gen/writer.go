package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated artifacts to the output directory,
// creating it if needed. A successful write supersedes the artifact's
// debug sidecar, if an earlier failed run left one behind.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		err := os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		_ = os.Remove(filepath.Join(outputDir, sidecarName(file.Filename)))
	}

	return nil
}

// sidecarName is the debug-sidecar filename for an artifact. Still a .go
// file so editors syntax highlight it, but never colliding with real
// output.
func sidecarName(filename string) string {
	return strings.TrimSuffix(filename, ".go") + ".unformatted.go"
}

// writeDebugUnformatted writes unformatted code to a sidecar file next to
// the intended output. This is best-effort and should never make
// generation fail harder.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(outDir, dirPerm); err != nil {
		return err
	}

	p := filepath.Join(outDir, sidecarName(filename))

	return os.WriteFile(p, content, filePerm)
}
