package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "generated")

	files := []GeneratedFile{
		{Filename: "score.go", Content: []byte("package quality\n")},
		{Filename: "weight.go", Content: []byte("package quality\n")},
	}

	require.NoError(t, WriteFiles(files, dir))

	for _, f := range files {
		content, err := os.ReadFile(filepath.Join(dir, f.Filename))
		require.NoError(t, err)
		assert.Equal(t, f.Content, content)
	}
}

func TestWriteFiles_SupersedesStaleSidecar(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, writeDebugUnformatted(dir, "score.go", []byte("package quality\nfunc broken(")))

	sidecar := filepath.Join(dir, "score.unformatted.go")
	_, err := os.Stat(sidecar)
	require.NoError(t, err)

	files := []GeneratedFile{{Filename: "score.go", Content: []byte("package quality\n")}}
	require.NoError(t, WriteFiles(files, dir))

	// The failed run's debris is gone once the artifact writes cleanly.
	_, err = os.Stat(sidecar)
	assert.True(t, os.IsNotExist(err))
}

func TestWriteDebugUnformatted(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, writeDebugUnformatted(dir, "score.go", []byte("package quality\nfunc broken(")))

	content, err := os.ReadFile(filepath.Join(dir, "score.unformatted.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "func broken(")
}
