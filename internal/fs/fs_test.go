package fs

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for name, content := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

func TestExtractZip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "batch.zip")
	writeZip(t, archive, map[string]string{
		"alice.ipynb":          "{}",
		"group/bob.ipynb":      "{}",
		"__MACOSX/._bob.ipynb": "junk",
	})

	out, err := ExtractZip(archive, filepath.Join(dir, "out"))
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(out, "group", "bob.ipynb"))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(content))

	files, err := ListFiles(out, func(p string) bool { return strings.HasSuffix(p, ".ipynb") })
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(out, "alice.ipynb"),
		filepath.Join(out, "group", "bob.ipynb"),
	}, files)
}

func TestExtractZipRejectsEscapingEntries(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.zip")
	writeZip(t, archive, map[string]string{"../escape.ipynb": "{}"})

	_, err := ExtractZip(archive, filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes extraction directory")
	assert.NoFileExists(t, filepath.Join(dir, "escape.ipynb"))
}

func TestExtractZipMissingArchive(t *testing.T) {
	_, err := ExtractZip(filepath.Join(t.TempDir(), "none.zip"), t.TempDir())
	assert.Error(t, err)
}

func TestListFilesSkipsHiddenDirs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".ipynb_checkpoints"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".ipynb_checkpoints", "a-checkpoint.ipynb"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "b.ipynb"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.ipynb"), nil, 0644))

	files, err := ListFiles(dir, func(string) bool { return true })
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "c.ipynb")}, files)
}

func TestEnsureParentDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "reports", "week4", "out.csv")
	require.NoError(t, EnsureParentDir(target))
	assert.DirExists(t, filepath.Dir(target))
}
