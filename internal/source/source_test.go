package source

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokinpui/nbanswer/internal/logger"
)

func TestSubmissionsFromDirectory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"template.ipynb", "bob.ipynb", "alice.md", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644))
	}

	files, err := New(dir, "elsewhere/template.ipynb", t.TempDir()).Submissions()
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "alice.md"), filepath.Join(dir, "bob.ipynb")}, files)
}

func TestSubmissionsFromZip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "week4.zip")
	f, err := os.Create(archive)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for _, name := range []string{"week4/alice.ipynb", "week4/template.ipynb"} {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("{}"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	work := t.TempDir()
	files, err := New(archive, "template.ipynb", work).Submissions()
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(work, "week4", "week4", "alice.ipynb")}, files)
}

func TestSubmissionsRejectsOtherFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.txt")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := New(path, "t.ipynb", t.TempDir()).Submissions()
	assert.Error(t, err)

	_, err = New(filepath.Join(t.TempDir(), "missing"), "t.ipynb", t.TempDir()).Submissions()
	assert.Error(t, err)
}

func TestSubmissionsLogsDiscovery(t *testing.T) {
	t.Cleanup(func() { logger.Init(logger.DefaultConfig()) })
	var buf bytes.Buffer
	logger.Init(&logger.Config{Level: logger.DebugLevel, Output: &buf})

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "template.ipynb"), []byte("{}"), 0644))

	files, err := New(dir, "template.ipynb", t.TempDir()).Submissions()
	require.NoError(t, err)

	assert.Empty(t, files)
	assert.Contains(t, buf.String(), "skipping template copy")
	assert.Contains(t, buf.String(), "no submissions found")
}
