package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	}
}

func TestDiscoverSourcesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.png", "b.jpg", "c.txt", "d.tiff")

	got, err := DiscoverSources([]string{dir}, false, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "b.jpg"),
		filepath.Join(dir, "d.tiff"),
	}, got)
}

func TestDiscoverSourcesRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.png", "sub/b.png", "sub/deep/c.jpg")

	flat, err := DiscoverSources([]string{dir}, false, nil, nil)
	require.NoError(t, err)
	assert.Len(t, flat, 1)

	deep, err := DiscoverSources([]string{dir}, true, nil, nil)
	require.NoError(t, err)
	assert.Len(t, deep, 3)
}

func TestDiscoverSourcesExclude(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "keep.png", "skip.png")

	got, err := DiscoverSources([]string{dir}, false, nil, []string{"skip.*"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "keep.png")}, got)
}

func TestDiscoverSourcesExplicitFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.png")

	got, err := DiscoverSources([]string{filepath.Join(dir, "a.png")}, false, nil, nil)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestDiscoverSourcesMissingPath(t *testing.T) {
	_, err := DiscoverSources([]string{filepath.Join(t.TempDir(), "nope")}, false, nil, nil)
	assert.Error(t, err)
}
