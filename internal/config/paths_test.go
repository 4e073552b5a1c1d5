package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverPaths_CreatesStandardDirs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tapdlens.yaml"), []byte("{}"), 0o644))

	p, err := DiscoverPaths(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, p.Root)

	for _, d := range []string{p.LocalDataDir(), p.VectorDataDir(), p.TimeTrendDir(), p.ModelsDir()} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestDiscoverPaths_WalksUpward(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "tapdlens.yaml"), []byte("{}"), 0o644))
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	p, err := DiscoverPaths(nested)
	require.NoError(t, err)
	assert.Equal(t, root, p.Root)
}

func TestPaths_DataFile(t *testing.T) {
	dir := t.TempDir()
	p, err := DiscoverPaths(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(p.LocalDataDir(), "issues.json"), p.DataFile("issues.json"))
	assert.Equal(t, "/abs/issues.json", p.DataFile("/abs/issues.json"))
}

func TestPaths_VectorIndexBase(t *testing.T) {
	dir := t.TempDir()
	p, err := DiscoverPaths(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(p.VectorDataDir(), "issues"), p.VectorIndexBase("issues"))
}
