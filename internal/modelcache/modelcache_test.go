package modelcache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tapdlens/internal/embedding"
)

func TestProbeSnapshot_PicksMostRecent(t *testing.T) {
	modelsDir := t.TempDir()
	base := filepath.Join(modelsDir, "models--sentence-transformers--paraphrase-MiniLM-L6-v2", "snapshots")

	older := filepath.Join(base, "aaa111")
	newer := filepath.Join(base, "bbb222")
	require.NoError(t, os.MkdirAll(older, 0o755))
	require.NoError(t, os.MkdirAll(newer, 0o755))

	now := time.Now()
	require.NoError(t, os.Chtimes(older, now.Add(-time.Hour), now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(newer, now, now))

	c := New(modelsDir, embedding.Config{Provider: "ollama", OllamaModel: "paraphrase-MiniLM-L6-v2"})
	assert.Equal(t, newer, c.probeSnapshot())
}

func TestProbeSnapshot_NoneFound(t *testing.T) {
	c := New(t.TempDir(), embedding.Config{Provider: "ollama", OllamaModel: "paraphrase-MiniLM-L6-v2"})
	assert.Equal(t, "", c.probeSnapshot())
}

func TestCache_EngineIsSingleton(t *testing.T) {
	c := New(t.TempDir(), embedding.DefaultConfig())

	e1, err := c.Engine()
	require.NoError(t, err)
	e2, err := c.Engine()
	require.NoError(t, err)

	assert.Same(t, e1, e2)
}
