package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "deepseek-chat", cfg.LLM.DeepSeekModel)
	assert.Equal(t, "moonshotai/Kimi-K2-Instruct", cfg.LLM.SiliconFlowModel)
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("SF_KEY", "")
	t.Setenv("DS_KEY", "")
	t.Setenv("DS_EP", "")
	t.Setenv("DS_MODEL", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "tapdlens.yaml")

	cfg := DefaultConfig()
	cfg.LLM.DeepSeekModel = "custom-model"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom-model", loaded.LLM.DeepSeekModel)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("SF_KEY", "")
	t.Setenv("DS_KEY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "deepseek-chat", cfg.LLM.DeepSeekModel)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SF_KEY", "sf-secret")
	t.Setenv("DS_KEY", "ds-secret")
	t.Setenv("DS_EP", "https://example.test/v1")
	t.Setenv("DS_MODEL", "override-model")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	assert.Equal(t, "sf-secret", cfg.LLM.SiliconFlowKey)
	assert.Equal(t, "ds-secret", cfg.LLM.DeepSeekKey)
	assert.Equal(t, "https://example.test/v1", cfg.LLM.DeepSeekEndpoint)
	assert.Equal(t, "override-model", cfg.LLM.DeepSeekModel)
}
