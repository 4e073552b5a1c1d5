package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the app-wide settings that are not path-derived.
type Config struct {
	LLM LLMConfig `yaml:"llm"`
}

// LLMConfig configures the two supported chat-completion providers. The
// provider actually used for a given call is selected by endpoint substring
// (see internal/llmclient), not by this struct — these are just the
// defaults and credentials each provider falls back to.
type LLMConfig struct {
	SiliconFlowKey      string `yaml:"siliconflow_key"`
	SiliconFlowEndpoint string `yaml:"siliconflow_endpoint"`
	SiliconFlowModel    string `yaml:"siliconflow_model"`

	DeepSeekKey      string `yaml:"deepseek_key"`
	DeepSeekEndpoint string `yaml:"deepseek_endpoint"`
	DeepSeekModel    string `yaml:"deepseek_model"`

	// RequestTimeout bounds one chat-completion call's wall clock.
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// DefaultConfig returns the defaults named in the external-interfaces
// contract for environment variables and provider defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			SiliconFlowEndpoint: "https://api.siliconflow.cn/v1",
			SiliconFlowModel:    "moonshotai/Kimi-K2-Instruct",
			DeepSeekEndpoint:    "https://api.deepseek.com/v1",
			DeepSeekModel:       "deepseek-chat",
			RequestTimeout:      300 * time.Second,
		},
	}
}

// Load reads a YAML config file, falling back to defaults if the file does
// not exist, then applies environment-variable overrides (env wins over
// file, matching the teacher's own AutoDetectContext7APIKey convention).
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the config back out as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SF_KEY"); v != "" {
		c.LLM.SiliconFlowKey = v
	}
	if v := os.Getenv("DS_KEY"); v != "" {
		c.LLM.DeepSeekKey = v
	}
	if v := os.Getenv("DS_EP"); v != "" {
		c.LLM.DeepSeekEndpoint = v
	}
	if v := os.Getenv("DS_MODEL"); v != "" {
		c.LLM.DeepSeekModel = v
	}
}
