// Package modelcache manages the process-wide embedding-model handle: a
// lazily-initialized singleton built from the configured embedding
// provider. It probes a local Hugging-Hub-style snapshot directory and logs
// the result; the snapshot is not loaded, and nothing is downloaded.
package modelcache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"tapdlens/internal/embedding"
	"tapdlens/internal/logging"
)

const defaultModelName = "paraphrase-MiniLM-L6-v2"

// Cache owns one lazily-initialized EmbeddingEngine handle, read-only after
// first construction. Safe for concurrent use; concurrent first-touches do
// not race thanks to sync.Once.
type Cache struct {
	modelsDir string
	modelName string
	cfg       embedding.Config

	once   sync.Once
	engine embedding.EmbeddingEngine
	err    error
}

// New returns a Cache rooted at modelsDir (typically Paths.ModelsDir()).
// cfg supplies the engine provider/credentials; the engine is built from
// cfg whether or not a local snapshot is found.
func New(modelsDir string, cfg embedding.Config) *Cache {
	name := cfg.OllamaModel
	if name == "" {
		name = defaultModelName
	}
	return &Cache{modelsDir: modelsDir, modelName: name, cfg: cfg}
}

// Engine returns the cached embedding engine, initializing it on first
// call. Subsequent calls return the same handle without reprobing.
func (c *Cache) Engine() (embedding.EmbeddingEngine, error) {
	c.once.Do(func() {
		c.engine, c.err = c.init()
	})
	return c.engine, c.err
}

func (c *Cache) init() (embedding.EmbeddingEngine, error) {
	log := logging.L()

	if snapshot := c.probeSnapshot(); snapshot != "" {
		log.Info("found local model snapshot", zap.String("path", snapshot))
	} else {
		log.Info("no local model snapshot found, using the configured embedding engine",
			zap.String("models_dir", c.modelsDir), zap.String("model", c.modelName))
	}

	engine, err := embedding.NewEngine(c.cfg)
	if err != nil {
		return nil, fmt.Errorf("initialize embedding engine: %w", err)
	}
	return engine, nil
}

// probeSnapshot looks for models/models--<org>--<name>/snapshots/<sha>/ and
// returns the most-recently-modified snapshot directory, or "" if none is
// present. The convention and its opacity are inherited from the upstream
// model hub; this code does not interpret the snapshot's contents.
func (c *Cache) probeSnapshot() string {
	pattern := filepath.Join(c.modelsDir, fmt.Sprintf("models--*--%s", c.modelName), "snapshots", "*")
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return ""
	}

	sort.Slice(matches, func(i, j int) bool {
		return modTime(matches[i]).After(modTime(matches[j]))
	})
	return matches[0]
}

func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// Encode is a thin convenience wrapper that initializes the engine on first
// use and embeds a batch of strings, matching C4's encode(list) -> matrix
// contract. Callers are responsible for L2-normalizing rows before indexing.
func (c *Cache) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	engine, err := c.Engine()
	if err != nil {
		return nil, err
	}
	return engine.EmbedBatch(ctx, texts)
}

// Dimensions reports the active engine's embedding dimensionality.
func (c *Cache) Dimensions() (int, error) {
	engine, err := c.Engine()
	if err != nil {
		return 0, err
	}
	return engine.Dimensions(), nil
}
