// Package vectorindex implements the flat inner-product vector index: chunk
// + embed + persist, and brute-force cosine top-k search over the
// persisted sidecars.
package vectorindex

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"tapdlens/internal/issuedata"
	"tapdlens/internal/logging"
)

// Embedder is the subset of modelcache.Cache / embedding.EmbeddingEngine
// the index needs, kept narrow to avoid an import cycle.
type Embedder interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
}

// Descriptor is the small JSON sidecar recording how to interpret the other
// two sidecars.
type Descriptor struct {
	ModelName        string `json:"model_name"`
	ChunkCount       int    `json:"chunk_count"`
	VectorDimension  int    `json:"vector_dimension"`
	CreatedAt        string `json:"created_at"`
	MetadataEncoding string `json:"metadata_encoding"`
}

// Index is an immutable, in-memory snapshot of one built vector index.
// Vectors and Metadata share the same length and index row i corresponds to
// Metadata[i] (the invariant enforced at Load and preserved by Build).
type Index struct {
	Descriptor Descriptor
	Vectors    [][]float32
	Metadata   []issuedata.ChunkMeta
}

func sidecarPaths(base string) (vecPath, metaPath, cfgPath string) {
	return base + ".index", base + ".metadata.jsonl", base + ".config.json"
}

// Build chunks the dataset (K records per chunk, per kind), embeds every
// chunk's canonical text in one batch, L2-normalizes the vectors, and
// writes the three sidecars via temp files renamed into place (see
// writeSidecars). A failure while staging leaves the prior index intact; the
// three renames are not one atomic step.
func Build(ctx context.Context, base string, ds *issuedata.Dataset, k int, embedder Embedder, modelName string) (*Index, error) {
	log := logging.L()

	var metadata []issuedata.ChunkMeta
	metadata = append(metadata, chunkKind(issuedata.KindStory, ds.Stories, k)...)
	metadata = append(metadata, chunkKind(issuedata.KindBug, ds.Bugs, k)...)

	if len(metadata) == 0 {
		log.Info("building empty vector index", zap.String("base", base))
		idx := &Index{
			Descriptor: Descriptor{ModelName: modelName, ChunkCount: 0, VectorDimension: 0, MetadataEncoding: "jsonl"},
		}
		if err := writeSidecars(base, idx); err != nil {
			return nil, err
		}
		return idx, nil
	}

	texts := make([]string, len(metadata))
	for i, m := range metadata {
		texts[i] = m.Text
	}

	vectors, err := embedder.Encode(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(metadata) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(metadata))
	}

	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}
	for i := range vectors {
		vectors[i] = l2Normalize(vectors[i])
	}

	idx := &Index{
		Descriptor: Descriptor{
			ModelName:        modelName,
			ChunkCount:       len(metadata),
			VectorDimension:  dim,
			CreatedAt:        time.Now().UTC().Format(time.RFC3339),
			MetadataEncoding: "jsonl",
		},
		Vectors:  vectors,
		Metadata: metadata,
	}

	if err := writeSidecars(base, idx); err != nil {
		return nil, err
	}

	log.Info("built vector index", zap.String("base", base), zap.Int("chunks", len(metadata)), zap.Int("dim", dim))
	return idx, nil
}

func l2Normalize(v []float32) []float32 {
	var sumSq float64
	for _, x := range v {
		sumSq += float64(x) * float64(x)
	}
	norm := math.Sqrt(sumSq)
	if norm == 0 {
		return v
	}
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

// writeSidecars stages the three sidecar files under temp names in the same
// directory, then renames each into place. The old sidecars stay fully
// intact until every new one is staged. Each rename is atomic on the same
// filesystem, but the three renames run one after another, so a failure
// between them leaves a mix of new and old sidecars.
func writeSidecars(base string, idx *Index) error {
	vecPath, metaPath, cfgPath := sidecarPaths(base)
	if err := os.MkdirAll(filepath.Dir(base), 0o755); err != nil {
		return fmt.Errorf("create index directory: %w", err)
	}

	tmpVec := vecPath + ".tmp"
	tmpMeta := metaPath + ".tmp"
	tmpCfg := cfgPath + ".tmp"

	if err := writeVectors(tmpVec, idx.Vectors); err != nil {
		return err
	}
	if err := writeMetadata(tmpMeta, idx.Metadata); err != nil {
		return err
	}
	if err := writeDescriptor(tmpCfg, idx.Descriptor); err != nil {
		return err
	}

	for tmp, final := range map[string]string{tmpVec: vecPath, tmpMeta: metaPath, tmpCfg: cfgPath} {
		if err := os.Rename(tmp, final); err != nil {
			return fmt.Errorf("finalize sidecar %s: %w", final, err)
		}
	}
	return nil
}

func writeVectors(path string, vectors [][]float32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(len(vectors))); err != nil {
		return err
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(dim)); err != nil {
		return err
	}
	for _, v := range vectors {
		if err := binary.Write(f, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}

func writeMetadata(path string, metadata []issuedata.ChunkMeta) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	for _, m := range metadata {
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encode metadata row: %w", err)
		}
	}
	return nil
}

func writeDescriptor(path string, d Descriptor) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
