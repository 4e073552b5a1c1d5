package vectorindex

import (
	"context"

	"tapdlens/internal/embedding"
	"tapdlens/internal/issuedata"
)

// SearchResult is one ranked hit: cosine score plus the chunk it came from.
type SearchResult struct {
	Score         float64
	ChunkMetadata issuedata.ChunkMeta
}

// Search encodes query, L2-normalizes it, and returns the topK highest
// cosine-similarity chunks in descending score order, via embedding.FindTopK
// — the same brute-force scan the flat index's vectors are a persisted copy
// of. FindTopK only returns real row indices, never the negative "fewer
// than k hits" sentinel some ANN backends pad with, so no rows need to be
// dropped: a scan over fewer than topK rows simply returns fewer rows.
func (idx *Index) Search(ctx context.Context, embedder Embedder, query string, topK int) ([]SearchResult, error) {
	vecs, err := embedder.Encode(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, nil
	}
	qv := l2Normalize(vecs[0])

	// embedding.FindTopK defaults k<=0 to 10; a brute-force scan over a flat
	// index has historically treated topK<=0 as "return everything", so pin
	// that count explicitly rather than silently adopting FindTopK's default.
	k := topK
	if k <= 0 {
		k = len(idx.Vectors)
	}
	ranked, err := embedding.FindTopK(qv, idx.Vectors, k)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, len(ranked))
	for i, r := range ranked {
		results[i] = SearchResult{
			Score:         r.Similarity,
			ChunkMetadata: idx.Metadata[r.Index],
		}
	}
	return results, nil
}

// Stats summarizes the built index per §4.7.
type Stats struct {
	ChunkCount    int            `json:"chunk_count"`
	VectorDim     int            `json:"vector_dim"`
	TotalRecords  int            `json:"total_records"`
	PerKindChunks map[string]int `json:"per_kind_chunks"`
}

func (idx *Index) Stats() Stats {
	s := Stats{
		ChunkCount:    len(idx.Metadata),
		VectorDim:     idx.Descriptor.VectorDimension,
		PerKindChunks: map[string]int{},
	}
	for _, m := range idx.Metadata {
		s.TotalRecords += m.ItemCount
		s.PerKindChunks[string(m.Kind)]++
	}
	return s
}
