package vectorindex

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tapdlens/internal/issuedata"
)

// fakeEmbedder returns a deterministic bag-of-characters embedding so tests
// can reason about similarity without a real model.
type fakeEmbedder struct{ dim int }

func (f *fakeEmbedder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = bagOfRunes(t, f.dim)
	}
	return out, nil
}

func bagOfRunes(text string, dim int) []float32 {
	v := make([]float32, dim)
	for _, r := range text {
		v[int(r)%dim]++
	}
	return v
}

func sampleDataset() *issuedata.Dataset {
	return &issuedata.Dataset{
		Stories: []issuedata.Record{
			{Kind: issuedata.KindStory, ID: "S1", Title: "订单列表分页"},
			{Kind: issuedata.KindStory, ID: "S2", Title: "订单详情页加载慢"},
		},
		Bugs: []issuedata.Record{
			{Kind: issuedata.KindBug, ID: "B1", Title: "支付回调超时"},
		},
	}
}

func TestBuild_ChunksAndPersists(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "issues")
	embedder := &fakeEmbedder{dim: 32}

	idx, err := Build(context.Background(), base, sampleDataset(), 2, embedder, "fake-model")
	require.NoError(t, err)

	require.Len(t, idx.Metadata, 2) // 1 story chunk, 1 bug chunk
	assert.Equal(t, issuedata.KindStory, idx.Metadata[0].Kind)
	assert.Equal(t, []string{"S1", "S2"}, idx.Metadata[0].ItemIDs)
	assert.Equal(t, issuedata.KindBug, idx.Metadata[1].Kind)
	assert.Equal(t, []string{"B1"}, idx.Metadata[1].ItemIDs)

	loaded, err := Load(base, 32)
	require.NoError(t, err)
	require.Len(t, loaded.Vectors, 2)
	require.Len(t, loaded.Metadata, 2)
	assert.Equal(t, idx.Metadata[0].ChunkID, loaded.Metadata[0].ChunkID)
}

func TestBuild_VectorsAreUnitLength(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "issues")
	embedder := &fakeEmbedder{dim: 16}

	idx, err := Build(context.Background(), base, sampleDataset(), 10, embedder, "fake-model")
	require.NoError(t, err)

	for _, v := range idx.Vectors {
		var sumSq float64
		for _, x := range v {
			sumSq += float64(x) * float64(x)
		}
		assert.InDelta(t, 1.0, sumSq, 1e-5)
	}
}

func TestBuild_EmptyDatasetSucceedsWithZeroChunks(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "issues")
	embedder := &fakeEmbedder{dim: 8}

	idx, err := Build(context.Background(), base, &issuedata.Dataset{}, 10, embedder, "fake-model")
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Descriptor.ChunkCount)

	loaded, err := Load(base, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, len(loaded.Metadata))
}

func TestLoad_MissingIndexIsNotBuilt(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing"), 16)
	var ve *Error
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, KindNotBuilt, ve.Kind)
}

func TestLoad_DimensionMismatchIsIncompatible(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "issues")
	embedder := &fakeEmbedder{dim: 16}

	_, err := Build(context.Background(), base, sampleDataset(), 10, embedder, "fake-model")
	require.NoError(t, err)

	_, err = Load(base, 999)
	var ve *Error
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, KindIncompatibleIndex, ve.Kind)
}

func TestSearch_ReturnsScoresInDescendingOrderAndMatchesMetadata(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "issues")
	embedder := &fakeEmbedder{dim: 64}

	idx, err := Build(context.Background(), base, sampleDataset(), 2, embedder, "fake-model")
	require.NoError(t, err)

	results, err := idx.Search(context.Background(), embedder, "订单", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, issuedata.KindStory, results[0].ChunkMetadata.Kind)
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Score, -1.0)
		assert.LessOrEqual(t, r.Score, 1.0)
	}
}

func TestStats(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "issues")
	embedder := &fakeEmbedder{dim: 16}

	idx, err := Build(context.Background(), base, sampleDataset(), 2, embedder, "fake-model")
	require.NoError(t, err)

	s := idx.Stats()
	assert.Equal(t, 2, s.ChunkCount)
	assert.Equal(t, 3, s.TotalRecords)
	assert.Equal(t, 1, s.PerKindChunks["story"])
	assert.Equal(t, 1, s.PerKindChunks["bug"])
}
