package filestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tapdlens/internal/config"
	"tapdlens/internal/issuedata"
)

func TestLoadJSON_MissingFileIsEmptyNotError(t *testing.T) {
	var v map[string]int
	err := LoadJSON(filepath.Join(t.TempDir(), "missing.json"), &v)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestLoadJSON_MalformedFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	var v map[string]int
	err := LoadJSON(path, &v)
	assert.Error(t, err)
}

func TestSaveJSON_RoundTripPreservesNonASCII(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	in := map[string]string{"title": "订单列表分页"}

	require.NoError(t, SaveJSON(path, in))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "订单列表分页")

	var out map[string]string
	require.NoError(t, LoadJSON(path, &out))
	assert.True(t, cmp.Equal(in, out))
}

func TestStore_DatasetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	paths, err := config.DiscoverPaths(dir)
	require.NoError(t, err)
	s := New(paths)

	ds := &issuedata.Dataset{
		Stories: []issuedata.Record{{Kind: issuedata.KindStory, ID: "S1", Title: "订单列表分页"}},
		Bugs:    []issuedata.Record{{Kind: issuedata.KindBug, ID: "B1", Title: "支付回调超时"}},
	}
	require.NoError(t, s.SaveDataset("issues.json", ds))

	loaded, err := s.LoadDataset("issues.json")
	require.NoError(t, err)
	assert.True(t, cmp.Equal(ds, loaded))
}
