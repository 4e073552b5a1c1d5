package trend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tapdlens/internal/issuedata"
)

func TestChart_WritesPNGAndReturnsFileURL(t *testing.T) {
	dir := t.TempDir()
	ds := &issuedata.Dataset{
		Stories: []issuedata.Record{
			{ID: "S1", CreatedAt: "2025-01-01", Priority: "high", Status: "open"},
			{ID: "S2", CreatedAt: "2025-01-02", Priority: "low", Status: "closed"},
		},
	}
	agg := AggregateDataset(ds, issuedata.KindStory, FieldCreated, nil, nil)

	path, url, err := Chart(agg, ChartCount, dir, "20250101_000000", "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "story_count_20250101_000000.png"), path)
	assert.Equal(t, "file://"+path, url)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestChart_PriorityAndStatusKinds(t *testing.T) {
	dir := t.TempDir()
	ds := &issuedata.Dataset{
		Bugs: []issuedata.Record{
			{ID: "B1", CreatedAt: "2025-01-01", Priority: "high", Status: "open"},
			{ID: "B2", CreatedAt: "2025-01-02", Priority: "medium", Status: "resolved"},
		},
	}
	agg := AggregateDataset(ds, issuedata.KindBug, FieldCreated, nil, nil)

	for _, k := range []ChartKind{ChartPriority, ChartStatus} {
		_, _, err := Chart(agg, k, dir, "ts", "")
		assert.NoError(t, err)
	}
}

func TestChart_EmptyAggregateErrors(t *testing.T) {
	agg := &Aggregate{Days: map[string]*DayStats{}}
	_, _, err := Chart(agg, ChartCount, t.TempDir(), "ts", "")
	assert.Error(t, err)
}

func TestThinnedLabels_LeavesSparseDatesUntouched(t *testing.T) {
	dates := []string{"2025-01-01", "2025-01-02", "2025-01-03"}
	assert.Equal(t, dates, thinnedLabels(dates))
}

func TestThinnedLabels_ThinsDenseRanges(t *testing.T) {
	dates := make([]string, 60)
	for i := range dates {
		dates[i] = "d" + string(rune('a'+i%26))
	}
	thinned := thinnedLabels(dates)
	blanks := 0
	for _, l := range thinned {
		if l == "" {
			blanks++
		}
	}
	assert.Greater(t, blanks, 0)
}
