package trend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tapdlens/internal/issuedata"
)

func TestAggregateDataset_GroupsByCalendarDate(t *testing.T) {
	ds := &issuedata.Dataset{
		Stories: []issuedata.Record{
			{ID: "S1", CreatedAt: "2025-01-01 10:00:00", Priority: "high", Status: "open"},
			{ID: "S2", CreatedAt: "2025-01-01", Priority: "low", Status: "已关闭"},
			{ID: "S3", CreatedAt: "2025-01-02", Priority: "medium", Status: "进行中"},
		},
	}

	agg := AggregateDataset(ds, issuedata.KindStory, FieldCreated, nil, nil)

	require.Len(t, agg.Days, 2)
	assert.Equal(t, 2, agg.Days["2025-01-01"].TotalCount)
	assert.Equal(t, 1, agg.Days["2025-01-01"].HighPriorityCount)
	assert.Equal(t, 1, agg.Days["2025-01-01"].LowPriorityCount)
	assert.Equal(t, 1, agg.Days["2025-01-01"].CompletedCount)
	assert.Equal(t, 1, agg.Days["2025-01-01"].NewCount)
	assert.Equal(t, 1, agg.Days["2025-01-02"].TotalCount)
	assert.Equal(t, 0, agg.Dropped)
}

func TestAggregateDataset_DropsEmptyOrUnparseableTimeField(t *testing.T) {
	ds := &issuedata.Dataset{
		Bugs: []issuedata.Record{
			{ID: "B1", CreatedAt: ""},
			{ID: "B2", CreatedAt: "not-a-date"},
			{ID: "B3", CreatedAt: "2025-03-01"},
		},
	}

	agg := AggregateDataset(ds, issuedata.KindBug, FieldCreated, nil, nil)

	assert.Equal(t, 2, agg.Dropped)
	require.Len(t, agg.Days, 1)
	assert.Equal(t, 1, agg.Days["2025-03-01"].TotalCount)
}

func TestAggregateDataset_SumOfDailyTotalsEqualsKeptRecords(t *testing.T) {
	ds := &issuedata.Dataset{
		Stories: []issuedata.Record{
			{ID: "S1", CreatedAt: "2025-01-01"},
			{ID: "S2", CreatedAt: "2025-01-01"},
			{ID: "S3", CreatedAt: "2025-01-02"},
			{ID: "S4", CreatedAt: ""},
		},
	}

	agg := AggregateDataset(ds, issuedata.KindStory, FieldCreated, nil, nil)

	sum := 0
	for _, d := range agg.Days {
		sum += d.TotalCount
	}
	assert.Equal(t, 3, sum)
	assert.Equal(t, 1, agg.Dropped)
}

func TestAggregateDataset_StoryHonorsBeginAndDueFields(t *testing.T) {
	ds := &issuedata.Dataset{
		Stories: []issuedata.Record{
			{ID: "S1", CreatedAt: "2025-01-01", Begin: "2025-02-01", Due: "2025-03-01"},
		},
	}

	agg := AggregateDataset(ds, issuedata.KindStory, FieldBegin, nil, nil)
	require.Len(t, agg.Days, 1)
	assert.Contains(t, agg.Days, "2025-02-01")
}

func TestSortedDates(t *testing.T) {
	ds := &issuedata.Dataset{
		Bugs: []issuedata.Record{
			{ID: "B1", CreatedAt: "2025-03-01"},
			{ID: "B2", CreatedAt: "2025-01-01"},
			{ID: "B3", CreatedAt: "2025-02-01"},
		},
	}
	agg := AggregateDataset(ds, issuedata.KindBug, FieldCreated, nil, nil)
	assert.Equal(t, []string{"2025-01-01", "2025-02-01", "2025-03-01"}, agg.SortedDates())
}
