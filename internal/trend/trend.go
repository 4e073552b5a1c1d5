// Package trend groups issue-tracker records by calendar date and renders
// the result as a chart, mirroring the original time-trend analyzer's
// daily-statistics-then-plot pipeline.
package trend

import (
	"sort"
	"strings"
	"time"

	"tapdlens/internal/issuedata"
)

// Kind selects which record collection to aggregate.
type Kind = issuedata.Kind

// ChartKind selects which dimension the chart renders.
type ChartKind string

const (
	ChartCount    ChartKind = "count"
	ChartPriority ChartKind = "priority"
	ChartStatus   ChartKind = "status"
)

// TimeField selects which record timestamp drives the grouping.
type TimeField string

const (
	FieldCreated  TimeField = "created"
	FieldModified TimeField = "modified"
	FieldBegin    TimeField = "begin"
	FieldDue      TimeField = "due"
)

// doneTokens marks a status as "completed", carried verbatim from the
// original analyzer's lexicon.
var doneTokens = []string{"closed", "resolved", "done", "完成", "已解决", "已关闭"}

// newTokens marks a status as "new".
var newTokens = []string{"new", "open", "创建", "新建"}

// priority lexicons, substring-matched case-insensitively against the
// record's priority string.
var (
	highPriorityTokens   = []string{"high", "紧急", "1"}
	mediumPriorityTokens = []string{"medium", "中", "2"}
	lowPriorityTokens    = []string{"low", "低", "3"}
)

// DayStats is one calendar date's aggregate.
type DayStats struct {
	Date                string         `json:"date"`
	TotalCount          int            `json:"total_count"`
	CompletedCount      int            `json:"completed_count"`
	NewCount            int            `json:"new_count"`
	HighPriorityCount   int            `json:"high_priority_count"`
	MediumPriorityCount int            `json:"medium_priority_count"`
	LowPriorityCount    int            `json:"low_priority_count"`
	StatusCounts        map[string]int `json:"status_counts"`
}

// Aggregate is C9's grouped-by-date output.
type Aggregate struct {
	Kind      Kind                 `json:"kind"`
	TimeField TimeField            `json:"time_field"`
	Days      map[string]*DayStats `json:"daily_stats"`
	Dropped   int                  `json:"dropped_count"`
}

// SortedDates returns the aggregate's date keys in ascending order.
func (a *Aggregate) SortedDates() []string {
	dates := make([]string, 0, len(a.Days))
	for d := range a.Days {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// AggregateDataset groups records of the given kind by calendar date, per §4.9.
// Records whose time field is empty or unparseable are dropped and counted
// in Aggregate.Dropped but do not affect per-day totals (V5).
func AggregateDataset(ds *issuedata.Dataset, kind Kind, field TimeField, since, until *time.Time) *Aggregate {
	agg := &Aggregate{Kind: kind, TimeField: field, Days: map[string]*DayStats{}}

	for _, rec := range ds.Records(kind) {
		raw := timeFieldValue(rec, field)
		date, ok := parseTapdTime(raw)
		if !ok {
			agg.Dropped++
			continue
		}
		if since != nil && date.Before(*since) {
			agg.Dropped++
			continue
		}
		if until != nil && date.After(*until) {
			agg.Dropped++
			continue
		}

		key := date.Format("2006-01-02")
		day, exists := agg.Days[key]
		if !exists {
			day = &DayStats{Date: key, StatusCounts: map[string]int{}}
			agg.Days[key] = day
		}

		day.TotalCount++

		switch priorityBucket(rec.Priority) {
		case "high":
			day.HighPriorityCount++
		case "medium":
			day.MediumPriorityCount++
		case "low":
			day.LowPriorityCount++
		}

		if rec.Status != "" {
			day.StatusCounts[rec.Status]++
			lower := strings.ToLower(rec.Status)
			if containsAny(lower, doneTokens) {
				day.CompletedCount++
			}
			if containsAny(lower, newTokens) {
				day.NewCount++
			}
		}
	}

	return agg
}

// timeFieldValue picks the record's raw time string for the requested
// field. Stories additionally honor "begin"/"due" as the original did;
// bugs only have created/modified. An empty value is returned as "", so the
// record is dropped rather than grouped under another field's date.
func timeFieldValue(rec issuedata.Record, field TimeField) string {
	switch field {
	case FieldBegin:
		return rec.Begin
	case FieldDue:
		return rec.Due
	case FieldModified:
		return rec.ModifiedAt
	}
	return rec.CreatedAt
}

// parseTapdTime parses "YYYY-MM-DD[ HH:MM:SS]", dropping the time-of-day
// component for grouping purposes.
func parseTapdTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	datePart := strings.SplitN(s, " ", 2)[0]
	t, err := time.Parse("2006-01-02", datePart)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func priorityBucket(priority string) string {
	lower := strings.ToLower(priority)
	switch {
	case containsAny(lower, highPriorityTokens):
		return "high"
	case containsAny(lower, mediumPriorityTokens):
		return "medium"
	case containsAny(lower, lowPriorityTokens):
		return "low"
	default:
		return ""
	}
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
