package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tapdlens/internal/filestore"
	"tapdlens/internal/issuedata"
	"tapdlens/internal/trend"
)

var (
	trendDataset string
	trendKind    string
	trendField   string
	trendChart   string
	trendSince   string
	trendUntil   string
	trendTitle   string
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "group issues by calendar date and render a trend chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := filestore.New(paths)
		ds, err := store.LoadDataset(trendDataset)
		if err != nil {
			return err
		}

		kind := issuedata.Kind(trendKind)
		since, err := parseOptionalDate(trendSince)
		if err != nil {
			return fmt.Errorf("--since: %w", err)
		}
		until, err := parseOptionalDate(trendUntil)
		if err != nil {
			return fmt.Errorf("--until: %w", err)
		}

		agg := trend.AggregateDataset(ds, kind, trend.TimeField(trendField), since, until)

		timestamp := time.Now().UTC().Format("20060102T150405Z")
		path, url, err := trend.Chart(agg, trend.ChartKind(trendChart), paths.TimeTrendDir(), timestamp, trendTitle)
		if err != nil {
			return err
		}

		return printJSON(struct {
			ChartPath string            `json:"chart_path"`
			ChartURL  string            `json:"chart_url"`
			Days      []string          `json:"days"`
			Dropped   int               `json:"dropped"`
		}{ChartPath: path, ChartURL: url, Days: agg.SortedDates(), Dropped: agg.Dropped})
	},
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func init() {
	trendCmd.Flags().StringVar(&trendDataset, "dataset", "msg_from_fetcher.json", "dataset file under local_data/")
	trendCmd.Flags().StringVar(&trendKind, "kind", string(issuedata.KindBug), "record kind: story or bug")
	trendCmd.Flags().StringVar(&trendField, "field", string(trend.FieldCreated), "time field: created, modified, begin, due")
	trendCmd.Flags().StringVar(&trendChart, "chart", string(trend.ChartCount), "chart dimension: count, priority, status")
	trendCmd.Flags().StringVar(&trendSince, "since", "", "only include records on or after this date (YYYY-MM-DD)")
	trendCmd.Flags().StringVar(&trendUntil, "until", "", "only include records on or before this date (YYYY-MM-DD)")
	trendCmd.Flags().StringVar(&trendTitle, "title", "", "chart title override")
}
