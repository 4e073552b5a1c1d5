package main

import (
	"context"

	"github.com/spf13/cobra"

	"tapdlens/internal/filestore"
	"tapdlens/internal/llmclient"
	"tapdlens/internal/overview"
	"tapdlens/internal/tokencount"
)

var (
	overviewDataset   string
	overviewSince     string
	overviewUntil     string
	overviewMaxTokens int
	overviewCachedOnly bool
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "summarize a project's issues into an LLM-written digest",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := filestore.New(paths)
		ds, err := store.LoadDataset(overviewDataset)
		if err != nil {
			return err
		}

		since, err := parseOptionalDate(overviewSince)
		if err != nil {
			return err
		}
		until, err := parseOptionalDate(overviewUntil)
		if err != nil {
			return err
		}

		counter := tokencount.New("")
		client := llmclient.New(cfg.LLM.RequestTimeout)

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := overview.Build(ctx, client, credentialsFromConfig(), counter, overview.Request{
			Dataset:        ds,
			Since:          since,
			Until:          until,
			MaxTotalTokens: overviewMaxTokens,
			UseCachedOnly:  overviewCachedOnly,
		})
		if err != nil {
			return err
		}

		return printJSON(result)
	},
}

func init() {
	overviewCmd.Flags().StringVar(&overviewDataset, "dataset", "msg_from_fetcher.json", "dataset file under local_data/")
	overviewCmd.Flags().StringVar(&overviewSince, "since", "", "only include records on or after this date (YYYY-MM-DD)")
	overviewCmd.Flags().StringVar(&overviewUntil, "until", "", "only include records on or before this date (YYYY-MM-DD)")
	overviewCmd.Flags().IntVar(&overviewMaxTokens, "max-tokens", overview.DefaultBudget, "total token budget W for the single-shot fit check")
	overviewCmd.Flags().BoolVar(&overviewCachedOnly, "cached-only", false, "skip the LLM call and return a statistics-only digest")
}
