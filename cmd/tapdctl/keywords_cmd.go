package main

import (
	"github.com/spf13/cobra"

	"tapdlens/internal/filestore"
	"tapdlens/internal/keywords"
)

var (
	keywordsDataset      string
	keywordsExtended     bool
	keywordsMinFrequency int
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "tokenize issue text and rank keyword frequencies by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := filestore.New(paths)
		ds, err := store.LoadDataset(keywordsDataset)
		if err != nil {
			return err
		}

		fields := keywords.CoreFields
		if keywordsExtended {
			fields = keywords.ExtendedFields
		}

		result := keywords.Analyze(ds, fields, keywordsMinFrequency)
		return printJSON(result)
	},
}

func init() {
	keywordsCmd.Flags().StringVar(&keywordsDataset, "dataset", "msg_from_fetcher.json", "dataset file under local_data/")
	keywordsCmd.Flags().BoolVar(&keywordsExtended, "extended", false, "tokenize status/priority/creator/reporter/iteration in addition to title/description")
	keywordsCmd.Flags().IntVar(&keywordsMinFrequency, "min-frequency", 1, "minimum count for a token to be reported as high-frequency and categorized")
}
