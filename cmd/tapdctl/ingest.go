package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tapdlens/internal/filestore"
	"tapdlens/internal/issuedata"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "load issue data or a test-case spreadsheet into local_data/",
}

var ingestDatasetOutput string

var ingestDatasetCmd = &cobra.Command{
	Use:   "dataset [path]",
	Short: "load a stories/bugs JSON dataset and save it as the canonical dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var ds issuedata.Dataset
		if err := filestore.LoadJSON(args[0], &ds); err != nil {
			return err
		}
		store := filestore.New(paths)
		if err := store.SaveDataset(ingestDatasetOutput, &ds); err != nil {
			return err
		}
		fmt.Printf(`{"status":"success","stories":%d,"bugs":%d}`+"\n", len(ds.Stories), len(ds.Bugs))
		return nil
	},
}

var ingestTestCasesOutput string

var ingestTestCasesCmd = &cobra.Command{
	Use:   "testcases [xlsx-path]",
	Short: "read a test-case spreadsheet, remap columns, and save it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := filestore.ReadSpreadsheet(args[0], filestore.TestCaseColumnMap())
		if err != nil {
			return err
		}
		out := paths.DataFile(ingestTestCasesOutput)
		if err := filestore.SaveJSON(out, records); err != nil {
			return err
		}
		fmt.Printf(`{"status":"success","rows":%d,"output":%q}`+"\n", len(records), out)
		return nil
	},
}

func init() {
	ingestDatasetCmd.Flags().StringVar(&ingestDatasetOutput, "out", "msg_from_fetcher.json", "destination file under local_data/")
	ingestTestCasesCmd.Flags().StringVar(&ingestTestCasesOutput, "out", "test_cases.json", "destination file under local_data/")
	ingestCmd.AddCommand(ingestDatasetCmd)
	ingestCmd.AddCommand(ingestTestCasesCmd)
}
