package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tapdlens/internal/evaluator"
	"tapdlens/internal/filestore"
	"tapdlens/internal/llmclient"
	"tapdlens/internal/tokencount"
)

var (
	evaluateCases       string
	evaluateContextWindow int
	evaluateConcurrency  int
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "score a test-case spreadsheet against the rubric and requirement knowledge base using an LLM",
	RunE: func(cmd *cobra.Command, args []string) error {
		var cases []evaluator.TestCase
		if err := filestore.LoadJSON(paths.DataFile(evaluateCases), &cases); err != nil {
			return err
		}

		var rubric evaluator.Rubric
		if err := filestore.LoadJSON(paths.RubricFile(), &rubric); err != nil {
			return err
		}

		var kb evaluator.RequirementKB
		if err := filestore.LoadJSON(paths.RequirementKBFile(), &kb); err != nil {
			return err
		}

		counter := tokencount.New("")
		client := llmclient.New(cfg.LLM.RequestTimeout)

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := evaluator.Evaluate(ctx, client, credentialsFromConfig(), counter, evaluator.Request{
			Cases:         cases,
			Rubric:        rubric,
			RequirementKB: kb,
			ContextWindow: evaluateContextWindow,
			Concurrency:   evaluateConcurrency,
		})
		if err != nil {
			return err
		}

		out := paths.DataFile(fmt.Sprintf("Proceed_TestCase_%s.json", time.Now().UTC().Format("20060102T150405Z")))
		if err := filestore.SaveJSON(out, result); err != nil {
			return err
		}

		return printJSON(result)
	},
}

func init() {
	evaluateCmd.Flags().StringVar(&evaluateCases, "cases", "test_cases.json", "test-case JSON file under local_data/")
	evaluateCmd.Flags().IntVar(&evaluateContextWindow, "context-window", evaluator.DefaultContextWindow, "W, the LLM context-window size used for batch sizing")
	evaluateCmd.Flags().IntVar(&evaluateConcurrency, "concurrency", 1, "max concurrent in-flight batches; 1 means sequential with inter-batch pacing")
}
