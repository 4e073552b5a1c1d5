package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"tapdlens/internal/embedding"
	"tapdlens/internal/filestore"
	"tapdlens/internal/modelcache"
	"tapdlens/internal/vectorindex"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "build or query the vector search index",
}

var (
	indexName    string
	indexK       int
	indexDataset string
)

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "chunk the dataset, embed each chunk, and persist the index sidecars",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := filestore.New(paths)
		ds, err := store.LoadDataset(indexDataset)
		if err != nil {
			return err
		}

		cache := modelcache.New(paths.ModelsDir(), embedding.DefaultConfig())

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		idx, err := vectorindex.Build(ctx, paths.VectorIndexBase(indexName), ds, indexK, cache, "default")
		if err != nil {
			return err
		}

		return printJSON(idx.Stats())
	},
}

var (
	indexQuery string
	indexTopK  int
)

var indexSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "embed a query and return the top-k most similar chunks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cache := modelcache.New(paths.ModelsDir(), embedding.DefaultConfig())
		dim, err := cache.Dimensions()
		if err != nil {
			return err
		}

		idx, err := vectorindex.Load(paths.VectorIndexBase(indexName), dim)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		results, err := idx.Search(ctx, cache, indexQuery, indexTopK)
		if err != nil {
			return err
		}

		return printJSON(results)
	},
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func init() {
	indexBuildCmd.Flags().StringVar(&indexName, "name", "issues", "index name, under local_data/vector_data/")
	indexBuildCmd.Flags().IntVar(&indexK, "k", 20, "max records per chunk")
	indexBuildCmd.Flags().StringVar(&indexDataset, "dataset", "msg_from_fetcher.json", "dataset file under local_data/")

	indexSearchCmd.Flags().StringVar(&indexName, "name", "issues", "index name, under local_data/vector_data/")
	indexSearchCmd.Flags().StringVar(&indexQuery, "query", "", "query text")
	indexSearchCmd.Flags().IntVar(&indexTopK, "top-k", 5, "number of results to return")

	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexSearchCmd)
}
