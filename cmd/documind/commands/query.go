// ABOUTME: CLI command to ask questions over indexed documents
// ABOUTME: Prints the cited answer with a reference list for each citation
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/documind/documind/internal/generation"
	"github.com/documind/documind/internal/models"
)

var (
	queryTopK   int
	queryFloor  float64
	queryRerank bool
	queryFile   string
)

// NewQueryCmd creates the query command
func NewQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <question>",
		Short: "Ask a question about indexed documents",
		Long: `Ask a question and get an answer grounded in your indexed documents.

The answer cites its sources with [1], [2] markers, and a reference
list maps each citation back to the document and page it came from.

Examples:
  documind query "What does the contract say about termination?"
  documind query --top-k 10 "summarize the findings"
  documind query --file report.txt "what were the conclusions"
  documind query --rerank "compare the proposals"`,
		Args: cobra.ExactArgs(1),
		RunE: runQuery,
	}

	cmd.Flags().IntVar(&queryTopK, "top-k", models.DefaultTopK, "Maximum source chunks to retrieve (1-20)")
	cmd.Flags().Float64Var(&queryFloor, "floor", models.DefaultSimilarityFloor, "Minimum similarity score (0-1)")
	cmd.Flags().BoolVar(&queryRerank, "rerank", false, "Rerank retrieved chunks for diversity")
	cmd.Flags().StringVar(&queryFile, "file", "", "Restrict retrieval to a single document by file name")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(queryTopK, "top-k"); err != nil {
		return err
	}

	service, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	req := models.QueryRequest{
		Query:           args[0],
		TopK:            queryTopK,
		SimilarityFloor: queryFloor,
		Rerank:          queryRerank,
		FileFilter:      queryFile,
	}

	response, err := service.Query(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("querying documents: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", response.Answer)

	if len(response.CitationMap) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", generation.FormatReferences(response.CitationMap))
	}

	for _, warning := range response.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", warning)
	}

	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "\nSources: %d, avg similarity: %.3f\n",
			response.NumSources, response.AvgSimilarity)
	}

	return nil
}
