// ABOUTME: CLI command to index documents into the vector store
// ABOUTME: Reports per-file status so one bad file never aborts a batch
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/documind/documind/internal/models"
)

// NewIndexCmd creates the index command
func NewIndexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index <file>...",
		Short: "Index documents for querying",
		Long: `Index one or more text documents into the vector store.

Each file is extracted, chunked, embedded, and stored. Indexing the
same file again replaces its previous entries. Supported formats:
.txt and .md.

Examples:
  documind index notes.txt
  documind index docs/*.md
  documind index --format json report.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: runIndex,
	}

	return cmd
}

func runIndex(cmd *cobra.Command, args []string) error {
	service, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	results := service.Index(cmd.Context(), args)

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return indexExitError(results)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "FILE\tSTATUS\tCHUNKS\tPAGES\tDETAIL\n")
	fmt.Fprintf(w, "----\t------\t------\t-----\t------\n")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			truncate(r.FileName, 40),
			r.Status,
			r.ChunksStored,
			r.TotalPages,
			truncate(r.Error, 50))
	}
	w.Flush()

	if !quiet {
		indexed := 0
		for _, r := range results {
			if r.Status == models.IndexStatusSuccess {
				indexed++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nIndexed %d of %d file(s)\n", indexed, len(results))
	}

	return indexExitError(results)
}

// indexExitError turns an all-failed batch into a command error.
func indexExitError(results []models.IndexingResult) error {
	failed := 0
	for _, r := range results {
		if r.Status == models.IndexStatusFailed {
			failed++
		}
	}
	if failed == len(results) && failed > 0 {
		return fmt.Errorf("all %d file(s) failed to index", failed)
	}
	return nil
}
