// ABOUTME: CLI command to show index statistics
// ABOUTME: Reports entry and document counts plus the database location
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show index statistics",
		Long: `Show statistics about the document index.

Reports how many chunks and documents are stored and where the
database file lives.

Examples:
  documind stats
  documind stats --format json`,
		RunE: runStats,
	}

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	service, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	stats, err := service.Stats()
	if err != nil {
		return fmt.Errorf("getting stats: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Entries:   %d\n", stats.TotalEntries)
	fmt.Fprintf(cmd.OutOrStdout(), "Documents: %d\n", stats.TotalDocuments)
	fmt.Fprintf(cmd.OutOrStdout(), "Database:  %s\n", stats.DBPath)
	return nil
}
