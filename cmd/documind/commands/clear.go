// ABOUTME: CLI command to wipe the entire vector index
// ABOUTME: Requires confirmation unless --yes is passed
package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewClearCmd creates the clear command
func NewClearCmd() *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every document from the index",
		Long: `Remove all indexed entries for all documents.

This empties the vector index. The embedding cache is kept, so
re-indexing the same files will not re-embed unchanged content.

Examples:
  documind clear
  documind clear --yes`,
		Args: cobra.NoArgs,
		RunE: runClear,
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")

	return cmd
}

func runClear(cmd *cobra.Command, args []string) error {
	skipConfirm, _ := cmd.Flags().GetBool("yes")

	// Ask for confirmation unless --yes flag is set
	if !skipConfirm {
		fmt.Fprint(cmd.OutOrStdout(), "This will remove ALL indexed documents. Continue? [y/N]: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		response, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading confirmation: %w", err)
		}
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
			return nil
		}
	}

	service, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	deleted, err := service.ClearAll()
	if err != nil {
		return fmt.Errorf("clearing index: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(map[string]interface{}{
			"entries_deleted": deleted,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if !quiet {
		if deleted == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Index is already empty")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entry(ies) from the index\n", deleted)
		}
	}
	return nil
}
