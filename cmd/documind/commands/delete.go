// ABOUTME: CLI command to remove a document from the index
// ABOUTME: Deletes all stored entries for a file by name
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewDeleteCmd creates the delete command
func NewDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <file-name>",
		Short: "Remove a document from the index",
		Long: `Remove all indexed entries for a document.

The argument is the file name as shown in query sources, not a path.
Deleting a document that is not indexed is not an error.

Examples:
  documind delete notes.txt
  documind delete --format json report.md`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	service, cleanup, err := newService()
	if err != nil {
		return err
	}
	defer cleanup()

	fileName := args[0]
	deleted, err := service.DeleteDocument(fileName)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(map[string]interface{}{
			"file_name":       fileName,
			"entries_deleted": deleted,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if deleted == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No entries found for %s\n", fileName)
		}
		return nil
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d entry(ies) for %s\n", deleted, fileName)
	}
	return nil
}
