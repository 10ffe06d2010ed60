package cli

import (
	"github.com/spf13/cobra"

	"github.com/tagmend/tagmend/internal/engine"
)

var deleteFlags opFlags

var deleteCmd = &cobra.Command{
	Use:   "delete <tag>...",
	Short: "Delete tags from the vault",
	Long: `Delete one or more tags everywhere they appear. Metadata values are
removed from their fields; a field left empty is removed entirely.
Inline occurrences are removed from body text, which alters prose, so
each inline deletion is reported as a warning.

Runs in preview mode unless --execute is passed.`,
	Example: `  tagmend delete temp draft
  tagmend delete x27 --no-filter --execute`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(engine.Delete(args...), &deleteFlags)
	},
}

func init() {
	addOpFlags(deleteCmd, &deleteFlags)
	rootCmd.AddCommand(deleteCmd)
}
