package cli

import (
	"github.com/spf13/cobra"

	"github.com/tagmend/tagmend/internal/engine"
)

var fixDupFlags opFlags

var fixDuplicatesCmd = &cobra.Command{
	Use:   "fix-duplicates",
	Short: "Repair files with duplicate tag fields",
	Long: `Find files whose metadata block declares the tag field more than once
and consolidate them into a single field. Values are unioned in order
of first appearance; later duplicates of the same canonical tag are
dropped.

Runs in preview mode unless --execute is passed.`,
	Example: `  tagmend fix-duplicates
  tagmend fix-duplicates --execute --diff`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(engine.FixDuplicates(), &fixDupFlags)
	},
}

func init() {
	addOpFlags(fixDuplicatesCmd, &fixDupFlags)
	rootCmd.AddCommand(fixDuplicatesCmd)
}
