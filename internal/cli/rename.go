package cli

import (
	"github.com/spf13/cobra"

	"github.com/tagmend/tagmend/internal/engine"
)

var renameFlags opFlags

var renameCmd = &cobra.Command{
	Use:   "rename <old-tag> <new-tag>",
	Short: "Rename a tag everywhere it appears",
	Long: `Rename a tag across the vault: frontmatter tag fields and inline
#tags both. Matching is case-insensitive on the canonical tag form;
the new tag is written exactly as given.

Runs in preview mode unless --execute is passed.`,
	Example: `  tagmend rename work projects/work
  tagmend rename MachineLearning ml --execute
  tagmend rename todo task --diff`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOperation(engine.Rename(args[0], args[1]), &renameFlags)
	},
}

func init() {
	addOpFlags(renameCmd, &renameFlags)
	rootCmd.AddCommand(renameCmd)
}
