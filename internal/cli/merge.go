package cli

import (
	"github.com/spf13/cobra"

	"github.com/tagmend/tagmend/internal/engine"
)

var (
	mergeFlags opFlags
	mergeInto  string
)

var mergeCmd = &cobra.Command{
	Use:   "merge <tag>... --into <target>",
	Short: "Merge several tags into one",
	Long: `Merge one or more source tags into a target tag. Files carrying any
source tag are rewritten; a file already carrying the target keeps a
single copy rather than gaining a duplicate.

Runs in preview mode unless --execute is passed.`,
	Example: `  tagmend merge todo todos to-do --into task
  tagmend merge ml ai --into machine-learning --execute`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if mergeInto == "" {
			return handleErrorMsg(ErrMissingArgument, "merge requires --into <target>", "Pass the tag to merge into, e.g. --into task")
		}
		return runOperation(engine.Merge(args, mergeInto), &mergeFlags)
	},
}

func init() {
	addOpFlags(mergeCmd, &mergeFlags)
	mergeCmd.Flags().StringVar(&mergeInto, "into", "", "Target tag to merge into")
	rootCmd.AddCommand(mergeCmd)
}
