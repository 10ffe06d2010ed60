package cli

import (
	"github.com/spf13/cobra"

	"github.com/tagmend/tagmend/internal/engine"
	"github.com/tagmend/tagmend/internal/paths"
)

var addFlags opFlags

var addCmd = &cobra.Command{
	Use:   "add <file> <tag>...",
	Short: "Add tags to a file's metadata",
	Long: `Add tags to one file's frontmatter tag field. Tags the file already
carries (under canonical comparison) are skipped. A file without a
metadata block gains a minimal one; a file without a tag field gains
one in flow style.

Runs in preview mode unless --execute is passed.`,
	Example: `  tagmend add notes/standup.md meeting work
  tagmend add "projects/site redesign.md" active --execute`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := paths.Normalize(args[0])
		return runOperation(engine.AddTags(file, args[1:]), &addFlags)
	},
}

func init() {
	addOpFlags(addCmd, &addFlags)
	rootCmd.AddCommand(addCmd)
}
