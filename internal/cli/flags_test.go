package cli

import (
	"testing"

	"github.com/spf13/pflag"
)

// Every mutating command must expose the shared operation flags so the
// preview/execute contract is uniform across the CLI.
func TestMutatingCommandsShareOpFlags(t *testing.T) {
	mutating := []string{"rename", "merge", "delete", "add", "fix-duplicates", "apply"}
	required := []string{"execute", "diff", "types", "no-filter"}

	for _, name := range mutating {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q missing from CLI tree: %v", name, err)
			continue
		}

		flags := make(map[string]bool)
		cmd.LocalFlags().VisitAll(func(f *pflag.Flag) {
			flags[f.Name] = true
		})

		for _, want := range required {
			if !flags[want] {
				t.Errorf("command %q missing --%s", name, want)
			}
		}
	}
}

func TestReadOnlyCommandsHaveNoExecuteFlag(t *testing.T) {
	for _, name := range []string{"tags", "history", "docs", "version"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q missing from CLI tree: %v", name, err)
			continue
		}
		if cmd.LocalFlags().Lookup("execute") != nil {
			t.Errorf("read-only command %q must not offer --execute", name)
		}
	}
}
