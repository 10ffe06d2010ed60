package cli

import (
	"github.com/spf13/cobra"

	"github.com/tagmend/tagmend/internal/engine"
)

var applyFlags opFlags

var applyCmd = &cobra.Command{
	Use:   "apply <plan.yaml>",
	Short: "Apply an operation plan file",
	Long: `Apply a YAML plan of tag operations, in file order. The whole plan is
validated before anything runs: a plan with a syntax error or an
invalid entry (even a disabled one) is rejected without touching a
single file. Entries with enabled: false are skipped but reported.

Runs in preview mode unless --execute is passed.`,
	Example: `  tagmend apply cleanup.yaml
  tagmend tags --suggest > plan.yaml && tagmend apply plan.yaml --execute`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := engine.LoadPlan(args[0])
		if err != nil {
			return handleError(ErrPlanInvalid, err, "Fix the plan file; nothing was changed")
		}

		opts, err := scanOptions(&applyFlags)
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		idx, scanWarnings, err := buildIndex(opts)
		if err != nil {
			return handleError(ErrScanFailed, err, "")
		}

		mode := engine.Preview
		if applyFlags.execute {
			mode = engine.Execute
		}

		eng := engine.New(getVaultPath(), mode)
		results, err := eng.RunPlan(plan, idx)
		if err != nil {
			return handleError(ErrPlanInvalid, err, "")
		}

		logResults(results, mode)
		return reportResults(results, mode, applyFlags.diff, scanWarnings)
	},
}

func init() {
	addOpFlags(applyCmd, &applyFlags)
	rootCmd.AddCommand(applyCmd)
}
