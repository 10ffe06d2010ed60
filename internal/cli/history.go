package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tagmend/tagmend/internal/oplog"
	"github.com/tagmend/tagmend/internal/ui"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past executed operations",
	Long: `Show the most recent executed operations recorded in the vault's
history database, newest first. Previews are not recorded; only runs
that actually wrote changes (or tried to) appear here.`,
	Example: `  tagmend history
  tagmend history --limit 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		hist, err := oplog.OpenHistory(getVaultPath())
		if err != nil {
			return handleError(ErrHistoryError, err, "")
		}
		defer hist.Close()

		records, err := hist.Recent(historyLimit)
		if err != nil {
			return handleError(ErrHistoryError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"runs": records}, &Meta{Count: len(records)})
			return nil
		}

		if len(records) == 0 {
			fmt.Println(ui.Info("no executed operations recorded"))
			return nil
		}
		for _, rec := range records {
			fmt.Printf("%s  %s  %s\n",
				ui.Muted.Render(rec.Timestamp.Format("2006-01-02 15:04:05")),
				ui.Bold.Render(rec.Op),
				ui.Muted.Render(fmt.Sprintf("changed %d/%d, errors %d",
					rec.Changed, rec.Candidates, rec.Errored)))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
