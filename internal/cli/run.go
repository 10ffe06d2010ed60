package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tagmend/tagmend/internal/engine"
	"github.com/tagmend/tagmend/internal/oplog"
	"github.com/tagmend/tagmend/internal/tagindex"
	"github.com/tagmend/tagmend/internal/ui"
	"github.com/tagmend/tagmend/internal/vault"
)

// opFlags are the flags shared by all mutating commands.
type opFlags struct {
	execute  bool
	diff     bool
	types    string
	noFilter bool
}

func addOpFlags(cmd *cobra.Command, f *opFlags) {
	cmd.Flags().BoolVar(&f.execute, "execute", false, "Write changes (default is preview)")
	cmd.Flags().BoolVar(&f.diff, "diff", false, "Show per-file diffs in preview output")
	cmd.Flags().StringVar(&f.types, "types", "", "Tag sources: metadata, inline, or both")
	cmd.Flags().BoolVar(&f.noFilter, "no-filter", false, "Index noise tags (pure numerals etc.) too")
}

// scanOptions merges config defaults with flag overrides.
func scanOptions(f *opFlags) (tagindex.Options, error) {
	scan := getConfig().Scan

	types := tagindex.TagTypes(scan.TagTypesOrDefault())
	if f != nil && f.types != "" {
		types = tagindex.TagTypes(f.types)
	}
	if !types.Valid() {
		return tagindex.Options{}, fmt.Errorf("invalid tag types %q (want metadata, inline, or both)", types)
	}

	filter := scan.FilterNoiseOrDefault()
	if f != nil && f.noFilter {
		filter = false
	}

	return tagindex.Options{Types: types, FilterNoise: filter}, nil
}

// buildIndex scans the vault once and builds the per-invocation index
// snapshot. Unreadable files surface as warnings, never as a failed
// scan.
func buildIndex(opts tagindex.Options) (*tagindex.Index, []Warning, error) {
	docs, failed, err := vault.CollectDocuments(getVaultPath(), getConfig().Scan.Exclude)
	if err != nil {
		return nil, nil, fmt.Errorf("scan vault: %w", err)
	}

	var warnings []Warning
	for _, f := range failed {
		warnings = append(warnings, Warning{
			Code:    WarnScanErrors,
			Message: f.Err.Error(),
			Path:    f.RelPath,
		})
	}
	return tagindex.Build(docs, opts), warnings, nil
}

// runOperation executes one operation end to end: scan, candidate
// selection, apply, log, report.
func runOperation(op engine.Operation, f *opFlags) error {
	opts, err := scanOptions(f)
	if err != nil {
		return handleError(ErrInvalidInput, err, "")
	}

	idx, scanWarnings, err := buildIndex(opts)
	if err != nil {
		return handleError(ErrScanFailed, err, "")
	}

	mode := engine.Preview
	if f.execute {
		mode = engine.Execute
	}

	eng := engine.New(getVaultPath(), mode)
	res, err := eng.Run(op, idx)
	if err != nil {
		return handleError(ErrInvalidInput, err, "")
	}

	logResults([]*engine.RunResult{res}, mode)
	return reportResults([]*engine.RunResult{res}, mode, f.diff, scanWarnings)
}

// logResults appends records to the vault oplog and history database.
// Execute-mode runs only; previews change nothing worth auditing.
// Logging is best-effort: a log failure never fails the run.
func logResults(results []*engine.RunResult, mode engine.Mode) {
	if mode != engine.Execute {
		return
	}

	writer := oplog.NewWriter(getVaultPath())
	var records []oplog.Record
	for _, res := range results {
		rec := oplog.FromRunResult(res)
		records = append(records, rec)
		if err := writer.Append(rec); err != nil {
			fmt.Fprintln(os.Stderr, ui.Warningf("oplog write failed: %v", err))
		}
	}

	hist, err := oplog.OpenHistory(getVaultPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Warningf("history unavailable: %v", err))
		return
	}
	defer hist.Close()
	if err := hist.RecordAll(records); err != nil {
		fmt.Fprintln(os.Stderr, ui.Warningf("history write failed: %v", err))
	}
}
