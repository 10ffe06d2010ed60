package cli

import (
	"fmt"

	"github.com/tagmend/tagmend/internal/engine"
	"github.com/tagmend/tagmend/internal/ui"
)

type fileErrorView struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

type opResultView struct {
	Op           string          `json:"op"`
	Type         string          `json:"type"`
	Mode         string          `json:"mode"`
	Skipped      bool            `json:"skipped,omitempty"`
	Candidates   int             `json:"candidates"`
	Changed      int             `json:"changed"`
	Unchanged    int             `json:"unchanged"`
	Errored      int             `json:"errored"`
	ChangedFiles []string        `json:"changed_files,omitempty"`
	Errors       []fileErrorView `json:"errors,omitempty"`
}

func viewOf(res *engine.RunResult) opResultView {
	view := opResultView{
		Op:         res.Op.String(),
		Type:       string(res.Op.Kind),
		Mode:       string(res.Mode),
		Skipped:    res.Skipped,
		Candidates: res.Candidates,
		Changed:    res.Changed(),
		Unchanged:  res.Unchanged(),
		Errored:    res.Errored(),
	}
	for _, f := range res.Files {
		if f.Changed && f.Err == nil {
			view.ChangedFiles = append(view.ChangedFiles, f.Path)
		}
		if f.Err != nil {
			view.Errors = append(view.Errors, fileErrorView{Path: f.Path, Message: f.Err.Error()})
		}
	}
	return view
}

func warningsOf(results []*engine.RunResult) []Warning {
	var out []Warning
	for _, res := range results {
		for _, w := range res.Warnings() {
			out = append(out, Warning{
				Code:    warningCode(w.Kind),
				Message: warningMessage(w),
				Path:    w.Path,
				Tag:     w.Tag,
			})
		}
	}
	return out
}

func warningCode(kind engine.WarningKind) string {
	switch kind {
	case engine.WarnInlineDeletion:
		return WarnInlineDeletion
	case engine.WarnParseDegraded:
		return WarnParseDegraded
	default:
		return string(kind)
	}
}

func warningMessage(w engine.Warning) string {
	switch w.Kind {
	case engine.WarnInlineDeletion:
		return fmt.Sprintf("deleting inline #%s in %s alters body text", w.Tag, w.Path)
	case engine.WarnParseDegraded:
		return fmt.Sprintf("metadata block in %s is not valid YAML; treated as untagged", w.Path)
	default:
		return fmt.Sprintf("%s: %s", w.Kind, w.Path)
	}
}

// reportResults prints the run summary in the active output mode.
// Execute-mode write failures are reported prominently: they mean the
// bulk operation completed only partially.
func reportResults(results []*engine.RunResult, mode engine.Mode, showDiff bool, extra []Warning) error {
	warnings := append(extra, warningsOf(results)...)

	if isJSONOutput() {
		views := make([]opResultView, len(results))
		changed := 0
		for i, res := range results {
			views[i] = viewOf(res)
			changed += views[i].Changed
		}
		data := map[string]interface{}{
			"preview":    mode == engine.Preview,
			"operations": views,
		}
		if len(warnings) > 0 {
			outputSuccessWithWarnings(data, warnings, &Meta{Count: changed})
		} else {
			outputSuccess(data, &Meta{Count: changed})
		}
		return errIfWriteFailed(results, mode)
	}

	for _, res := range results {
		printRunResult(res, showDiff)
	}
	for _, w := range warnings {
		fmt.Println(ui.Warning(w.Message))
	}
	if mode == engine.Preview && anyChanged(results) {
		fmt.Println(ui.Muted.Render("\nPreview only. Run with --execute to apply changes."))
	}

	return errIfWriteFailed(results, mode)
}

func printRunResult(res *engine.RunResult, showDiff bool) {
	if res.Skipped {
		fmt.Printf("%s %s\n", ui.Muted.Render("skipped"), res.Op)
		return
	}

	fmt.Printf("%s %s\n", ui.Header(res.Op.String()), ui.Muted.Render("("+string(res.Mode)+")"))
	fmt.Printf("  candidates: %d, changed: %d, unchanged: %d, errors: %d\n",
		res.Candidates, res.Changed(), res.Unchanged(), res.Errored())

	for _, f := range res.Files {
		switch {
		case f.Err != nil:
			fmt.Printf("  %s %s: %v\n", ui.SymbolError, ui.FilePath(f.Path), f.Err)
		case f.Changed:
			fmt.Printf("  %s %s\n", ui.SymbolSuccess, ui.FilePath(f.Path))
			if showDiff {
				fmt.Print(indent(ui.RenderDiff(string(f.Before), string(f.After), ui.IsTerminal()), "    "))
			}
		}
	}
}

func anyChanged(results []*engine.RunResult) bool {
	for _, res := range results {
		if res.Changed() > 0 {
			return true
		}
	}
	return false
}

// errIfWriteFailed surfaces execute-mode write failures as a command
// error so the exit code reflects the partial completion.
func errIfWriteFailed(results []*engine.RunResult, mode engine.Mode) error {
	if mode != engine.Execute {
		return nil
	}
	failed := 0
	for _, res := range results {
		failed += res.Errored()
	}
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%d file(s) failed; the vault was only partially updated", failed)
}

func indent(s, prefix string) string {
	if s == "" {
		return s
	}
	var out string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out += prefix + s[start:i+1]
			start = i + 1
		}
	}
	if start < len(s) {
		out += prefix + s[start:] + "\n"
	}
	return out
}
