package cli

import (
	"errors"
	"testing"

	"github.com/tagmend/tagmend/internal/engine"
)

func sampleRun() *engine.RunResult {
	return &engine.RunResult{
		Op:         engine.Delete("temp"),
		Mode:       engine.Execute,
		Candidates: 3,
		Files: []engine.FileResult{
			{Path: "a.md", Changed: true, Warnings: []engine.Warning{
				{Kind: engine.WarnInlineDeletion, Path: "a.md", Tag: "temp"},
			}},
			{Path: "b.md"},
			{Path: "c.md", Err: errors.New("write c.md: disk full")},
		},
	}
}

func TestViewOf(t *testing.T) {
	view := viewOf(sampleRun())

	if view.Type != "delete" || view.Mode != "execute" {
		t.Errorf("view = %+v", view)
	}
	if view.Candidates != 3 || view.Changed != 1 || view.Unchanged != 1 || view.Errored != 1 {
		t.Errorf("counts = %d/%d/%d/%d", view.Candidates, view.Changed, view.Unchanged, view.Errored)
	}
	if len(view.ChangedFiles) != 1 || view.ChangedFiles[0] != "a.md" {
		t.Errorf("changed files = %v", view.ChangedFiles)
	}
	if len(view.Errors) != 1 || view.Errors[0].Path != "c.md" {
		t.Errorf("errors = %v", view.Errors)
	}
}

func TestWarningsOf(t *testing.T) {
	warnings := warningsOf([]*engine.RunResult{sampleRun()})

	if len(warnings) != 1 {
		t.Fatalf("warnings = %v", warnings)
	}
	w := warnings[0]
	if w.Code != WarnInlineDeletion || w.Path != "a.md" || w.Tag != "temp" {
		t.Errorf("warning = %+v", w)
	}
	if w.Message == "" {
		t.Error("warning message must be set")
	}
}

func TestErrIfWriteFailed(t *testing.T) {
	run := sampleRun()

	if err := errIfWriteFailed([]*engine.RunResult{run}, engine.Execute); err == nil {
		t.Error("execute mode with a failed file must return an error")
	}
	if err := errIfWriteFailed([]*engine.RunResult{run}, engine.Preview); err != nil {
		t.Errorf("preview never fails the command: %v", err)
	}

	clean := &engine.RunResult{Op: engine.Delete("x"), Mode: engine.Execute}
	if err := errIfWriteFailed([]*engine.RunResult{clean}, engine.Execute); err != nil {
		t.Errorf("clean run must not fail: %v", err)
	}
}

func TestIndent(t *testing.T) {
	if got := indent("a\nb\n", "  "); got != "  a\n  b\n" {
		t.Errorf("indent = %q", got)
	}
	if got := indent("", "  "); got != "" {
		t.Errorf("indent empty = %q", got)
	}
	if got := indent("no newline", "> "); got != "> no newline\n" {
		t.Errorf("indent = %q", got)
	}
}
