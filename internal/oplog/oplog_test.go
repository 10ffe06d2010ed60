package oplog

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tagmend/tagmend/internal/engine"
	"github.com/tagmend/tagmend/internal/vault"
)

func sampleResult() *engine.RunResult {
	return &engine.RunResult{
		Op:         engine.Rename("old", "new"),
		Mode:       engine.Execute,
		Candidates: 3,
		Files: []engine.FileResult{
			{Path: "a.md", Changed: true},
			{Path: "b.md"},
			{Path: "c.md", Err: errors.New("read c.md: gone"), Warnings: []engine.Warning{
				{Kind: engine.WarnParseDegraded, Path: "c.md"},
			}},
		},
	}
}

func TestFromRunResult(t *testing.T) {
	rec := FromRunResult(sampleResult())

	if rec.Type != "rename" || rec.Target != "new" {
		t.Errorf("rec = %+v", rec)
	}
	if rec.Candidates != 3 || rec.Changed != 1 || rec.Unchanged != 1 || rec.Errored != 1 {
		t.Errorf("counts = %d/%d/%d/%d", rec.Candidates, rec.Changed, rec.Unchanged, rec.Errored)
	}
	if len(rec.Warnings) != 1 || rec.Warnings[0].Kind != "parse_degraded" {
		t.Errorf("warnings = %v", rec.Warnings)
	}
	if len(rec.Errors) != 1 || rec.Errors[0].Path != "c.md" {
		t.Errorf("errors = %v", rec.Errors)
	}
	if rec.Timestamp.IsZero() {
		t.Error("timestamp must be set")
	}
}

func TestWriterAppendsJSONL(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)

	rec := FromRunResult(sampleResult())
	if err := w.Append(rec); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := w.Append(rec); err != nil {
		t.Fatalf("second append: %v", err)
	}

	f, err := os.Open(filepath.Join(root, vault.StateDir, "oplog.jsonl"))
	if err != nil {
		t.Fatalf("open oplog: %v", err)
	}
	defer f.Close()

	var lines int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines++
		var got Record
		if err := json.Unmarshal(scanner.Bytes(), &got); err != nil {
			t.Fatalf("line %d not valid JSON: %v", lines, err)
		}
		if got.Op != "rename old -> new" {
			t.Errorf("op = %q", got.Op)
		}
	}
	if lines != 2 {
		t.Errorf("lines = %d, want 2", lines)
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	root := t.TempDir()

	hist, err := OpenHistory(root)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer hist.Close()

	rec := FromRunResult(sampleResult())
	if err := hist.RecordAll([]Record{rec, rec, rec}); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := hist.Recent(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("recent = %d records, want 2", len(got))
	}
	if got[0].Type != "rename" || got[0].Changed != 1 {
		t.Errorf("record = %+v", got[0])
	}
}

func TestLogAppendOrder(t *testing.T) {
	var l Log
	l.Append(Record{Op: "first"})
	l.Append(Record{Op: "second"})

	recs := l.Records()
	if len(recs) != 2 || recs[0].Op != "first" || recs[1].Op != "second" {
		t.Errorf("records = %v", recs)
	}
}
