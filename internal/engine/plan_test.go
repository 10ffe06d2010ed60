package engine

import (
	"errors"
	"testing"

	"github.com/tagmend/tagmend/internal/testutil"
)

func TestParsePlan(t *testing.T) {
	plan, err := ParsePlan([]byte(`
operations:
  - type: rename
    source: old
    target: new
  - type: merge
    source: [a, b]
    target: c
  - type: delete
    source: temp
  - type: add_tags
    file: notes/a.md
    source: [work]
  - type: fix_duplicates
  - type: rename
    source: x
    target: y
    enabled: false
    reason: not sure yet
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(plan.Operations) != 6 {
		t.Fatalf("operations = %d, want 6", len(plan.Operations))
	}
	if !plan.Operations[0].IsEnabled() {
		t.Error("entries default to enabled")
	}
	if plan.Operations[5].IsEnabled() {
		t.Error("enabled: false must disable the entry")
	}

	op, err := plan.Operations[1].Operation()
	if err != nil {
		t.Fatalf("operation: %v", err)
	}
	if op.Kind != KindMerge || len(op.Sources) != 2 || op.Target != "c" {
		t.Errorf("merge entry = %+v", op)
	}
}

func TestParsePlanRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"no operations", "operations: []\n"},
		{"yaml syntax error", "operations:\n  - type: rename\n   bad indent\n"},
		{"unknown field", "operations:\n  - type: rename\n    source: a\n    target: b\n    frobnicate: true\n"},
		{"unknown type", "operations:\n  - type: explode\n"},
		{"missing target", "operations:\n  - type: rename\n    source: a\n"},
		{"invalid disabled entry", "operations:\n  - type: rename\n    source: a\n    enabled: false\n"},
		{"source mapping", "operations:\n  - type: delete\n    source: {a: b}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePlan([]byte(tt.in)); !errors.Is(err, ErrPlanInvalid) {
				t.Errorf("error = %v, want ErrPlanInvalid", err)
			}
		})
	}
}

func TestRunPlanOrderAndSkip(t *testing.T) {
	v := testutil.NewTestVault(t).
		WithFile("a.md", "---\ntags: [one]\n---\nbody\n").
		Build()

	plan, err := ParsePlan([]byte(`
operations:
  - type: rename
    source: one
    target: two
  - type: rename
    source: two
    target: three
    enabled: false
  - type: delete
    source: untagged-anywhere
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	eng := New(v.Path, Execute)
	results, err := eng.RunPlan(plan, buildIndex(t, v.Path))
	if err != nil {
		t.Fatalf("run plan: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	if results[0].Changed() != 1 {
		t.Errorf("first op changed = %d, want 1", results[0].Changed())
	}
	if !results[1].Skipped {
		t.Error("disabled entry must be reported skipped")
	}
	if results[2].Candidates != 0 {
		t.Errorf("unindexed tag candidates = %d, want 0", results[2].Candidates)
	}

	v.AssertFileEquals("a.md", "---\ntags: [two]\n---\nbody\n")
}

func TestLoadPlanMissingFile(t *testing.T) {
	if _, err := LoadPlan("/nonexistent/plan.yaml"); err == nil {
		t.Error("expected error for missing plan file")
	}
}
