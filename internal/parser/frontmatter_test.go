package parser

import (
	"reflect"
	"testing"
)

func TestParseFrontmatterStyles(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantStyle  TagFieldStyle
		wantValues []string
	}{
		{
			name: "scalar",
			content: `---
tags: work
---
body`,
			wantStyle:  StyleScalar,
			wantValues: []string{"work"},
		},
		{
			name: "scalar comma separated",
			content: `---
tags: work, draft
---
body`,
			wantStyle:  StyleScalar,
			wantValues: []string{"work", "draft"},
		},
		{
			name: "flow list",
			content: `---
tags: [work, draft]
---
body`,
			wantStyle:  StyleFlowList,
			wantValues: []string{"work", "draft"},
		},
		{
			name: "flow list quoted",
			content: `---
tags: ["work", 'draft']
---
body`,
			wantStyle:  StyleFlowList,
			wantValues: []string{"work", "draft"},
		},
		{
			name: "block list",
			content: `---
tags:
  - work
  - projects/active
---
body`,
			wantStyle:  StyleBlockList,
			wantValues: []string{"work", "projects/active"},
		},
		{
			name: "singular key",
			content: `---
tag: work
---
body`,
			wantStyle:  StyleScalar,
			wantValues: []string{"work"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, _ := parseFrontmatter(tt.content)
			if fm == nil {
				t.Fatal("expected frontmatter")
			}
			if len(fm.Occurrences) != 1 {
				t.Fatalf("expected 1 occurrence, got %d", len(fm.Occurrences))
			}
			occ := fm.Occurrences[0]
			if occ.Style != tt.wantStyle {
				t.Errorf("style = %v, want %v", occ.Style, tt.wantStyle)
			}
			if !reflect.DeepEqual(occ.Values, tt.wantValues) {
				t.Errorf("values = %v, want %v", occ.Values, tt.wantValues)
			}
		})
	}
}

func TestParseFrontmatterAbsent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"plain document", "# Heading\n\nbody #tag\n"},
		{"unclosed block", "---\ntags: work\nno closing marker\n"},
		{"empty file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body := parseFrontmatter(tt.content)
			if fm != nil {
				t.Fatal("expected no frontmatter")
			}
			if body != tt.content {
				t.Errorf("body = %q, want full content", body)
			}
		})
	}
}

func TestRoundTripIdentity(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "typical document",
			content: `---
title: Notes
tags: [work, draft]
created: 2026-01-05
---

# Notes

Some #inline text.
`,
		},
		{
			name:    "crlf line endings",
			content: "---\r\ntags: work\r\n---\r\n\r\nbody\r\n",
		},
		{
			name:    "trailing bytes after closing marker",
			content: "---\ntags: work\n---   \nbody\n",
		},
		{
			name:    "no newline after closing marker",
			content: "---\ntags: work\n---",
		},
		{
			name:    "no trailing newline in body",
			content: "---\ntags: work\n---\nbody without newline",
		},
		{
			name: "block list with odd indentation",
			content: `---
tags:
    -   work
    -   draft
other: value
---
body
`,
		},
		{
			name:    "degraded yaml",
			content: "---\ntags: [unclosed\nother: value\n---\nbody\n",
		},
		{
			name:    "empty block",
			content: "---\n---\nbody\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := ParseDocument("test.md", []byte(tt.content))
			if got := string(doc.Content()); got != tt.content {
				t.Errorf("round trip mismatch\nwant: %q\ngot:  %q", tt.content, got)
			}
		})
	}
}

func TestClosingSuffixCaptured(t *testing.T) {
	fm, body := parseFrontmatter("---\ntags: work\n---   \t\nbody\n")
	if fm == nil {
		t.Fatal("expected frontmatter")
	}
	if fm.ClosingSuffix != "   \t\n" {
		t.Errorf("ClosingSuffix = %q", fm.ClosingSuffix)
	}
	if body != "body\n" {
		t.Errorf("body = %q", body)
	}
}

func TestDegradedBlock(t *testing.T) {
	fm, body := parseFrontmatter("---\ntags: [a, b\nbroken: {\n---\nbody\n")
	if fm == nil {
		t.Fatal("expected frontmatter")
	}
	if !fm.Degraded {
		t.Error("expected Degraded")
	}
	if got := fm.TagValues(); got != nil {
		t.Errorf("TagValues = %v, want nil", got)
	}
	if body != "body\n" {
		t.Errorf("body = %q", body)
	}
}

func TestDuplicateFields(t *testing.T) {
	content := `---
tags: [a, b]
title: Test
tags:
  - c
---
body`
	fm, _ := parseFrontmatter(content)
	if fm == nil {
		t.Fatal("expected frontmatter")
	}
	if !fm.HasDuplicateFields() {
		t.Fatal("expected duplicate fields")
	}
	if len(fm.Occurrences) != 2 {
		t.Fatalf("occurrences = %d, want 2", len(fm.Occurrences))
	}
	if !reflect.DeepEqual(fm.TagValues(), []string{"a", "b", "c"}) {
		t.Errorf("TagValues = %v", fm.TagValues())
	}
}

func TestSetOccurrenceValuesPreservesStyle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "scalar stays scalar",
			content: "---\ntags: old\n---\nbody\n",
			want:    "---\ntags: new\n---\nbody\n",
		},
		{
			name:    "flow stays flow",
			content: "---\ntags: [old, keep]\n---\nbody\n",
			want:    "---\ntags: [new, keep]\n---\nbody\n",
		},
		{
			name:    "block stays block with authored prefix",
			content: "---\ntags:\n    - old\n    - keep\n---\nbody\n",
			want:    "---\ntags:\n    - new\n    - keep\n---\nbody\n",
		},
		{
			name:    "crlf preserved on rewrite",
			content: "---\r\ntags: old\r\n---\r\nbody\r\n",
			want:    "---\r\ntags: new\r\n---\r\nbody\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body := parseFrontmatter(tt.content)
			vals := make([]string, len(fm.Occurrences[0].Values))
			copy(vals, fm.Occurrences[0].Values)
			for i, v := range vals {
				if v == "old" {
					vals[i] = "new"
				}
			}
			fm.SetOccurrenceValues(0, vals)
			if got := fm.Serialize(body); got != tt.want {
				t.Errorf("Serialize =\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

func TestSetOccurrenceValuesEmptyRemovesField(t *testing.T) {
	fm, body := parseFrontmatter("---\ntitle: Test\ntags: [a]\n---\nbody\n")
	fm.SetOccurrenceValues(0, nil)
	want := "---\ntitle: Test\n---\nbody\n"
	if got := fm.Serialize(body); got != want {
		t.Errorf("Serialize = %q, want %q", got, want)
	}
}

func TestAddTagField(t *testing.T) {
	fm, body := parseFrontmatter("---\ntitle: Test\n---\nbody\n")
	fm.AddTagField([]string{"work", "draft"})
	want := "---\ntitle: Test\ntags: [work, draft]\n---\nbody\n"
	if got := fm.Serialize(body); got != want {
		t.Errorf("Serialize = %q, want %q", got, want)
	}
}

func TestNewFrontmatter(t *testing.T) {
	fm := NewFrontmatter([]string{"work"}, "\n")
	want := "---\ntags: [work]\n---\nbody\n"
	if got := fm.Serialize("body\n"); got != want {
		t.Errorf("Serialize = %q, want %q", got, want)
	}
}

func TestQuoteIfNeeded(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"work", "work"},
		{"", `""`},
		{"a:b", `"a:b"`},
		{"has#hash", `"has#hash"`},
		{"projects/work", "projects/work"},
	}
	for _, tt := range tests {
		if got := quoteIfNeeded(tt.in); got != tt.want {
			t.Errorf("quoteIfNeeded(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
