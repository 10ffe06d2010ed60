package parser

import (
	"reflect"
	"testing"
)

func rawTags(locs []InlineTag) []string {
	var out []string
	for _, l := range locs {
		out = append(out, l.Raw)
	}
	return out
}

func TestExtractInlineTags(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "basic",
			body: "Hello #work and #projects/active today.\n",
			want: []string{"work", "projects/active"},
		},
		{
			name: "headings are not tags",
			body: "# Title\n\n## Section\n\n#real\n",
			want: []string{"real"},
		},
		{
			name: "fenced code excluded",
			body: "#before\n```\n#inside\n```\n#after\n",
			want: []string{"before", "after"},
		},
		{
			name: "tilde fence excluded",
			body: "~~~\n#inside\n~~~\n#after\n",
			want: []string{"after"},
		},
		{
			name: "longer closing fence",
			body: "````\n```\n#inside\n````\n#after\n",
			want: []string{"after"},
		},
		{
			name: "inline code excluded",
			body: "use `#cmd` but keep #real\n",
			want: []string{"real"},
		},
		{
			name: "double backtick span",
			body: "``code with `tick` and #x`` then #real\n",
			want: []string{"real"},
		},
		{
			name: "url fragment excluded",
			body: "see https://example.com/page#section and #tag\n",
			want: []string{"tag"},
		},
		{
			name: "link destination excluded",
			body: "[note](./other.md#heading) mentions #tag\n",
			want: []string{"tag"},
		},
		{
			name: "mid-word hash rejected",
			body: "word#glued is not a tag but (#bracketed) is\n",
			want: []string{"bracketed"},
		},
		{
			name: "html entity rejected",
			body: "it&#39;s fine, #ok\n",
			want: []string{"ok"},
		},
		{
			name: "trailing slash trimmed",
			body: "ratio #work/ done\n",
			want: []string{"work"},
		},
		{
			name: "hash space is not a tag",
			body: "# \n#1more? no, numerals are extracted here\n",
			want: []string{"1more"},
		},
		{
			name: "none",
			body: "plain text\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rawTags(ExtractInlineTags(tt.body))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tags = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractInlineTagsPositions(t *testing.T) {
	body := "first line\nsee #work here\n"
	locs := ExtractInlineTags(body)
	if len(locs) != 1 {
		t.Fatalf("expected 1 tag, got %d", len(locs))
	}
	loc := locs[0]
	if loc.Line != 2 {
		t.Errorf("Line = %d, want 2", loc.Line)
	}
	if got := body[loc.Start:loc.End]; got != "#work" {
		t.Errorf("body[Start:End] = %q, want %q", got, "#work")
	}
}

func TestReplaceInlineTags(t *testing.T) {
	target := "projects/work"
	tests := []struct {
		name string
		body string
		subs map[string]*string
		want string
	}{
		{
			name: "rename",
			body: "doing #work now\n",
			subs: map[string]*string{"work": &target},
			want: "doing #projects/work now\n",
		},
		{
			name: "rename matches case-insensitively",
			body: "doing #Work now\n",
			subs: map[string]*string{"work": &target},
			want: "doing #projects/work now\n",
		},
		{
			name: "untouched occurrences keep their bytes",
			body: "keep #Other, change #work\n",
			subs: map[string]*string{"work": &target},
			want: "keep #Other, change #projects/work\n",
		},
		{
			name: "code spans never rewritten",
			body: "`#work` and #work\n",
			subs: map[string]*string{"work": &target},
			want: "`#work` and #projects/work\n",
		},
		{
			name: "delete collapses doubled space",
			body: "a #work b\n",
			subs: map[string]*string{"work": nil},
			want: "a b\n",
		},
		{
			name: "delete at line start",
			body: "#work rest\n",
			subs: map[string]*string{"work": nil},
			want: "rest\n",
		},
		{
			name: "delete at line end",
			body: "done #work\nnext\n",
			subs: map[string]*string{"work": nil},
			want: "done\nnext\n",
		},
		{
			name: "delete never touches punctuation",
			body: "see #work.\n",
			subs: map[string]*string{"work": nil},
			want: "see .\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := ReplaceInlineTags(tt.body, tt.subs)
			if got != tt.want {
				t.Errorf("body = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReplaceInlineTagsReportsDeleted(t *testing.T) {
	_, deleted := ReplaceInlineTags("a #x and #y\n", map[string]*string{
		"x": nil,
		"z": nil,
	})
	if !deleted["x"] {
		t.Error("expected x reported deleted")
	}
	if deleted["z"] {
		t.Error("z had no occurrence, must not be reported")
	}
}

func TestMaskInlineCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a `b` c", "a     c"},
		{"``a `b` c`` d", "            d"},
		{"no spans", "no spans"},
		{"`unclosed", "`unclosed"},
	}
	for _, tt := range tests {
		if got := maskInlineCode(tt.in); got != tt.want {
			t.Errorf("maskInlineCode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
