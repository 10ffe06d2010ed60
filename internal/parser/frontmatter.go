package parser

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// delimiter is the frontmatter block marker line.
const delimiter = "---"

// TagFieldStyle describes how a tag field was authored. The serializer
// switches on this to preserve authoring style: a scalar field stays
// scalar, a list stays a list.
type TagFieldStyle int

const (
	// StyleScalar is "tags: work" (possibly comma-separated).
	StyleScalar TagFieldStyle = iota
	// StyleFlowList is "tags: [work, draft]".
	StyleFlowList
	// StyleBlockList is "tags:" followed by "  - work" item lines.
	StyleBlockList
)

// TagOccurrence is one authored tag-bearing field inside the block.
// A well-formed document has at most one; duplicated fields are kept
// as separate occurrences so FixDuplicateFields can repair them.
type TagOccurrence struct {
	Key    string // authored key, e.g. "tags"
	Style  TagFieldStyle
	Values []string // raw authored values, in order

	lineStart  int // half-open line range within the block
	lineEnd    int
	itemPrefix string // block list item prefix, e.g. "  - "
	modified   bool
	removed    bool
}

// Frontmatter is a parsed metadata block with byte-exact provenance.
// Every byte of the original block is either stored verbatim or covered
// by a tag occurrence, so serializing an unmodified Frontmatter
// reproduces the input exactly — including the whitespace and newline
// run after the closing delimiter, which is captured in ClosingSuffix
// rather than discarded.
type Frontmatter struct {
	// ClosingSuffix holds everything after the closing "---" marker on
	// its line, including the trailing newline bytes. Re-emitted
	// unchanged on every rewrite.
	ClosingSuffix string

	// Degraded is set when the block is not valid YAML. The tag set is
	// then empty but the body remains editable.
	Degraded bool

	// Occurrences are the tag-bearing fields found, in order.
	Occurrences []*TagOccurrence

	openLine    string   // opening delimiter line, verbatim incl. newline
	closeMarker string   // closing delimiter line up to and incl. "---"
	lines       []string // raw inner lines, each incl. its newline
	lineBreak   string   // dominant line terminator, "\n" or "\r\n"
}

var (
	tagKeyRe   = regexp.MustCompile(`(?i)^(tags?):(.*?)(\r?\n?)$`)
	listItemRe = regexp.MustCompile(`^(\s*-\s*)(.*?)(\r?\n?)$`)
)

// parseFrontmatter splits content into a metadata block and body.
// Returns (nil, content) when no well-formed block is present; the
// document is then inline-only.
func parseFrontmatter(content string) (*Frontmatter, string) {
	first, rest := splitFirstLine(content)
	if strings.TrimSpace(trimLineBreak(first)) != delimiter {
		return nil, content
	}

	lines := splitLinesKeepEnds(rest)
	closeIdx := -1
	for i, line := range lines {
		if strings.TrimSpace(trimLineBreak(line)) == delimiter {
			closeIdx = i
			break
		}
	}
	if closeIdx == -1 {
		// Unclosed block: treat the whole file as body.
		return nil, content
	}

	closeLine := lines[closeIdx]
	markerEnd := strings.Index(closeLine, delimiter) + len(delimiter)

	fm := &Frontmatter{
		openLine:      first,
		closeMarker:   closeLine[:markerEnd],
		ClosingSuffix: closeLine[markerEnd:],
		lines:         lines[:closeIdx],
		lineBreak:     detectLineBreak(first),
	}

	body := strings.Join(lines[closeIdx+1:], "")

	inner := strings.Join(fm.lines, "")
	var probe yaml.Node
	if err := yaml.Unmarshal([]byte(inner), &probe); err != nil {
		fm.Degraded = true
		return fm, body
	}

	fm.scanOccurrences()
	return fm, body
}

// scanOccurrences locates tag-bearing fields at the top level of the
// block, recording their authored style and exact line extent.
func (f *Frontmatter) scanOccurrences() {
	for i := 0; i < len(f.lines); {
		m := tagKeyRe.FindStringSubmatch(f.lines[i])
		if m == nil {
			i++
			continue
		}

		occ := &TagOccurrence{
			Key:       m[1],
			lineStart: i,
		}
		rest := strings.TrimSpace(m[2])

		switch {
		case rest == "":
			occ.Style = StyleBlockList
			occ.itemPrefix = "  - "
			j := i + 1
			for j < len(f.lines) {
				im := listItemRe.FindStringSubmatch(f.lines[j])
				if im == nil {
					break
				}
				if j == i+1 {
					occ.itemPrefix = im[1]
				}
				if v := decodeScalar(im[2]); v != "" {
					occ.Values = append(occ.Values, v)
				}
				j++
			}
			occ.lineEnd = j
			i = j

		case strings.HasPrefix(rest, "["):
			occ.Style = StyleFlowList
			// Flow lists may span lines until the bracket closes.
			flow := rest
			j := i + 1
			for !strings.Contains(flow, "]") && j < len(f.lines) {
				flow += " " + strings.TrimSpace(trimLineBreak(f.lines[j]))
				j++
			}
			occ.Values = decodeFlowList(flow)
			occ.lineEnd = j
			i = j

		default:
			occ.Style = StyleScalar
			for _, part := range strings.Split(decodeScalar(rest), ",") {
				if v := strings.TrimSpace(part); v != "" {
					occ.Values = append(occ.Values, v)
				}
			}
			occ.lineEnd = i + 1
			i++
		}

		f.Occurrences = append(f.Occurrences, occ)
	}
}

// TagValues returns the raw tag values across all occurrences, in
// first-appearance order, without de-duplication.
func (f *Frontmatter) TagValues() []string {
	if f == nil {
		return nil
	}
	var out []string
	for _, occ := range f.Occurrences {
		out = append(out, occ.Values...)
	}
	return out
}

// HasDuplicateFields reports whether more than one tag-bearing field is
// present — the malformation FixDuplicateFields repairs.
func (f *Frontmatter) HasDuplicateFields() bool {
	return f != nil && len(f.Occurrences) > 1
}

// SetOccurrenceValues replaces the values of occurrence i. An empty
// slice removes the field entirely (the only permitted width change).
func (f *Frontmatter) SetOccurrenceValues(i int, values []string) {
	occ := f.Occurrences[i]
	occ.modified = true
	if len(values) == 0 {
		occ.removed = true
		occ.Values = nil
		return
	}
	occ.Values = values
}

// AddTagField appends a new tag field at the end of the block, flow
// style. Used by AddTags when the block exists but carries no tag field.
func (f *Frontmatter) AddTagField(values []string) {
	occ := &TagOccurrence{
		Key:       "tags",
		Style:     StyleFlowList,
		Values:    values,
		lineStart: len(f.lines),
		lineEnd:   len(f.lines),
		modified:  true,
	}
	f.Occurrences = append(f.Occurrences, occ)
}

// NewFrontmatter builds a minimal metadata block holding only a tag
// field, for documents that had none.
func NewFrontmatter(values []string, lineBreak string) *Frontmatter {
	if lineBreak == "" {
		lineBreak = "\n"
	}
	fm := &Frontmatter{
		openLine:      delimiter + lineBreak,
		closeMarker:   delimiter,
		ClosingSuffix: lineBreak,
		lineBreak:     lineBreak,
	}
	fm.AddTagField(values)
	return fm
}

// Serialize reconstructs the block byte-for-byte except for modified tag
// fields, then appends the body. Unmodified occurrences are re-emitted
// from their original raw lines.
func (f *Frontmatter) Serialize(body string) string {
	var b strings.Builder
	b.WriteString(f.openLine)

	byStart := make(map[int]*TagOccurrence, len(f.Occurrences))
	for _, occ := range f.Occurrences {
		if occ.lineStart < len(f.lines) {
			byStart[occ.lineStart] = occ
		}
	}

	for i := 0; i < len(f.lines); {
		occ, ok := byStart[i]
		if !ok {
			b.WriteString(f.lines[i])
			i++
			continue
		}
		b.WriteString(f.renderOccurrence(occ))
		i = occ.lineEnd
	}

	// Occurrences appended beyond the original lines (AddTagField).
	for _, occ := range f.Occurrences {
		if occ.lineStart >= len(f.lines) {
			b.WriteString(f.renderOccurrence(occ))
		}
	}

	b.WriteString(f.closeMarker)
	b.WriteString(f.ClosingSuffix)
	b.WriteString(body)
	return b.String()
}

func (f *Frontmatter) renderOccurrence(occ *TagOccurrence) string {
	if occ.removed {
		return ""
	}
	if !occ.modified {
		return strings.Join(f.lines[occ.lineStart:occ.lineEnd], "")
	}

	nl := f.lineBreak
	if occ.lineStart < len(f.lines) {
		nl = detectLineBreak(f.lines[occ.lineStart])
	}

	switch occ.Style {
	case StyleScalar:
		return fmt.Sprintf("%s: %s%s", occ.Key, joinScalars(occ.Values), nl)
	case StyleBlockList:
		var b strings.Builder
		b.WriteString(occ.Key + ":" + nl)
		for _, v := range occ.Values {
			b.WriteString(occ.itemPrefix + quoteIfNeeded(v) + nl)
		}
		return b.String()
	default:
		return fmt.Sprintf("%s: [%s]%s", occ.Key, joinScalars(occ.Values), nl)
	}
}

func joinScalars(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quoteIfNeeded(v)
	}
	return strings.Join(quoted, ", ")
}

// quoteIfNeeded wraps a value in double quotes when plain YAML would
// misparse it.
func quoteIfNeeded(v string) string {
	if v == "" {
		return `""`
	}
	if strings.ContainsAny(v, ":#{}[],&*?|>'\"%@`") || v != strings.TrimSpace(v) {
		return fmt.Sprintf("%q", v)
	}
	return v
}

// decodeScalar resolves a single authored YAML scalar (strips quotes).
func decodeScalar(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	var v interface{}
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

func decodeFlowList(s string) []string {
	var items []interface{}
	if err := yaml.Unmarshal([]byte(s), &items); err != nil {
		// Salvage the raw tokens between brackets.
		s = strings.TrimPrefix(strings.TrimSpace(s), "[")
		s = strings.TrimSuffix(s, "]")
		var out []string
		for _, part := range strings.Split(s, ",") {
			if v := strings.TrimSpace(part); v != "" {
				out = append(out, v)
			}
		}
		return out
	}
	var out []string
	for _, it := range items {
		v := strings.TrimSpace(fmt.Sprintf("%v", it))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func splitFirstLine(s string) (first, rest string) {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i+1], s[i+1:]
	}
	return s, ""
}

// splitLinesKeepEnds splits s into lines, each retaining its newline.
func splitLinesKeepEnds(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func trimLineBreak(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

func detectLineBreak(line string) string {
	if strings.HasSuffix(line, "\r\n") {
		return "\r\n"
	}
	return "\n"
}
