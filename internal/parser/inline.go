package parser

import (
	"regexp"

	"github.com/tagmend/tagmend/internal/tags"
)

// InlineTag is one marker-prefixed token found in body text.
type InlineTag struct {
	Raw   string // token without the leading '#'
	Start int    // byte offset of '#' within the body
	End   int    // byte offset one past the token
	Line  int    // 1-indexed line within the body
}

var (
	inlineTagRe = regexp.MustCompile(`#[\pL\pN_][\pL\pN_/-]*`)
	urlRe       = regexp.MustCompile(`(?:https?|ftp)://[^\s<>]+`)
	linkDestRe  = regexp.MustCompile(`\]\([^)]*\)`)
)

// ExtractInlineTags scans body text for #tags, excluding tokens inside
// fenced code blocks, inline code spans, URLs, and markdown link
// destinations. Byte ranges are relative to the body start.
//
// No noise filtering happens here; pure-numeral tokens and the like are
// returned and dropped later by the index when filtering is enabled.
func ExtractInlineTags(body string) []InlineTag {
	var out []InlineTag
	var fs fenceState

	offset := 0
	lineNo := 0
	for _, line := range splitLinesKeepEnds(body) {
		lineNo++
		lineStart := offset
		offset += len(line)

		if fs.update(line) || fs.inFence {
			continue
		}

		masked := maskInlineCode(line)
		masked = maskPattern(masked, urlRe)
		masked = maskPattern(masked, linkDestRe)

		for _, m := range inlineTagRe.FindAllStringIndex(masked, -1) {
			start, end := m[0], m[1]
			if !tagBoundaryOK(masked, start) {
				continue
			}
			// A trailing slash is sentence punctuation, not hierarchy.
			for end > start+1 && masked[end-1] == '/' {
				end--
			}
			out = append(out, InlineTag{
				Raw:   line[start+1 : end],
				Start: lineStart + start,
				End:   lineStart + end,
				Line:  lineNo,
			})
		}
	}

	return out
}

// tagBoundaryOK rejects '#' markers glued to preceding text: URL
// fragments ("page#section"), HTML entities ("&#39;"), and mid-word
// hashes.
func tagBoundaryOK(line string, start int) bool {
	if start == 0 {
		return true
	}
	switch prev := line[start-1]; prev {
	case ' ', '\t', '(', '[', '{', '"', '\'', '*', '_', '~', '>':
		return true
	default:
		return false
	}
}

// maskPattern blanks every match of re with spaces, preserving byte
// positions.
func maskPattern(line string, re *regexp.Regexp) string {
	idx := re.FindAllStringIndex(line, -1)
	if idx == nil {
		return line
	}
	b := []byte(line)
	for _, m := range idx {
		for i := m[0]; i < m[1]; i++ {
			b[i] = ' '
		}
	}
	return string(b)
}

// ReplaceInlineTags rewrites body tags per subs, keyed by canonical
// form. A nil value deletes the token; deletion cleans up a doubled
// space it would otherwise leave behind but never touches punctuation.
//
// Returns the new body and the set of canonical tags that had inline
// occurrences deleted.
func ReplaceInlineTags(body string, subs map[string]*string) (string, map[string]bool) {
	locs := ExtractInlineTags(body)
	if len(locs) == 0 {
		return body, nil
	}

	deleted := make(map[string]bool)
	var out []byte
	cursor := 0

	for _, loc := range locs {
		sub, ok := subs[tags.Normalize(loc.Raw)]
		if !ok {
			continue
		}

		out = append(out, body[cursor:loc.Start]...)

		if sub != nil {
			out = append(out, '#')
			out = append(out, *sub...)
			cursor = loc.End
			continue
		}

		// Deletion. Collapse the whitespace the token leaves behind.
		deleted[tags.Normalize(loc.Raw)] = true
		cursor = loc.End

		prevSpace := len(out) > 0 && out[len(out)-1] == ' '
		atLineStart := len(out) == 0 || out[len(out)-1] == '\n'
		nextSpace := cursor < len(body) && body[cursor] == ' '
		nextBreak := cursor >= len(body) || body[cursor] == '\n' || body[cursor] == '\r'

		switch {
		case prevSpace && nextSpace:
			cursor++ // "a #x b" -> "a b"
		case atLineStart && nextSpace:
			cursor++ // "#x rest" -> "rest"
		case prevSpace && nextBreak:
			out = out[:len(out)-1] // "a #x\n" -> "a\n"
		}
	}

	out = append(out, body[cursor:]...)
	return string(out), deleted
}
