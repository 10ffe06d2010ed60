package parser

import "strings"

// fenceState tracks whether the scanner is inside a fenced code block.
// Inline tags inside fences are never extracted or rewritten.
type fenceState struct {
	inFence  bool
	fenceCh  byte
	fenceLen int
}

// normalizeFenceLine strips leading whitespace and blockquote prefixes
// so fences inside quoted blocks are still detected.
func normalizeFenceLine(line string) string {
	s := strings.TrimLeft(line, " \t")
	for strings.HasPrefix(s, ">") {
		s = strings.TrimPrefix(s, ">")
		s = strings.TrimLeft(s, " \t")
	}
	return s
}

// parseFenceMarker checks whether a normalized line opens or closes a
// code fence (three or more backticks or tildes).
func parseFenceMarker(line string) (ch byte, n int, ok bool) {
	if len(line) < 3 {
		return 0, 0, false
	}
	ch = line[0]
	if ch != '`' && ch != '~' {
		return 0, 0, false
	}
	i := 0
	for i < len(line) && line[i] == ch {
		i++
	}
	if i < 3 {
		return 0, 0, false
	}
	return ch, i, true
}

// update advances the fence state for one line. Returns true when the
// line itself is a fence marker.
func (fs *fenceState) update(line string) bool {
	ch, n, ok := parseFenceMarker(normalizeFenceLine(line))
	if !ok {
		return false
	}

	if !fs.inFence {
		fs.inFence = true
		fs.fenceCh = ch
		fs.fenceLen = n
		return true
	}

	// A closing marker must match the opening character and be at least
	// as long.
	if fs.fenceCh == ch && n >= fs.fenceLen {
		fs.inFence = false
		fs.fenceCh = 0
		fs.fenceLen = 0
	}
	return true
}

// maskInlineCode blanks inline code spans with spaces, preserving byte
// positions so offsets computed on the masked line map back to the
// original. Handles multi-backtick spans (``code with `tick` inside``).
func maskInlineCode(line string) string {
	result := []byte(line)
	i := 0

	for i < len(result) {
		if result[i] != '`' {
			i++
			continue
		}

		start := i
		openLen := 0
		for i < len(result) && result[i] == '`' {
			openLen++
			i++
		}

		for j := i; j < len(result); j++ {
			if result[j] != '`' {
				continue
			}
			closeLen := 0
			k := j
			for k < len(result) && result[k] == '`' {
				closeLen++
				k++
			}
			if closeLen == openLen {
				for m := start; m < k; m++ {
					result[m] = ' '
				}
				i = k
				break
			}
			j = k - 1
		}
	}

	return string(result)
}
