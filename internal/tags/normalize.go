// Package tags defines the canonical tag form and the validity and
// noise rules shared by the parser, index, and engine.
package tags

import (
	"strings"
	"unicode"
)

// Normalize returns the canonical form of a raw tag: leading marker and
// surrounding whitespace stripped, each hierarchy segment lowercased.
// Matching throughout the tool happens on canonical forms; authored
// forms are preserved in files until an operation rewrites them.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "#")
	if s == "" {
		return ""
	}

	segments := strings.Split(s, "/")
	for i, seg := range segments {
		segments[i] = strings.ToLower(strings.TrimSpace(seg))
	}
	return strings.Join(segments, "/")
}

// Segments splits a canonical tag into its hierarchy segments.
func Segments(canonical string) []string {
	if canonical == "" {
		return nil
	}
	return strings.Split(canonical, "/")
}

// IsNoise reports whether a token is a non-semantic artifact rather
// than a deliberate tag: pure numerals (issue refs, dates) and hex
// entity fragments like "x27" that leak out of escaped apostrophes.
func IsNoise(raw string) bool {
	s := Normalize(raw)
	if s == "" {
		return true
	}

	allDigits := true
	for _, r := range s {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return true
	}

	return isHexFragment(s)
}

// isHexFragment matches tokens of the form x<hex digits>, the residue
// of numeric character references in scraped text.
func isHexFragment(s string) bool {
	if len(s) < 2 || s[0] != 'x' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return true
}

// IsValidTag reports whether a user-supplied tag is well formed: at
// least one character, letters, digits, hyphen, underscore, and slash
// only, with no empty hierarchy segments.
func IsValidTag(raw string) bool {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if s == "" {
		return false
	}

	for _, seg := range strings.Split(s, "/") {
		if seg == "" {
			return false
		}
		for _, r := range seg {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
				return false
			}
		}
	}
	return true
}
