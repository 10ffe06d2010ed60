package ui

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// RenderDiff renders a line-oriented diff between two contents for
// preview output. Unchanged runs are collapsed to keep previews short.
func RenderDiff(before, after string, color bool) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" && d.Type == diffmatchpatch.DiffEqual {
			continue
		}
		lines := strings.Split(text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			for _, l := range lines {
				b.WriteString(styleLine("- "+l, Removed, color))
			}
		case diffmatchpatch.DiffInsert:
			for _, l := range lines {
				b.WriteString(styleLine("+ "+l, Added, color))
			}
		case diffmatchpatch.DiffEqual:
			b.WriteString(collapseEqual(lines, color))
		}
	}
	return b.String()
}

func styleLine(l string, style interface{ Render(...string) string }, color bool) string {
	if color {
		return style.Render(l) + "\n"
	}
	return l + "\n"
}

// collapseEqual keeps at most two context lines on either side of a
// change, replacing the middle with an ellipsis marker.
func collapseEqual(lines []string, color bool) string {
	const context = 2

	var b strings.Builder
	emit := func(l string) {
		if color {
			b.WriteString(Muted.Render("  "+l) + "\n")
		} else {
			b.WriteString("  " + l + "\n")
		}
	}

	if len(lines) <= 2*context+1 {
		for _, l := range lines {
			emit(l)
		}
		return b.String()
	}

	for _, l := range lines[:context] {
		emit(l)
	}
	emit("…")
	for _, l := range lines[len(lines)-context:] {
		emit(l)
	}
	return b.String()
}
