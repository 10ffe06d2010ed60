package parser

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is a parsed markdown heading, used to give inline tag
// occurrences a section context in reports.
type Heading struct {
	Level int
	Text  string
	Line  int // 1-indexed within the body
}

// ExtractHeadings extracts headings from body text using goldmark.
func ExtractHeadings(body string) []Heading {
	var headings []Heading

	md := goldmark.New()
	reader := text.NewReader([]byte(body))
	doc := md.Parser().Parse(reader)

	lineStarts := computeLineStarts(body)

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		var textBuilder strings.Builder
		for child := heading.FirstChild(); child != nil; child = child.NextSibling() {
			if textNode, ok := child.(*ast.Text); ok {
				textBuilder.Write(textNode.Segment.Value([]byte(body)))
			}
		}

		headingText := strings.TrimSpace(textBuilder.String())
		if headingText == "" {
			return ast.WalkContinue, nil
		}

		line := 1
		if heading.Lines().Len() > 0 {
			line = offsetToLine(lineStarts, heading.Lines().At(0).Start) + 1
		}

		headings = append(headings, Heading{
			Level: heading.Level,
			Text:  headingText,
			Line:  line,
		})
		return ast.WalkContinue, nil
	})

	return headings
}

// HeadingForLine returns the nearest heading at or above the given body
// line, or nil when the line precedes all headings.
func HeadingForLine(headings []Heading, line int) *Heading {
	var best *Heading
	for i := range headings {
		if headings[i].Line <= line {
			best = &headings[i]
		}
	}
	return best
}

func computeLineStarts(content string) []int {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' && i+1 < len(content) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func offsetToLine(lineStarts []int, offset int) int {
	for i := len(lineStarts) - 1; i >= 0; i-- {
		if lineStarts[i] <= offset {
			return i
		}
	}
	return 0
}
