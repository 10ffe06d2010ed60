package engine

import (
	"strings"

	"github.com/tagmend/tagmend/internal/parser"
	"github.com/tagmend/tagmend/internal/tags"
)

// applyOperation computes a document's new content under op. It edits
// only the tag field and matching inline tokens; every other byte is
// reproduced verbatim.
func applyOperation(op Operation, doc *parser.Document) ([]byte, []Warning) {
	switch op.Kind {
	case KindRename, KindMerge:
		return applyRewrite(op, doc), nil
	case KindDelete:
		return applyDelete(op, doc)
	case KindAddTags:
		return applyAdd(op, doc), nil
	case KindFixDuplicates:
		return applyFixDuplicates(doc), nil
	default:
		return doc.Content(), nil
	}
}

// applyRewrite handles rename and merge: every location tagged with a
// source becomes the target, preserving authored style. When the target
// already exists alongside a source in the same file, occurrences
// collapse into the single existing target without duplication.
func applyRewrite(op Operation, doc *parser.Document) []byte {
	srcSet := op.sourceSet()
	target := op.target()
	targetCanonical := tags.Normalize(target)

	if fm := doc.Frontmatter; fm != nil {
		for i, occ := range fm.Occurrences {
			var newVals []string
			seenTarget := false
			changed := false

			for _, v := range occ.Values {
				mapped := v
				if srcSet[tags.Normalize(v)] {
					mapped = target
				}
				if tags.Normalize(mapped) == targetCanonical {
					if seenTarget {
						changed = true
						continue
					}
					seenTarget = true
				}
				if mapped != v {
					changed = true
				}
				newVals = append(newVals, mapped)
			}

			if changed {
				fm.SetOccurrenceValues(i, newVals)
			}
		}
	}

	subs := make(map[string]*string, len(op.Sources))
	for _, src := range op.Sources {
		subs[tags.Normalize(src)] = &target
	}
	doc.Body, _ = parser.ReplaceInlineTags(doc.Body, subs)

	return doc.Content()
}

// applyDelete removes every location tagged with any of the given tags.
// Removing the last tag from a field removes the field. Inline removal
// alters body prose, so it carries a warning per deleted tag.
func applyDelete(op Operation, doc *parser.Document) ([]byte, []Warning) {
	srcSet := op.sourceSet()

	if fm := doc.Frontmatter; fm != nil {
		for i, occ := range fm.Occurrences {
			var remaining []string
			removed := false
			for _, v := range occ.Values {
				if srcSet[tags.Normalize(v)] {
					removed = true
					continue
				}
				remaining = append(remaining, v)
			}
			if removed {
				fm.SetOccurrenceValues(i, remaining)
			}
		}
	}

	subs := make(map[string]*string, len(op.Sources))
	for _, src := range op.Sources {
		subs[tags.Normalize(src)] = nil
	}

	newBody, deleted := parser.ReplaceInlineTags(doc.Body, subs)
	doc.Body = newBody

	var warnings []Warning
	for _, src := range op.Sources {
		if deleted[tags.Normalize(src)] {
			warnings = append(warnings, Warning{
				Kind: WarnInlineDeletion,
				Path: doc.Path,
				Tag:  tags.Normalize(src),
			})
		}
	}

	return doc.Content(), warnings
}

// applyAdd inserts tags into the file's metadata field when not already
// present, creating the field or a minimal block as needed. Inline text
// is never touched.
func applyAdd(op Operation, doc *parser.Document) []byte {
	existing := make(map[string]bool)
	for _, v := range doc.MetadataTags() {
		existing[tags.Normalize(v)] = true
	}

	var toAdd []string
	for _, t := range op.Sources {
		t = strings.TrimPrefix(t, "#")
		if c := tags.Normalize(t); c != "" && !existing[c] {
			existing[c] = true
			toAdd = append(toAdd, t)
		}
	}
	if len(toAdd) == 0 {
		return doc.Content()
	}

	switch {
	case doc.Frontmatter == nil:
		doc.Frontmatter = parser.NewFrontmatter(toAdd, doc.LineBreak())
	case len(doc.Frontmatter.Occurrences) == 0:
		doc.Frontmatter.AddTagField(toAdd)
	default:
		occ := doc.Frontmatter.Occurrences[0]
		doc.Frontmatter.SetOccurrenceValues(0, append(append([]string{}, occ.Values...), toAdd...))
	}

	return doc.Content()
}

// applyFixDuplicates merges duplicated tag fields into the first one:
// union of values, de-duplicated by canonical form, order preserved by
// first appearance. A no-op when at most one field is present.
func applyFixDuplicates(doc *parser.Document) []byte {
	fm := doc.Frontmatter
	if !fm.HasDuplicateFields() {
		return doc.Content()
	}

	seen := make(map[string]bool)
	var union []string
	for _, occ := range fm.Occurrences {
		for _, v := range occ.Values {
			c := tags.Normalize(v)
			if c == "" || seen[c] {
				continue
			}
			seen[c] = true
			union = append(union, v)
		}
	}

	fm.SetOccurrenceValues(0, union)
	for i := 1; i < len(fm.Occurrences); i++ {
		fm.SetOccurrenceValues(i, nil)
	}

	return doc.Content()
}
