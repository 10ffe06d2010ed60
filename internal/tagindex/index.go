// Package tagindex aggregates parser output across a document
// collection into tag→files and file→tags mappings.
//
// An Index is a per-invocation snapshot: built in one pass, immutable
// once built, never persisted. Operations use it to narrow candidates
// but always re-parse the live file before editing, because the
// snapshot may be stale relative to an earlier operation in the same
// batch.
package tagindex

import (
	"sort"

	"github.com/tagmend/tagmend/internal/parser"
	"github.com/tagmend/tagmend/internal/tags"
)

// TagTypes selects which tag sources feed the index.
type TagTypes string

const (
	TypesMetadata TagTypes = "metadata"
	TypesInline   TagTypes = "inline"
	TypesBoth     TagTypes = "both"
)

// Valid reports whether t names a known selection.
func (t TagTypes) Valid() bool {
	switch t {
	case TypesMetadata, TypesInline, TypesBoth:
		return true
	}
	return false
}

// Options configures an index build. Passed explicitly so two
// differently-configured passes can run in one process.
type Options struct {
	Types TagTypes

	// FilterNoise drops non-semantic tokens (pure numerals, entity
	// fragments) from the index. Default on. Filtering affects what is
	// reported and targetable, never what is physically in a file.
	FilterNoise bool
}

// DefaultOptions matches the CLI defaults: both tag types, noise
// filtering on.
func DefaultOptions() Options {
	return Options{Types: TypesBoth, FilterNoise: true}
}

// Index maps canonical tags to files and back.
type Index struct {
	tagToFiles map[string]map[string]bool
	fileToTags map[string]map[string]bool

	// rawForms remembers the first-seen authored form per canonical
	// tag, for display.
	rawForms map[string]string

	duplicateFieldFiles []string
	degradedFiles       []string
}

// Build constructs an index from parsed documents in a single pass.
// Deterministic: identical documents yield an identical index.
func Build(docs []*parser.Document, opts Options) *Index {
	idx := &Index{
		tagToFiles: make(map[string]map[string]bool),
		fileToTags: make(map[string]map[string]bool),
		rawForms:   make(map[string]string),
	}

	for _, doc := range docs {
		if doc.Degraded() {
			idx.degradedFiles = append(idx.degradedFiles, doc.Path)
		}
		if doc.Frontmatter.HasDuplicateFields() {
			idx.duplicateFieldFiles = append(idx.duplicateFieldFiles, doc.Path)
		}

		if opts.Types == TypesMetadata || opts.Types == TypesBoth {
			for _, raw := range doc.MetadataTags() {
				idx.record(doc.Path, raw, opts)
			}
		}
		if opts.Types == TypesInline || opts.Types == TypesBoth {
			for _, loc := range doc.InlineTags() {
				idx.record(doc.Path, loc.Raw, opts)
			}
		}
	}

	return idx
}

func (idx *Index) record(path, raw string, opts Options) {
	if opts.FilterNoise && tags.IsNoise(raw) {
		return
	}
	canonical := tags.Normalize(raw)
	if canonical == "" {
		return
	}

	if idx.tagToFiles[canonical] == nil {
		idx.tagToFiles[canonical] = make(map[string]bool)
	}
	idx.tagToFiles[canonical][path] = true

	if idx.fileToTags[path] == nil {
		idx.fileToTags[path] = make(map[string]bool)
	}
	idx.fileToTags[path][canonical] = true

	if _, ok := idx.rawForms[canonical]; !ok {
		idx.rawForms[canonical] = raw
	}
}

// FilesFor returns the sorted files containing a tag (canonical form).
// A tag absent from the index selects zero candidates; that is not an
// error.
func (idx *Index) FilesFor(canonical string) []string {
	return sortedKeys(idx.tagToFiles[canonical])
}

// TagsFor returns the sorted canonical tags of one file.
func (idx *Index) TagsFor(path string) []string {
	return sortedKeys(idx.fileToTags[path])
}

// Tags returns all indexed canonical tags, sorted.
func (idx *Index) Tags() []string {
	return sortedKeys2(idx.tagToFiles)
}

// Count returns the number of files containing a tag.
func (idx *Index) Count(canonical string) int {
	return len(idx.tagToFiles[canonical])
}

// RawForm returns the first-seen authored form of a canonical tag,
// falling back to the canonical form itself.
func (idx *Index) RawForm(canonical string) string {
	if raw, ok := idx.rawForms[canonical]; ok {
		return raw
	}
	return canonical
}

// DuplicateFieldFiles returns files whose metadata block carries more
// than one tag field — the candidates for FixDuplicateFields.
func (idx *Index) DuplicateFieldFiles() []string {
	out := make([]string, len(idx.duplicateFieldFiles))
	copy(out, idx.duplicateFieldFiles)
	sort.Strings(out)
	return out
}

// DegradedFiles returns files whose metadata block failed YAML parsing.
func (idx *Index) DegradedFiles() []string {
	out := make([]string, len(idx.degradedFiles))
	copy(out, idx.degradedFiles)
	sort.Strings(out)
	return out
}

func sortedKeys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedKeys2(m map[string]map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
