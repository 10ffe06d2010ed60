package engine

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tagmend/tagmend/internal/atomicfile"
	"github.com/tagmend/tagmend/internal/parser"
	"github.com/tagmend/tagmend/internal/paths"
	"github.com/tagmend/tagmend/internal/tagindex"
	"github.com/tagmend/tagmend/internal/tags"
)

// Mode gates disk writes. The default everywhere is Preview: all
// transformation logic runs, nothing is committed.
type Mode string

const (
	Preview Mode = "preview"
	Execute Mode = "execute"
)

// Engine applies operations to a vault.
type Engine struct {
	root string
	mode Mode
}

// New creates an engine for the vault at root.
func New(root string, mode Mode) *Engine {
	return &Engine{root: root, mode: mode}
}

// Run applies one operation, consulting the index snapshot only to
// narrow candidates. Files not containing any referenced tag are never
// opened for writing and never reported as changed.
//
// Per-file parse and I/O errors are captured in the result and the run
// continues; one malformed file never aborts a batch.
func (e *Engine) Run(op Operation, idx *tagindex.Index) (*RunResult, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	candidates := e.selectCandidates(op, idx)
	result := &RunResult{
		Op:         op,
		Mode:       e.mode,
		Candidates: len(candidates),
	}

	for _, rel := range candidates {
		result.Files = append(result.Files, e.applyToFile(op, rel))
	}

	return result, nil
}

// selectCandidates derives the minimal candidate set from the snapshot:
// the union of files holding any tag the operation references.
func (e *Engine) selectCandidates(op Operation, idx *tagindex.Index) []string {
	switch op.Kind {
	case KindAddTags:
		return []string{op.File}
	case KindFixDuplicates:
		return idx.DuplicateFieldFiles()
	default:
		seen := make(map[string]bool)
		var out []string
		for _, src := range op.Sources {
			for _, f := range idx.FilesFor(tags.Normalize(src)) {
				if !seen[f] {
					seen[f] = true
					out = append(out, f)
				}
			}
		}
		sort.Strings(out)
		return out
	}
}

// applyToFile re-parses one candidate fresh from disk (never from the
// snapshot), applies the rewrite, and commits only when the bytes
// actually changed and the engine is in execute mode.
func (e *Engine) applyToFile(op Operation, rel string) FileResult {
	res := FileResult{Path: rel}

	full := filepath.Join(e.root, filepath.FromSlash(rel))
	// File references come from user input and plan files as well as the
	// index; a ref resolving outside the vault must never be touched.
	if err := paths.WithinVault(e.root, full); err != nil {
		res.Err = fmt.Errorf("%s: %w", rel, err)
		return res
	}
	original, err := os.ReadFile(full)
	if err != nil {
		res.Err = fmt.Errorf("read %s: %w", rel, err)
		return res
	}

	doc := parser.ParseDocument(rel, original)
	if doc.Degraded() {
		res.Warnings = append(res.Warnings, Warning{Kind: WarnParseDegraded, Path: rel})
	}

	newContent, warnings := applyOperation(op, doc)
	res.Warnings = append(res.Warnings, warnings...)

	// Changed comes from an actual byte comparison, never from a
	// success flag on the transform step.
	res.Changed = !bytes.Equal(original, newContent)
	if !res.Changed {
		return res
	}

	res.Before = original
	res.After = newContent

	if e.mode == Execute {
		if err := atomicfile.WriteFile(full, newContent, 0); err != nil {
			res.Err = fmt.Errorf("write %s: %w", rel, err)
			res.Changed = false
			res.Before, res.After = nil, nil
		}
	}

	return res
}
