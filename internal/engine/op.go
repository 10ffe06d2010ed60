// Package engine applies tag operations to a vault: it selects
// candidate files from the index snapshot, re-parses each one fresh,
// rewrites only the relevant bytes, and writes results back under a
// preview/execute gate.
package engine

import (
	"fmt"
	"strings"

	"github.com/tagmend/tagmend/internal/tags"
)

// Kind identifies an operation variant.
type Kind string

const (
	KindRename        Kind = "rename"
	KindMerge         Kind = "merge"
	KindDelete        Kind = "delete"
	KindAddTags       Kind = "add_tags"
	KindFixDuplicates Kind = "fix_duplicates"
)

// Operation is one requested change. Operations are pure with respect
// to the document they are applied to: the same input bytes always
// produce the same output bytes.
type Operation struct {
	Kind    Kind
	Sources []string // source tags, raw as given
	Target  string   // rename/merge target
	File    string   // add_tags target file (vault-relative)
}

// Rename builds a rename operation.
func Rename(old, new string) Operation {
	return Operation{Kind: KindRename, Sources: []string{old}, Target: new}
}

// Merge builds a merge of sources into target.
func Merge(sources []string, target string) Operation {
	return Operation{Kind: KindMerge, Sources: sources, Target: target}
}

// Delete builds a delete of the given tags.
func Delete(tagNames ...string) Operation {
	return Operation{Kind: KindDelete, Sources: tagNames}
}

// AddTags builds an add of tags to one file's metadata.
func AddTags(file string, tagNames []string) Operation {
	return Operation{Kind: KindAddTags, File: file, Sources: tagNames}
}

// FixDuplicates builds a duplicate-field repair across the vault.
func FixDuplicates() Operation {
	return Operation{Kind: KindFixDuplicates}
}

// Validate checks the operation's shape before any file is touched.
func (op Operation) Validate() error {
	switch op.Kind {
	case KindRename:
		if len(op.Sources) != 1 {
			return fmt.Errorf("rename requires exactly one source tag")
		}
		if op.Target == "" {
			return fmt.Errorf("rename requires a target tag")
		}
	case KindMerge:
		if len(op.Sources) == 0 {
			return fmt.Errorf("merge requires at least one source tag")
		}
		if op.Target == "" {
			return fmt.Errorf("merge requires a target tag")
		}
	case KindDelete:
		if len(op.Sources) == 0 {
			return fmt.Errorf("delete requires at least one tag")
		}
	case KindAddTags:
		if op.File == "" {
			return fmt.Errorf("add_tags requires a file")
		}
		if len(op.Sources) == 0 {
			return fmt.Errorf("add_tags requires at least one tag")
		}
	case KindFixDuplicates:
		// No inputs.
	default:
		return fmt.Errorf("unknown operation type %q", op.Kind)
	}

	for _, s := range op.Sources {
		if !tags.IsValidTag(s) {
			return fmt.Errorf("invalid tag %q", s)
		}
	}
	if op.Target != "" && !tags.IsValidTag(op.Target) {
		return fmt.Errorf("invalid tag %q", op.Target)
	}
	return nil
}

// sourceSet returns the canonical forms of the operation's source tags.
func (op Operation) sourceSet() map[string]bool {
	set := make(map[string]bool, len(op.Sources))
	for _, s := range op.Sources {
		set[tags.Normalize(s)] = true
	}
	return set
}

// target returns the target tag with any leading marker stripped.
func (op Operation) target() string {
	return strings.TrimPrefix(op.Target, "#")
}

// String renders the operation for logs and summaries.
func (op Operation) String() string {
	switch op.Kind {
	case KindRename:
		return fmt.Sprintf("rename %s -> %s", op.Sources[0], op.Target)
	case KindMerge:
		return fmt.Sprintf("merge %s -> %s", strings.Join(op.Sources, ", "), op.Target)
	case KindDelete:
		return fmt.Sprintf("delete %s", strings.Join(op.Sources, ", "))
	case KindAddTags:
		return fmt.Sprintf("add %s to %s", strings.Join(op.Sources, ", "), op.File)
	case KindFixDuplicates:
		return "fix duplicate tag fields"
	default:
		return string(op.Kind)
	}
}
