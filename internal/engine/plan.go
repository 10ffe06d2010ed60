package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tagmend/tagmend/internal/tagindex"
)

// ErrPlanInvalid marks a malformed operation plan. Plan errors are
// fatal before any file is touched: a plan that cannot be fully parsed
// cannot be safely partially trusted.
var ErrPlanInvalid = errors.New("invalid operation plan")

// Plan is an ordered list of operations, typically authored by hand or
// produced by a suggestion generator. The engine treats both the same.
type Plan struct {
	Operations []PlanEntry `yaml:"operations"`
}

// PlanEntry is one plan line. Reason and Metadata are advisory and
// ignored by engine semantics.
type PlanEntry struct {
	Type     string         `yaml:"type"`
	Source   stringList     `yaml:"source,omitempty"`
	Target   string         `yaml:"target,omitempty"`
	File     string         `yaml:"file,omitempty"`
	Enabled  *bool          `yaml:"enabled,omitempty"`
	Reason   string         `yaml:"reason,omitempty"`
	Metadata map[string]any `yaml:"metadata,omitempty"`
}

// IsEnabled reports whether the entry should run; entries default on.
func (e PlanEntry) IsEnabled() bool {
	return e.Enabled == nil || *e.Enabled
}

// Operation converts the entry into an engine operation.
func (e PlanEntry) Operation() (Operation, error) {
	var op Operation
	switch e.Type {
	case "rename":
		op = Operation{Kind: KindRename, Sources: e.Source, Target: e.Target}
	case "merge":
		op = Operation{Kind: KindMerge, Sources: e.Source, Target: e.Target}
	case "delete":
		op = Operation{Kind: KindDelete, Sources: e.Source}
	case "add_tags":
		op = Operation{Kind: KindAddTags, File: e.File, Sources: e.Source}
	case "fix_duplicates":
		op = Operation{Kind: KindFixDuplicates}
	default:
		return op, fmt.Errorf("%w: unknown operation type %q", ErrPlanInvalid, e.Type)
	}

	if err := op.Validate(); err != nil {
		return op, fmt.Errorf("%w: %v", ErrPlanInvalid, err)
	}
	return op, nil
}

// LoadPlan reads and validates an operation plan file. Any syntax or
// shape error aborts with ErrPlanInvalid before any mutation begins.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	return ParsePlan(data)
}

// ParsePlan parses plan bytes with strict field checking.
func ParsePlan(data []byte) (*Plan, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var plan Plan
	if err := dec.Decode(&plan); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty plan", ErrPlanInvalid)
		}
		return nil, fmt.Errorf("%w: %v", ErrPlanInvalid, err)
	}
	if len(plan.Operations) == 0 {
		return nil, fmt.Errorf("%w: no operations", ErrPlanInvalid)
	}

	// Validate every entry up front, including disabled ones.
	for i, e := range plan.Operations {
		if _, err := e.Operation(); err != nil {
			return nil, fmt.Errorf("operation %d: %w", i+1, err)
		}
	}

	return &plan, nil
}

// RunPlan executes plan entries strictly in file order against a single
// index snapshot. Disabled entries are skipped but still appear in the
// results; an operation referencing an unindexed tag simply selects
// zero candidates.
func (e *Engine) RunPlan(plan *Plan, idx *tagindex.Index) ([]*RunResult, error) {
	var results []*RunResult
	for i, entry := range plan.Operations {
		op, err := entry.Operation()
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i+1, err)
		}

		if !entry.IsEnabled() {
			results = append(results, &RunResult{Op: op, Mode: e.mode, Skipped: true})
			continue
		}

		res, err := e.Run(op, idx)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i+1, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// SuggestedRename builds a plan entry proposing a rename, for plan
// generators such as the tag suggestion command.
func SuggestedRename(from, to, reason string) PlanEntry {
	return PlanEntry{Type: "rename", Source: stringList{from}, Target: to, Reason: reason}
}

// stringList accepts either a YAML scalar or a sequence of scalars.
type stringList []string

func (s *stringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v string
		if err := node.Decode(&v); err != nil {
			return err
		}
		*s = []string{v}
		return nil
	case yaml.SequenceNode:
		var v []string
		if err := node.Decode(&v); err != nil {
			return err
		}
		*s = v
		return nil
	default:
		return fmt.Errorf("source must be a tag or a list of tags")
	}
}
