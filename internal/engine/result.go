package engine

// WarningKind classifies non-fatal findings surfaced per file.
type WarningKind string

const (
	// WarnInlineDeletion marks a deletion that removed an inline
	// occurrence and therefore altered body prose.
	WarnInlineDeletion WarningKind = "inline_deletion"

	// WarnParseDegraded marks a metadata block that failed YAML
	// parsing; the file proceeded with an empty metadata tag set.
	WarnParseDegraded WarningKind = "parse_degraded"
)

// Warning is one non-fatal per-file finding.
type Warning struct {
	Kind WarningKind `json:"kind"`
	Path string      `json:"path"`
	Tag  string      `json:"tag,omitempty"`
}

// FileResult records the outcome for one candidate file.
//
// Changed is true if and only if the serialized output differs from the
// input byte-for-byte. A file is never reported changed when its bytes
// are identical.
type FileResult struct {
	Path     string
	Changed  bool
	Warnings []Warning
	Err      error

	// Before and After carry the content pair when Changed, for diff
	// rendering in preview output.
	Before []byte
	After  []byte
}

// RunResult records one operation's outcome across its candidate set.
type RunResult struct {
	Op         Operation
	Mode       Mode
	Skipped    bool // plan entry disabled; nothing was selected or run
	Candidates int
	Files      []FileResult
}

// Changed counts candidate files whose bytes changed.
func (r *RunResult) Changed() int {
	n := 0
	for _, f := range r.Files {
		if f.Changed && f.Err == nil {
			n++
		}
	}
	return n
}

// Unchanged counts candidates processed without error or change.
func (r *RunResult) Unchanged() int {
	n := 0
	for _, f := range r.Files {
		if !f.Changed && f.Err == nil {
			n++
		}
	}
	return n
}

// Errored counts candidates that failed.
func (r *RunResult) Errored() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Warnings flattens the per-file warnings in file order.
func (r *RunResult) Warnings() []Warning {
	var out []Warning
	for _, f := range r.Files {
		out = append(out, f.Warnings...)
	}
	return out
}
