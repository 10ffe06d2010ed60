// Package oplog records what the engine did: an append-only,
// per-invocation log consumed by reporting, mirrored to a JSONL file
// and a sqlite history database under the vault's state directory.
package oplog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tagmend/tagmend/internal/engine"
	"github.com/tagmend/tagmend/internal/vault"
)

// Record is the audit entry for one operation run.
type Record struct {
	Timestamp  time.Time      `json:"ts"`
	Op         string         `json:"op"`
	Type       string         `json:"type"`
	Sources    []string       `json:"sources,omitempty"`
	Target     string         `json:"target,omitempty"`
	File       string         `json:"file,omitempty"`
	Mode       string         `json:"mode"`
	Skipped    bool           `json:"skipped,omitempty"`
	Candidates int            `json:"candidates"`
	Changed    int            `json:"changed"`
	Unchanged  int            `json:"unchanged"`
	Errored    int            `json:"errored"`
	Warnings   []WarningEntry `json:"warnings,omitempty"`
	Errors     []FileError    `json:"errors,omitempty"`
}

// WarningEntry is one warning in a record: kind, file, tag.
type WarningEntry struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
	Tag  string `json:"tag,omitempty"`
}

// FileError is one per-file failure in a record.
type FileError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// FromRunResult converts an engine result into an audit record.
func FromRunResult(r *engine.RunResult) Record {
	rec := Record{
		Timestamp:  time.Now().UTC(),
		Op:         r.Op.String(),
		Type:       string(r.Op.Kind),
		Sources:    r.Op.Sources,
		Target:     r.Op.Target,
		File:       r.Op.File,
		Mode:       string(r.Mode),
		Skipped:    r.Skipped,
		Candidates: r.Candidates,
		Changed:    r.Changed(),
		Unchanged:  r.Unchanged(),
		Errored:    r.Errored(),
	}
	for _, w := range r.Warnings() {
		rec.Warnings = append(rec.Warnings, WarningEntry{
			Kind: string(w.Kind),
			Path: w.Path,
			Tag:  w.Tag,
		})
	}
	for _, f := range r.Files {
		if f.Err != nil {
			rec.Errors = append(rec.Errors, FileError{Path: f.Path, Message: f.Err.Error()})
		}
	}
	return rec
}

// Log accumulates records for one invocation. Appends are safe for
// concurrent use so a worker-pool engine can share one log.
type Log struct {
	mu      sync.Mutex
	records []Record
}

// Append adds a record.
func (l *Log) Append(rec Record) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, rec)
}

// Records returns the accumulated records in append order.
func (l *Log) Records() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Writer appends records to the vault's JSONL operation log.
type Writer struct {
	path string
}

// NewWriter creates a writer for the vault at root.
func NewWriter(root string) *Writer {
	return &Writer{path: filepath.Join(root, vault.StateDir, "oplog.jsonl")}
}

// Append writes one record as a JSON line.
func (w *Writer) Append(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal oplog record: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open oplog: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write oplog record: %w", err)
	}
	return nil
}
