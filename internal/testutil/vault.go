// Package testutil provides reusable helpers for tagmend tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestVault is a temporary vault built from a file map.
type TestVault struct {
	Path  string
	t     *testing.T
	files map[string]string
}

// NewTestVault creates a vault builder. Call Build to materialize it.
func NewTestVault(t *testing.T) *TestVault {
	t.Helper()
	return &TestVault{t: t, files: make(map[string]string)}
}

// WithFile adds a file, path relative to the vault root.
func (v *TestVault) WithFile(path, content string) *TestVault {
	v.files[path] = content
	return v
}

// Build creates the vault directory and all configured files.
func (v *TestVault) Build() *TestVault {
	v.t.Helper()
	v.Path = v.t.TempDir()
	for path, content := range v.files {
		v.WriteFile(path, content)
	}
	return v
}

// WriteFile writes a file into the vault, creating directories as
// needed.
func (v *TestVault) WriteFile(relPath, content string) {
	v.t.Helper()
	fullPath := filepath.Join(v.Path, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		v.t.Fatalf("failed to create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		v.t.Fatalf("failed to write %s: %v", relPath, err)
	}
}

// ReadFile returns a vault file's content.
func (v *TestVault) ReadFile(relPath string) string {
	v.t.Helper()
	data, err := os.ReadFile(filepath.Join(v.Path, relPath))
	if err != nil {
		v.t.Fatalf("failed to read %s: %v", relPath, err)
	}
	return string(data)
}
