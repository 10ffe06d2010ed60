// Package paths validates and normalizes file paths relative to a
// vault root.
package paths

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrOutsideVault indicates a path resolves outside the vault root.
var ErrOutsideVault = errors.New("path is outside the vault")

// WithinVault verifies that path (absolute) resolves inside root.
// Symlinked escapes are caught by resolving both sides.
func WithinVault(root, path string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve vault root: %w", err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return ErrOutsideVault
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ErrOutsideVault
	}
	return nil
}

// Normalize converts a user-supplied file reference to the slash-form
// relative path used as a file identifier, appending ".md" when absent.
func Normalize(ref string) string {
	ref = filepath.ToSlash(strings.TrimSpace(ref))
	ref = strings.TrimPrefix(ref, "./")
	if ref != "" && !strings.HasSuffix(ref, ".md") {
		ref += ".md"
	}
	return ref
}
