// Package vault discovers markdown documents under a vault root.
package vault

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/tagmend/tagmend/internal/parser"
	"github.com/tagmend/tagmend/internal/paths"
)

// StateDir is the per-vault directory holding tagmend state (operation
// log, history database). Never scanned.
const StateDir = ".tagmend"

// File is one discovered document: raw bytes plus identifiers, or a
// per-file error. A read error on one file never aborts the walk.
type File struct {
	Path    string // absolute
	RelPath string // slash-form, relative to the vault root
	Content []byte
	Err     error
}

// Walk visits every markdown file under root in lexical (deterministic)
// order, skipping the state directory, dot-directories, and anything
// matching an exclusion pattern.
func Walk(root string, exclude []string, handler func(File) error) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			rel, _ := filepath.Rel(root, p)
			return handler(File{Path: p, RelPath: filepath.ToSlash(rel), Err: err})
		}

		if d.IsDir() {
			name := d.Name()
			if p != root && (name == StateDir || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			rel, _ := filepath.Rel(root, p)
			if p != root && excluded(filepath.ToSlash(rel), exclude) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(p, ".md") {
			return nil
		}

		rel, _ := filepath.Rel(root, p)
		relSlash := filepath.ToSlash(rel)
		if excluded(relSlash, exclude) {
			return nil
		}

		if err := paths.WithinVault(root, p); err != nil {
			if errors.Is(err, paths.ErrOutsideVault) {
				return nil
			}
			return handler(File{Path: p, RelPath: relSlash, Err: err})
		}

		content, err := os.ReadFile(p)
		if err != nil {
			return handler(File{Path: p, RelPath: relSlash, Err: err})
		}

		return handler(File{Path: p, RelPath: relSlash, Content: content})
	})
}

// CollectDocuments walks the vault and parses every readable document.
// Unreadable files come back separately; they never abort the scan.
func CollectDocuments(root string, exclude []string) ([]*parser.Document, []File, error) {
	var docs []*parser.Document
	var failed []File

	err := Walk(root, exclude, func(f File) error {
		if f.Err != nil {
			failed = append(failed, f)
			return nil
		}
		docs = append(docs, parser.ParseDocument(f.RelPath, f.Content))
		return nil
	})

	return docs, failed, err
}

// excluded matches a slash-relative path against exclusion patterns.
// A pattern ending in "/**" excludes the whole subtree; otherwise
// path.Match applies to the relative path and to the base name.
func excluded(rel string, patterns []string) bool {
	for _, pat := range patterns {
		pat = strings.TrimSpace(pat)
		if pat == "" {
			continue
		}
		if prefix, ok := strings.CutSuffix(pat, "/**"); ok {
			if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
				return true
			}
			continue
		}
		if ok, _ := path.Match(pat, rel); ok {
			return true
		}
		if ok, _ := path.Match(pat, path.Base(rel)); ok {
			return true
		}
	}
	return false
}
