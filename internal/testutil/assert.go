package testutil

import (
	"os"
	"path/filepath"
	"strings"
)

// AssertFileContains fails the test if the file does not contain substr.
func (v *TestVault) AssertFileContains(relPath, substr string) {
	v.t.Helper()
	content := v.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		v.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertFileNotContains fails the test if the file contains substr.
func (v *TestVault) AssertFileNotContains(relPath, substr string) {
	v.t.Helper()
	content := v.ReadFile(relPath)
	if strings.Contains(content, substr) {
		v.t.Errorf("expected file %s to not contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertFileEquals fails the test if the file's bytes differ from want.
func (v *TestVault) AssertFileEquals(relPath, want string) {
	v.t.Helper()
	got := v.ReadFile(relPath)
	if got != want {
		v.t.Errorf("file %s mismatch\nwant:\n%q\ngot:\n%q", relPath, want, got)
	}
}

// AssertFileExists fails the test if the file does not exist.
func (v *TestVault) AssertFileExists(relPath string) {
	v.t.Helper()
	if _, err := os.Stat(filepath.Join(v.Path, relPath)); os.IsNotExist(err) {
		v.t.Errorf("expected file to exist: %s", relPath)
	}
}
