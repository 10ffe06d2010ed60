package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFrom(t *testing.T) {
	path := writeConfig(t, `
default_vault = "notes"

[vaults]
notes = "/home/u/notes"
work = "/home/u/work"

[scan]
tag_types = "metadata"
filter_noise = false
exclude = ["drafts/**", "archive-*.md"]
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if got, _ := cfg.GetVaultPath(""); got != "/home/u/notes" {
		t.Errorf("default vault = %q", got)
	}
	if got, _ := cfg.GetVaultPath("work"); got != "/home/u/work" {
		t.Errorf("named vault = %q", got)
	}
	if _, err := cfg.GetVaultPath("nope"); err == nil {
		t.Error("expected error for unknown vault")
	}

	if cfg.Scan.TagTypesOrDefault() != "metadata" {
		t.Errorf("tag types = %q", cfg.Scan.TagTypesOrDefault())
	}
	if cfg.Scan.FilterNoiseOrDefault() {
		t.Error("filter_noise = false should stick")
	}
	if !reflect.DeepEqual(cfg.Scan.Exclude, []string{"drafts/**", "archive-*.md"}) {
		t.Errorf("exclude = %v", cfg.Scan.Exclude)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, err := cfg.GetVaultPath(""); err == nil {
		t.Error("empty config has no default vault")
	}
	if cfg.Scan.TagTypesOrDefault() != "both" {
		t.Errorf("default tag types = %q, want both", cfg.Scan.TagTypesOrDefault())
	}
	if !cfg.Scan.FilterNoiseOrDefault() {
		t.Error("noise filtering defaults on")
	}
}

func TestLoadFromInvalidToml(t *testing.T) {
	path := writeConfig(t, "default_vault = [broken\n")
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error")
	}
}
