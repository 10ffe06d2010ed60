// Package config handles global tagmend configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the global configuration, loaded from
// ~/.config/tagmend/config.toml.
type Config struct {
	// DefaultVault names the vault used when --vault is not given.
	DefaultVault string `toml:"default_vault"`

	// Vaults maps vault names to paths.
	Vaults map[string]string `toml:"vaults"`

	// Scan configures the indexing pass.
	Scan ScanConfig `toml:"scan"`
}

// ScanConfig controls what the index build sees. These are explicit
// inputs to the scan, never ambient state, so two differently
// configured passes can run in one process.
type ScanConfig struct {
	// TagTypes selects tag sources: "metadata", "inline", or "both".
	TagTypes string `toml:"tag_types"`

	// FilterNoise drops non-semantic tokens from the index. Defaults
	// to true when unset.
	FilterNoise *bool `toml:"filter_noise"`

	// Exclude lists glob patterns for files and directories the
	// scanner must skip.
	Exclude []string `toml:"exclude"`
}

// TagTypesOrDefault returns the configured tag-types selection,
// defaulting to "both".
func (s ScanConfig) TagTypesOrDefault() string {
	if s.TagTypes == "" {
		return "both"
	}
	return s.TagTypes
}

// FilterNoiseOrDefault returns the noise-filter setting, defaulting on.
func (s ScanConfig) FilterNoiseOrDefault() bool {
	if s.FilterNoise == nil {
		return true
	}
	return *s.FilterNoise
}

// GetVaultPath returns the path for a named vault, or the default
// vault when name is empty.
func (c *Config) GetVaultPath(name string) (string, error) {
	if name == "" {
		name = c.DefaultVault
	}
	if name == "" {
		return "", fmt.Errorf("no default vault configured")
	}
	if path, ok := c.Vaults[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("vault %q not found in config", name)
}

// Load loads configuration from the default location, returning an
// empty config when the file does not exist.
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom loads configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "tagmend", "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tagmend", "config.toml")
}
