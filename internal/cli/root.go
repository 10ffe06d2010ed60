package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tagmend/tagmend/internal/config"
)

var (
	// Global flags
	vaultName     string
	vaultPathFlag string
	configPath    string

	// Resolved values
	resolvedVaultPath string
	cfg               *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "tagmend",
	Short: "tagmend - safe bulk tag maintenance for markdown vaults",
	Long: `tagmend locates, indexes, and safely rewrites tags across a vault of
markdown documents: YAML frontmatter tag fields and inline #tags.

Every mutating command runs in preview mode by default; pass --execute
to write changes. Writes are atomic per file and only files actually
containing a relevant tag are ever touched.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that work without a vault.
		switch cmd.Name() {
		case "version", "docs", "completion", "help":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Resolve vault path: explicit path > named vault > default.
		switch {
		case vaultPathFlag != "":
			resolvedVaultPath = vaultPathFlag
		case vaultName != "":
			resolvedVaultPath, err = cfg.GetVaultPath(vaultName)
			if err != nil {
				return fmt.Errorf("vault %q not found in config", vaultName)
			}
		default:
			resolvedVaultPath, err = cfg.GetVaultPath("")
			if err != nil {
				return fmt.Errorf(`no vault specified

Either:
  1. Use --vault <name> (from config)
  2. Use --vault-path /path/to/vault
  3. Set default_vault in %s`, config.DefaultPath())
			}
		}

		if _, err := os.Stat(resolvedVaultPath); os.IsNotExist(err) {
			return fmt.Errorf("vault not found: %s", resolvedVaultPath)
		}

		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&vaultName, "vault", "v", "", "Named vault from config")
	rootCmd.PersistentFlags().StringVar(&vaultPathFlag, "vault-path", "", "Explicit path to vault directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for script/agent use)")
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

// getVaultPath returns the resolved vault path.
func getVaultPath() string {
	return resolvedVaultPath
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}
