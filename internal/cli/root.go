package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quarrylabs/quarry/internal/config"
)

var (
	dbPath  string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quarry",
	Short: "Quarry - symbol lookups over CodeQL database exports",
	Long: `Quarry resolves functions, macros, globals and classes against the flat
CSV tables a CodeQL database exports, walks caller relationships, and
extracts line-numbered source snippets from the packaged src.zip archive.

It is the lookup backend for an LLM-driven triage loop: run 'quarry mcp'
to expose every lookup as a Model Context Protocol tool, or use the
individual commands for one-off queries.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database directory (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads configuration from .quarry/config.yml in the working
// directory plus QUARRY_* environment overrides, then applies the --db
// flag on top.
func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg, err := config.NewLoader(cwd).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if cfg.Database.Path == "" {
		return nil, fmt.Errorf("no database directory configured (use --db or set database.path)")
	}
	return cfg, nil
}
