package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"mercator-hq/callisto/pkg/cli"
	"mercator-hq/callisto/pkg/config"
)

// defaultConfigFile is the config path used when --config is not given.
const defaultConfigFile = "config.yaml"

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "callisto",
	Short: "Callisto - data-export toolkit",
	Long: `Callisto is an open-source data-export toolkit that renders JSON and
YAML datasets through pluggable format strategies.

It provides:
  - JSON, CSV, and YAML export with per-call options
  - Nested-record flattening for tabular output
  - Export job history with memory and SQLite backends
  - Scheduled exports on cron expressions
  - Watch mode that re-exports datasets when they change

For more information, visit: https://github.com/mercator-hq/callisto`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.CompletionOptions.DisableDefaultCmd = false
}

// loadConfig initializes the process-wide configuration. A missing file
// at the default path is not an error: ad-hoc commands run on the
// built-in defaults so `callisto export data.json` works without any
// config file. An explicit --config that fails to load is an error.
func loadConfig() (*config.Config, error) {
	initErr := config.Initialize(cfgFile)
	if cfg := config.GetConfig(); cfg != nil {
		return cfg, nil
	}

	if initErr != nil && !(cfgFile == defaultConfigFile && errors.Is(initErr, os.ErrNotExist)) {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", initErr))
	}

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	config.SetConfig(cfg)
	return cfg, nil
}
