// Package main is the entry point for the fizzbuzz CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/fizzbuzz/internal/config"
	"github.com/dshills/fizzbuzz/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

var (
	// Global flags
	configPath string
	logLevel   string

	// Set up by PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger

	newLogger = logging.New
)

var rootCmd = &cobra.Command{
	Use:   "fizzbuzz",
	Short: "FizzBuzz generator with an embedded Lua host",
	Long: `fizzbuzz classifies the integers 1..n by divisibility and renders the
result as plain text or as a compact JSON array.

The same functions are available to Lua scripts through require("fizzbuzz"):

  local fb = require("fizzbuzz")
  print(fb.fizz_buzz_json(15))`,
	Version:       fmt.Sprintf("%s (commit %s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadUnvalidated(config.Options{Path: configPath})
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cmd.Flags().Changed("log-level") {
			loaded.Logging.Level = logLevel
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		cfg = loaded

		logger, err = newLogger(cfg.Logging)
		if err != nil {
			return err
		}
		logger.Debug("configuration loaded",
			zap.String("path", configPath),
			zap.String("strategy", cfg.Generate.Strategy),
			zap.Duration("lua_timeout", cfg.Lua.Timeout),
			zap.Int("lua_max_n", cfg.Lua.MaxN))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a TOML or YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		generateCmd,
		runCmd,
		evalCmd,
		verifyCmd,
		benchCmd,
		strategiesCmd,
	)
}

// run executes the root command and flushes the logger, including when
// the command failed.
func run() error {
	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	return err
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
