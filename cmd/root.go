// Package cmd implements the CLI commands for mutadapt using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/adroitwhiz/scratch-vm/core/config"
)

// Persistent flag variables.
var (
	flagLogLevel   string
	flagConfigFile string
	flagEnvFile    string
)

// Resolved by the root command before any subcommand runs.
var (
	cfg    config.Config
	logger = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "mutadapt",
	Short: "mutadapt — convert block mutation markup into runtime objects",
	Long: `mutadapt converts the mutation markup attached to blocks into the object
tree used by the block runtime, and exports spec maps from block toolboxes.

Usage:
  mutadapt convert <file|url|-> [flags]
  mutadapt specmap <file|url|-> [flags]`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (panic, fatal, error, warn, info, debug, trace)")
	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env", ".env", "Path to an environment file")
}

// setup resolves configuration and the logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfigFile, flagEnvFile)
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		loaded.LogLevel = flagLogLevel
	}
	applyCommandFlags(cmd, &loaded)
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return nil
}

// applyCommandFlags lets explicitly set subcommand flags win over config.
func applyCommandFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if f := flags.Lookup("syntax"); f != nil && f.Changed {
		c.Syntax = f.Value.String()
	}
	if f := flags.Lookup("format"); f != nil && f.Changed {
		c.Format = f.Value.String()
	}
	if f := flags.Lookup("output_dir"); f != nil && f.Changed {
		c.OutputDir = f.Value.String()
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
