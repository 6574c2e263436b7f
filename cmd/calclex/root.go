package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/praetorian-inc/calclex/pkg/config"
	"github.com/praetorian-inc/calclex/pkg/log"
)

var (
	verbose    bool
	quiet      bool
	configPath string

	// Populated by loadSettings before any subcommand runs.
	settings *config.Config
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "calclex",
	Short: "calclex - lexer for a small arithmetic expression language",
	Long: `calclex splits arithmetic expressions into tokens: integers, floats,
the operators + - * / and parentheses.

Lexing stops at the first illegal character or malformed number and
reports it with the file, line and a caret under the offending column.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default "+config.DefaultPath+" if present)")

	// Add subcommands
	rootCmd.AddCommand(lexCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	return rootCmd.Execute()
}

func loadSettings(cmd *cobra.Command, args []string) error {
	path, required := config.DefaultPath, false
	if configPath != "" {
		path, required = configPath, true
	}

	cfg, err := config.LoadFile(path, required)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	switch {
	case verbose:
		level = "debug"
	case quiet:
		level = "error"
	}

	l, err := log.New(log.Config{
		Level:  level,
		Env:    log.Env(cfg.Log.Env),
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	settings = cfg
	logger = l
	logger.Debug("settings loaded", zap.String("config", path), zap.String("format", cfg.Format))
	return nil
}

// currentSettings returns the loaded settings, or the defaults when a
// command runs without the root pre-run hook.
func currentSettings() *config.Config {
	if settings == nil {
		return config.Default()
	}
	return settings
}

func currentLogger() *zap.Logger {
	return log.OrNop(logger)
}
