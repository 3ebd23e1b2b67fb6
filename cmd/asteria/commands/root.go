// Package commands provides the CLI command implementations for asteria.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/andri/asteria/internal/logger"
	"github.com/andri/asteria/pkg/config"
)

// version information set by build flags
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// annotationTUI marks commands that own the terminal. Their logs go to the
// log file or nowhere.
const annotationTUI = "asteria/tui"

// annotationLenientConfig marks commands that report configuration errors
// themselves instead of failing before they run.
const annotationLenientConfig = "asteria/lenient-config"

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	buildDate = d
}

// RootOptions holds the global options for all commands
type RootOptions struct {
	// ConfigFile is the path to the configuration file
	ConfigFile string

	// Generator selects the generation backend (simulated, http, none)
	Generator string

	// Endpoint is the URL of the http generator
	Endpoint string

	// ASCII forces ASCII glyphs
	ASCII bool

	// LogLevel sets the logging level (debug, info, warn, error)
	LogLevel string

	// LogFile sets the file path for log output
	LogFile string

	// Config holds the loaded configuration
	Config config.Config

	// Context is the root context for all operations
	Context context.Context

	// CancelFunc cancels the root context
	CancelFunc context.CancelFunc

	logCloser io.Closer
}

// GlobalOptions is the singleton instance for root options
var GlobalOptions = &RootOptions{}

// NewRootCmd creates the root cobra command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "asteria",
		Short: "Describe a world, tune it and let it be generated",
		Long: `asteria - World Creation Studio

A terminal studio for dreaming up game worlds. Describe a world in words,
attach an image of a character or place, tune horror, puzzles, age and
chaos, then let a generator forge the world and its game script.

Key features:
  - Interactive studio with a starry night backdrop
  - Headless generation for scripts and pipelines
  - Simulated, HTTP and no-op generation backends
  - A stub generation backend for local end-to-end runs

Running asteria without a subcommand opens the studio.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		Annotations:       map[string]string{annotationTUI: "true"},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initializeGlobals(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			cleanup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStudio(cmd)
		},
	}

	// Add global flags
	addGlobalFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newStudioCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newGamesCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// addGlobalFlags adds the global flags to the root command
func addGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVar(&GlobalOptions.ConfigFile, "config", "",
		"config file (default: ./asteria.yaml, ~/.config/asteria/config.yaml, /etc/asteria/config.yaml)")
	flags.StringVar(&GlobalOptions.Generator, "generator", "",
		"generation backend: simulated, http, none (default: simulated)")
	flags.StringVar(&GlobalOptions.Endpoint, "endpoint", "",
		"generation endpoint for the http backend")
	flags.BoolVar(&GlobalOptions.ASCII, "ascii", false,
		"use ASCII glyphs instead of Unicode")
	flags.StringVar(&GlobalOptions.LogLevel, "log-level", "",
		"log level: debug, info, warn, error (default: info)")
	flags.StringVar(&GlobalOptions.LogFile, "log-file", "",
		"log file path (default: stderr, discarded in the studio)")
}

// initializeGlobals initializes global options from flags, env, and config file
func initializeGlobals(cmd *cobra.Command) error {
	// Set up context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	GlobalOptions.Context = ctx
	GlobalOptions.CancelFunc = cancel

	// Load configuration with flag bindings
	loadOpts := config.LoadOptions{
		ConfigFile: GlobalOptions.ConfigFile,
		Flags:      buildFlagSet(cmd),
	}

	result, err := config.LoadConfig(loadOpts)
	if err != nil {
		if cmd.Annotations[annotationLenientConfig] != "true" {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		result = config.LoadResult{Config: config.DefaultConfig()}
	}

	GlobalOptions.Config = result.Config

	// Initialize logger
	if logErr := initLogger(cmd.Annotations[annotationTUI] == "true"); logErr != nil {
		return fmt.Errorf("failed to initialize logger: %w", logErr)
	}

	// Log configuration source if a file was used
	if result.ConfigFileUsed != "" {
		logger.Debug("loaded configuration", "file", result.ConfigFileUsed)
	}
	for _, warning := range result.Validation.Warnings {
		logger.Warn("configuration warning", "warning", warning)
	}

	return nil
}

// buildFlagSet creates a pflag.FlagSet from cobra command flags for config binding
func buildFlagSet(cmd *cobra.Command) *pflag.FlagSet {
	flags := pflag.NewFlagSet("config", pflag.ContinueOnError)

	// Helper to safely add a flag if it exists and isn't already added
	addIfExists := func(name string) {
		if flags.Lookup(name) != nil {
			return // Already added
		}
		// Check both local and inherited flags
		if localFlag := cmd.Flags().Lookup(name); localFlag != nil {
			flags.AddFlag(localFlag)
		} else if inheritedFlag := cmd.InheritedFlags().Lookup(name); inheritedFlag != nil {
			flags.AddFlag(inheritedFlag)
		}
	}

	// Add relevant flags for config binding
	addIfExists("generator")
	addIfExists("endpoint")
	addIfExists("ascii")
	addIfExists("listen")
	addIfExists("library")
	addIfExists("log-level")
	addIfExists("log-file")

	return flags
}

// initLogger initializes the logger based on configuration. Terminal UI
// commands log to the log file only.
func initLogger(tui bool) error {
	cfg := GlobalOptions.Config.Logging

	var fallback io.Writer = os.Stderr
	if tui {
		fallback = io.Discard
	}

	log, closer, err := logger.Open(logger.FileOptions{
		Level:    cfg.Level,
		Format:   cfg.Format,
		File:     cfg.File,
		Fallback: fallback,
	})
	if err != nil {
		return err
	}

	GlobalOptions.logCloser = closer
	logger.SetDefault(log)

	return nil
}

// commandContext returns the signal-aware root context, falling back to the
// command's own context before initialization has run.
func commandContext(cmd *cobra.Command) context.Context {
	if GlobalOptions.Context != nil {
		return GlobalOptions.Context
	}
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// cleanup performs any necessary cleanup before exit
func cleanup() {
	if GlobalOptions.CancelFunc != nil {
		GlobalOptions.CancelFunc()
	}
	if GlobalOptions.logCloser != nil {
		_ = GlobalOptions.logCloser.Close()
		GlobalOptions.logCloser = nil
	}
}

// newVersionCmd creates the version subcommand
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print version, commit, and build date information",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "asteria version %s\n", version)
			_, _ = fmt.Fprintf(out, "  commit:     %s\n", commit)
			_, _ = fmt.Fprintf(out, "  build date: %s\n", buildDate)
		},
	}
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
