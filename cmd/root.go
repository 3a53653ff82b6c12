// Package cmd implements the pcalc CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/pcalc/internal/config"
	"github.com/theirongolddev/pcalc/internal/logger"
	"github.com/theirongolddev/pcalc/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagDataDir string
	flagQuiet   bool
	flagVerbose bool
)

// appConfig is loaded once per invocation before any command runs.
var appConfig = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "pcalc",
	Short: "Therapy practice planning calculator",
	Long:  "Project revenue, hours and payer mix for a therapy practice, track goals, and estimate annual income.",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		appConfig = loadConfig()
		return initLogging(appConfig)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
	RunE:          runSummary,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory holding the snapshot database (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug-level logging")
}

// loadConfig reads .env files and the config file. A broken config file is
// reported and replaced by defaults so the calculator stays usable.
func loadConfig() config.Config {
	if err := config.LoadEnv(); err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  %s\n", err)
	}
	cfg, err := config.Load()
	if err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  %s (using defaults)\n", err)
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	return cfg
}

func initLogging(cfg config.Config) error {
	level := logger.LogLevel(cfg.General.LogLevel)
	if flagVerbose {
		level = logger.DebugLevel
	}
	if err := logger.Init(flagVerbose, level, config.LogPath()); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	return nil
}

// openStore opens the snapshot database named by the config and flags.
func openStore(cfg config.Config) (*store.Store, error) {
	dir := config.DataDir(cfg)
	db, err := store.OpenDir(dir)
	if err != nil {
		return nil, fmt.Errorf("opening data in %s: %w", dir, err)
	}
	logger.Get().Debug("store opened", zap.String("dir", dir))
	return db, nil
}

// withStore runs fn against an open store and closes it afterwards.
func withStore(fn func(config.Config, *store.Store) error) error {
	db, err := openStore(appConfig)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return fn(appConfig, db)
}

// saved prints a confirmation line unless --quiet is set.
func saved(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  "+format+"\n", args...)
}
