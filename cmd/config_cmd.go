package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/pcalc/internal/config"
	"github.com/theirongolddev/pcalc/internal/store"
	"github.com/theirongolddev/pcalc/internal/tui/theme"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func formatRange(r config.Range) string {
	return fmt.Sprintf("%g-%g step %g", r.Min, r.Max, r.Step)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appConfig

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", config.DataDir(cfg))
	fmt.Printf("    Database:       %s\n", store.FileName)
	fmt.Printf("    Log file:       %s (%s)\n", config.LogPath(), cfg.General.LogLevel)
	fmt.Println()

	fmt.Println("  [Sliders]")
	fmt.Printf("    Rate:        %s\n", formatRange(cfg.Sliders.Rate))
	fmt.Printf("    Sessions:    %s\n", formatRange(cfg.Sliders.Sessions))
	fmt.Printf("    Income rate: %s\n", formatRange(cfg.Sliders.IncomeRate))
	fmt.Printf("    Weeks off:   %s\n", formatRange(cfg.Sliders.WeeksOff))
	fmt.Println()

	fmt.Println("  [Payers]")
	fmt.Printf("    %s\n", strings.Join(cfg.Payers.Labels, ", "))
	fmt.Println()

	fmt.Println("  [Appearance]")
	if theme.Valid(cfg.Appearance.Theme) {
		fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	} else {
		fmt.Printf("    Theme: %s (unknown, using %s)\n", cfg.Appearance.Theme, theme.FlexokiDark.Name)
	}
	fmt.Printf("    Available: %s\n", strings.Join(theme.Names(), ", "))
	fmt.Println()

	fmt.Printf("  %s, %s and %s override the file.\n", config.EnvDataDir, config.EnvTheme, config.EnvLogLevel)
	fmt.Println("  Run `pcalc setup` to reconfigure.")
	return nil
}
