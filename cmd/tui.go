package cmd

import (
	"fmt"

	"github.com/theirongolddev/pcalc/internal/logger"
	"github.com/theirongolddev/pcalc/internal/tui"
	"github.com/theirongolddev/pcalc/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagTUITab     string
	flagTUINoMouse bool
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive planning dashboard",
	Long: `Open the dashboard. Slider moves and edits are written to the snapshot
database as they happen, so closing the dashboard never loses work.`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&flagTUITab, "tab", "t", "overview", "Tab to open on (overview, services, charts, income, goals)")
	tuiCmd.Flags().BoolVar(&flagTUINoMouse, "no-mouse", false, "Leave mouse events to the terminal")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	theme.SetActive(appConfig.Appearance.Theme)

	// Every card paints its own background, so the profile must emit color
	// even when lipgloss cannot detect one.
	lipgloss.SetColorProfile(termenv.TrueColor)

	db, err := openStore(appConfig)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	app, err := tui.NewApp(appConfig, db)
	if err != nil {
		return err
	}
	if app, err = app.WithTab(flagTUITab); err != nil {
		return err
	}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if !flagTUINoMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	logger.Get().Info("dashboard start", zap.String("tab", flagTUITab), zap.String("theme", theme.Active.Name))

	if _, err := tea.NewProgram(app, opts...).Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
