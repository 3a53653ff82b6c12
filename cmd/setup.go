package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/pcalc/internal/config"
	"github.com/theirongolddev/pcalc/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

// setupForm builds the wizard over cfg's fields. payers receives the
// comma-separated payer list.
func setupForm(cfg *config.Config, payers *string) *huh.Form {
	themeOpts := huh.NewOptions(theme.Names()...)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to pcalc").
				Description("Plan revenue, hours and goals for your practice."),
			huh.NewInput().
				Title("Data directory").
				Description("Where the snapshot database lives. Leave blank for the default.").
				Placeholder(config.DataDir(config.DefaultConfig())).
				Value(&cfg.General.DataDir),
			huh.NewInput().
				Title("Payers").
				Description("Comma-separated labels offered when adding a service.").
				Value(payers).
				Validate(func(s string) error {
					if len(splitLabels(s)) == 0 {
						return errors.New("enter at least one payer")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&cfg.Appearance.Theme),
		),
	)
}

func splitLabels(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Start from the file alone so environment overrides are not persisted.
	cfg, _ := config.LoadFile(config.Path())
	payers := strings.Join(cfg.Payers.Labels, ", ")

	if err := setupForm(&cfg, &payers).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled; nothing saved.")
			return nil
		}
		return err
	}
	cfg.General.DataDir = strings.TrimSpace(cfg.General.DataDir)
	cfg.Payers.Labels = splitLabels(payers)

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `pcalc setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
