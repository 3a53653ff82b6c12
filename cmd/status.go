package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/theirongolddev/pcalc/internal/cli"
	"github.com/theirongolddev/pcalc/internal/config"
	"github.com/theirongolddev/pcalc/internal/goals"
	"github.com/theirongolddev/pcalc/internal/pipeline"
	"github.com/theirongolddev/pcalc/internal/store"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what is saved and when it last changed",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// snapshotLabels names the known snapshot keys for display.
var snapshotLabels = map[string]string{
	store.KeyServices:    "Services",
	store.KeyGoals:       "Goals",
	store.KeyIncomeState: "Income sources",
	store.KeyIncomeGoal:  "Income goal",
}

func runStatus(_ *cobra.Command, _ []string) error {
	return withStore(func(cfg config.Config, db *store.Store) error {
		fmt.Println()
		fmt.Println(cli.RenderTitle("PCALC STATUS"))
		fmt.Println()
		fmt.Printf("  Database: %s\n", filepath.Join(config.DataDir(cfg), store.FileName))
		fmt.Println()

		keys, err := db.Keys()
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			fmt.Println("  Nothing saved yet; every view shows the defaults.")
			return nil
		}

		tbl := cli.Table{Headers: []string{"Snapshot", "Key", "Updated"}}
		for _, k := range keys {
			updated := "-"
			at, err := db.UpdatedAt(k)
			switch {
			case err == nil:
				updated = humanize.Time(at)
			case !errors.Is(err, store.ErrNoValue):
				return err
			}
			label, ok := snapshotLabels[k]
			if !ok {
				label = cli.Muted("unknown")
			}
			tbl.Rows = append(tbl.Rows, []string{label, k, updated})
		}
		fmt.Print(cli.RenderTable(tbl))
		fmt.Println()

		services, err := db.LoadServices()
		if err != nil {
			return err
		}
		goalList, err := db.LoadGoals()
		if err != nil {
			return err
		}
		incomes, err := db.LoadIncomeState()
		if err != nil {
			return err
		}

		met := 0
		for _, r := range goals.NewTracker(goalList).Check(pipeline.Metrics(services, true)) {
			if r.Met {
				met++
			}
		}

		fmt.Printf("  %d services, %d/%d goals (%d met), %d income sources\n",
			len(services), len(goalList), goals.MaxGoals, met, len(incomes.Incomes))
		fmt.Printf("  Projected annual income: %s\n",
			cli.FormatMoney(float64(pipeline.CalculateAnnualIncome(incomes.Incomes, incomes.WeeksOff))))
		return nil
	})
}
