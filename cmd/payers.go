package cmd

import (
	"fmt"

	"github.com/theirongolddev/pcalc/internal/chartdata"
	"github.com/theirongolddev/pcalc/internal/cli"
	"github.com/theirongolddev/pcalc/internal/config"
	"github.com/theirongolddev/pcalc/internal/store"

	"github.com/spf13/cobra"
)

var payersCmd = &cobra.Command{
	Use:   "payers",
	Short: "Revenue by payer for both scenarios",
	RunE:  runPayers,
}

func init() {
	rootCmd.AddCommand(payersCmd)
}

func runPayers(_ *cobra.Command, _ []string) error {
	return withStore(func(_ config.Config, db *store.Store) error {
		entries, err := db.LoadServices()
		if err != nil {
			return err
		}

		base := chartdata.PayerSlices(entries, false)
		adj := chartdata.PayerSlices(entries, true)
		if len(adj) == 0 {
			fmt.Println("\n  No services yet.")
			return nil
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle("PAYER MIX  Monthly"))
		fmt.Println()

		t := cli.Table{Headers: []string{"Payer", "Base", "Share", "Adjusted", "Share"}}
		for i := range adj {
			// Both scenarios group the same entries, so payers line up by position.
			t.Rows = append(t.Rows, []string{
				adj[i].Name,
				cli.FormatMoney(base[i].Value),
				cli.FormatPercent(base[i].Share),
				cli.FormatMoney(adj[i].Value),
				cli.FormatPercent(adj[i].Share),
			})
		}
		fmt.Print(cli.RenderTable(t))
		fmt.Println()

		revenue := chartdata.RevenueByScenario(entries)
		peak := revenue.Max()
		for _, row := range revenue.Rows {
			segs := make([]cli.Segment, len(revenue.Series))
			for i, s := range revenue.Series {
				segs[i] = cli.Segment{Label: s, Value: row.Value(s)}
			}
			fmt.Printf("  %-9s %s %s\n", row.Category, cli.RenderStackedBar(segs, peak, 40), cli.Muted(cli.FormatMoney(row.Total())))
		}
		fmt.Printf("  %-9s %s\n", "", cli.RenderLegend(revenue.Series))
		return nil
	})
}
