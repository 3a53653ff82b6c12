package cmd

import (
	"fmt"

	"github.com/theirongolddev/pcalc/internal/cli"
	"github.com/theirongolddev/pcalc/internal/config"
	"github.com/theirongolddev/pcalc/internal/goals"
	"github.com/theirongolddev/pcalc/internal/model"
	"github.com/theirongolddev/pcalc/internal/pipeline"
	"github.com/theirongolddev/pcalc/internal/store"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Monthly metrics for the base and adjusted scenarios",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	return withStore(func(_ config.Config, db *store.Store) error {
		services, err := db.LoadServices()
		if err != nil {
			return err
		}
		goalList, err := db.LoadGoals()
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle("PRACTICE SUMMARY  Monthly"))
		fmt.Println()

		if len(services) == 0 {
			fmt.Println("  No services yet. Add one with `pcalc services add`.")
			return nil
		}

		sum := pipeline.Summarize(services)
		fmt.Print(cli.RenderTable(summaryTable(sum)))

		totals, rows := pipeline.AggregateVisitTypes(services)
		fmt.Println()
		fmt.Print(cli.RenderTable(breakdownTable(totals, rows)))

		if len(goalList) > 0 {
			fmt.Println()
			fmt.Print(cli.RenderTable(goalTable(goals.NewTracker(goalList).Check(sum.Adjusted))))
		}
		return nil
	})
}

func summaryTable(sum model.PracticeSummary) cli.Table {
	b, a := sum.Base, sum.Adjusted
	row := func(kind model.MetricKind, base, adj float64) []string {
		return []string{kind.Title(), cli.FormatMetric(kind, base), cli.FormatMetric(kind, adj), cli.Change(adj, base)}
	}
	return cli.Table{
		Headers: []string{"Metric", "Base", "Adjusted", "Change"},
		Rows: [][]string{
			row(model.MetricRevenue, b.Revenue, a.Revenue),
			row(model.MetricVisits, b.Visits, a.Visits),
			row(model.MetricBlendedRate, b.BlendedRate, a.BlendedRate),
			{"---"},
			row(model.MetricTherapyHours, b.Hours.Therapy, a.Hours.Therapy),
			row(model.MetricAdminHours, b.Hours.Admin, a.Hours.Admin),
			row(model.MetricTotalHours, b.Hours.Total, a.Hours.Total),
		},
	}
}

func breakdownTable(totals pipeline.VisitTypeBreakdown, rows []pipeline.VisitTypeBreakdown) cli.Table {
	t := cli.Table{
		Title:   "By Visit Type",
		Headers: []string{"Visit Type", "Services", "Base Rev", "Adj Rev", "Adj Hours", "Share"},
	}
	add := func(r pipeline.VisitTypeBreakdown) {
		t.Rows = append(t.Rows, []string{
			r.VisitType,
			fmt.Sprintf("%d", r.Services),
			cli.FormatMoney(r.BaseRevenue),
			cli.FormatMoney(r.AdjustedRevenue),
			cli.FormatHours(r.AdjustedHours),
			cli.FormatPercent(r.RevenueSharePct / 100),
		})
	}
	for _, r := range rows {
		add(r)
	}
	t.Rows = append(t.Rows, []string{"---"})
	add(totals)
	return t
}

func goalTable(results []goals.Result) cli.Table {
	t := cli.Table{
		Title:   "Goals",
		Headers: []string{"ID", "Goal", "Current", "Progress", "Status"},
	}
	for _, r := range results {
		g := r.Goal
		t.Rows = append(t.Rows, []string{
			shortID(g),
			fmt.Sprintf("%s %s %s", g.Metric.Title(), g.Comparison.Title(), cli.FormatMetric(g.Metric, g.Target)),
			cli.FormatMetric(g.Metric, r.Current),
			cli.RenderGoalBar(r.Progress(), 12),
			cli.Status(r.Met),
		})
	}
	return t
}

func shortID(g model.GoalMetric) string {
	return g.ID.String()[:8]
}
