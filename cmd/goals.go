package cmd

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/theirongolddev/pcalc/internal/cli"
	"github.com/theirongolddev/pcalc/internal/config"
	"github.com/theirongolddev/pcalc/internal/goals"
	"github.com/theirongolddev/pcalc/internal/model"
	"github.com/theirongolddev/pcalc/internal/pipeline"
	"github.com/theirongolddev/pcalc/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagComparison string
	flagTarget     float64
	flagMetric     string
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Track monthly practice goals",
	RunE:  runGoalsCheck,
}

var goalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List goals",
	RunE:  runGoalsList,
}

var goalsAddCmd = &cobra.Command{
	Use:   "add <metric> <target>",
	Short: "Add a goal (metrics: revenue, visits, blended_rate, therapy_hours, admin_hours, total_hours)",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalsAdd,
}

var goalsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a goal's metric, target or comparison",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsEdit,
}

var goalsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsRm,
}

var goalsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate goals against the adjusted scenario",
	RunE:  runGoalsCheck,
}

func init() {
	goalsAddCmd.Flags().StringVarP(&flagComparison, "comparison", "c", string(model.AtLeast), "at_least or no_more_than")
	goalsEditCmd.Flags().StringVarP(&flagComparison, "comparison", "c", string(model.AtLeast), "at_least or no_more_than")
	goalsEditCmd.Flags().Float64VarP(&flagTarget, "target", "t", 0, "New target value")
	goalsEditCmd.Flags().StringVarP(&flagMetric, "metric", "m", "", "New metric")

	goalsCmd.AddCommand(goalsListCmd, goalsAddCmd, goalsEditCmd, goalsRmCmd, goalsCheckCmd)
	rootCmd.AddCommand(goalsCmd)
}

// editGoals loads the goals into a tracker, applies fn and saves the result.
func editGoals(fn func(*goals.Tracker) (string, error)) error {
	return withStore(func(_ config.Config, db *store.Store) error {
		list, err := db.LoadGoals()
		if err != nil {
			return err
		}
		tr := goals.NewTracker(list)
		msg, err := fn(tr)
		if err != nil {
			return err
		}
		if err := db.SaveGoals(tr.Goals()); err != nil {
			return fmt.Errorf("saving goals: %w", err)
		}
		saved("%s", msg)
		return nil
	})
}

func runGoalsList(_ *cobra.Command, _ []string) error {
	return withStore(func(_ config.Config, db *store.Store) error {
		list, err := db.LoadGoals()
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("\n  No goals. Add one with `pcalc goals add revenue 5000`.")
			return nil
		}
		t := cli.Table{Headers: []string{"ID", "Metric", "Comparison", "Target"}}
		for _, g := range list {
			t.Rows = append(t.Rows, []string{shortID(g), g.Metric.Title(), g.Comparison.Title(), cli.FormatMetric(g.Metric, g.Target)})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(t))
		return nil
	})
}

func runGoalsAdd(_ *cobra.Command, args []string) error {
	kind, err := model.ParseMetricKind(args[0])
	if err != nil {
		return err
	}
	target, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid target %q", args[1])
	}
	cmp, err := model.ParseComparison(flagComparison)
	if err != nil {
		return err
	}

	return editGoals(func(tr *goals.Tracker) (string, error) {
		if tr.Full() {
			return "", fmt.Errorf("already tracking %d goals; remove one first", goals.MaxGoals)
		}
		dup := !slices.Contains(tr.AvailableKinds(), kind)
		g := tr.Add(kind, target, cmp)
		msg := fmt.Sprintf("Added goal %s: %s %s %s", shortID(g), kind.Title(), cmp.Title(), cli.FormatMetric(kind, target))
		if dup {
			msg += fmt.Sprintf(" (note: %s already had a goal)", kind.Title())
		}
		return msg, nil
	})
}

func runGoalsEdit(cmd *cobra.Command, args []string) error {
	return editGoals(func(tr *goals.Tracker) (string, error) {
		g, err := tr.Find(args[0])
		if err != nil {
			return "", fmt.Errorf("goal %s: %w", args[0], err)
		}
		kind, target, cmp := g.Metric, g.Target, g.Comparison
		if cmd.Flags().Changed("metric") {
			if kind, err = model.ParseMetricKind(flagMetric); err != nil {
				return "", err
			}
		}
		if cmd.Flags().Changed("target") {
			target = flagTarget
		}
		if cmd.Flags().Changed("comparison") {
			if cmp, err = model.ParseComparison(flagComparison); err != nil {
				return "", err
			}
		}
		if err := tr.Update(g.ID, kind, target, cmp); err != nil {
			return "", err
		}
		return fmt.Sprintf("Updated goal %s", shortID(g)), nil
	})
}

func runGoalsRm(_ *cobra.Command, args []string) error {
	return editGoals(func(tr *goals.Tracker) (string, error) {
		g, err := tr.Find(args[0])
		if err != nil {
			return "", fmt.Errorf("goal %s: %w", args[0], err)
		}
		if err := tr.Remove(g.ID); err != nil {
			return "", err
		}
		return fmt.Sprintf("Removed goal %s", shortID(g)), nil
	})
}

func runGoalsCheck(_ *cobra.Command, _ []string) error {
	return withStore(func(_ config.Config, db *store.Store) error {
		list, err := db.LoadGoals()
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println("\n  No goals. Add one with `pcalc goals add revenue 5000`.")
			return nil
		}
		services, err := db.LoadServices()
		if err != nil {
			return err
		}
		results := goals.NewTracker(list).Check(pipeline.Metrics(services, true))
		fmt.Println()
		fmt.Print(cli.RenderTable(goalTable(results)))
		for _, r := range results {
			if r.Met {
				continue
			}
			word := "to go"
			if r.Goal.Comparison == model.NoMoreThan {
				word = "over"
			}
			fmt.Printf("  %s: %s %s\n", r.Goal.Metric.Title(), cli.FormatMetric(r.Goal.Metric, math.Abs(r.Delta)), word)
		}
		return nil
	})
}
