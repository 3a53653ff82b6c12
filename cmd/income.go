package cmd

import (
	"fmt"
	"strconv"

	"github.com/theirongolddev/pcalc/internal/cli"
	"github.com/theirongolddev/pcalc/internal/config"
	"github.com/theirongolddev/pcalc/internal/model"
	"github.com/theirongolddev/pcalc/internal/pipeline"
	"github.com/theirongolddev/pcalc/internal/records"
	"github.com/theirongolddev/pcalc/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	flagIncomeType    string
	flagIncomeNewType string
	flagIncomeLabel   string
	flagIncomeRate    float64
	flagIncomeQty     float64
	flagIncomeAmount  float64
	flagIncomePeriod  string
	flagIncomeHours   float64
	flagIncomeStart   string
	flagGoalCurrent   bool
	flagGoalClear     bool
)

var incomeCmd = &cobra.Command{
	Use:   "income",
	Short: "Annual income projection from all income sources",
	RunE:  runIncomeShow,
}

var incomeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show income sources and the annual projection",
	RunE:  runIncomeShow,
}

var incomeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an income source (default: a client session)",
	RunE:  runIncomeAdd,
}

var incomeSetCmd = &cobra.Command{
	Use:   "set <n>",
	Short: "Change income source n; --type resets it to that type's defaults first",
	Args:  cobra.ExactArgs(1),
	RunE:  runIncomeSet,
}

var incomeRmCmd = &cobra.Command{
	Use:   "rm <n>",
	Short: "Remove income source n",
	Args:  cobra.ExactArgs(1),
	RunE:  runIncomeRm,
}

var incomeWeeksCmd = &cobra.Command{
	Use:   "weeks <weeks-off>",
	Short: "Set weeks off per year",
	Args:  cobra.ExactArgs(1),
	RunE:  runIncomeWeeks,
}

var incomeGoalCmd = &cobra.Command{
	Use:   "goal [amount]",
	Short: "Set the annual income goal (--current uses the projection, --clear removes it)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runIncomeGoal,
}

var incomeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset income sources and weeks off to defaults",
	RunE:  runIncomeClear,
}

func addIncomeValueFlags(fs *pflag.FlagSet) {
	fs.StringVar(&flagIncomeLabel, "label", "", "Label")
	fs.Float64Var(&flagIncomeRate, "rate", 0, "Rate per session or hour (client, consulting)")
	fs.Float64Var(&flagIncomeQty, "sessions", 0, "Sessions per month (client)")
	fs.Float64Var(&flagIncomeAmount, "amount", 0, "Amount (periodic, w2)")
	fs.StringVar(&flagIncomePeriod, "period", "", "week, month or year (periodic)")
	fs.Float64Var(&flagIncomeHours, "hours", 0, "Hours per month (consulting)")
	fs.StringVar(&flagIncomeStart, "start", "", "Start month YYYY-MM or 'all' (w2)")
}

func init() {
	incomeAddCmd.Flags().StringVarP(&flagIncomeType, "type", "t", string(model.IncomeClient), "client, misc, consulting or w2")
	addIncomeValueFlags(incomeAddCmd.Flags())
	incomeSetCmd.Flags().StringVarP(&flagIncomeNewType, "type", "t", "", "Change the type (resets values)")
	addIncomeValueFlags(incomeSetCmd.Flags())

	incomeGoalCmd.Flags().BoolVar(&flagGoalCurrent, "current", false, "Use the current annual projection as the goal")
	incomeGoalCmd.Flags().BoolVar(&flagGoalClear, "clear", false, "Remove the goal")
	incomeGoalCmd.MarkFlagsMutuallyExclusive("current", "clear")

	incomeCmd.AddCommand(incomeShowCmd, incomeAddCmd, incomeSetCmd, incomeRmCmd, incomeWeeksCmd, incomeGoalCmd, incomeClearCmd)
	rootCmd.AddCommand(incomeCmd)
}

// incomeEdit mutates the income records and returns the confirmation to
// print once the result is saved.
type incomeEdit func(config.Config, *records.IncomeStore) (string, error)

type incomeSnapshots interface {
	LoadIncomeState() (model.IncomeState, error)
	SaveIncomeState(model.IncomeState) error
}

// applyIncomeEdit loads the income state, applies fn and saves the result.
// The confirmation is only returned when the save succeeded.
func applyIncomeEdit(cfg config.Config, db incomeSnapshots, fn incomeEdit) (string, error) {
	st, err := db.LoadIncomeState()
	if err != nil {
		return "", err
	}
	is := records.NewIncomeStore(st)
	msg, err := fn(cfg, is)
	if err != nil {
		return "", err
	}
	if err := db.SaveIncomeState(is.State()); err != nil {
		return "", fmt.Errorf("saving income: %w", err)
	}
	return msg, nil
}

// editIncome runs fn against the stored income state and prints its
// confirmation after the write.
func editIncome(fn incomeEdit) error {
	return withStore(func(cfg config.Config, db *store.Store) error {
		msg, err := applyIncomeEdit(cfg, db, fn)
		if err != nil {
			return err
		}
		saved("%s", msg)
		return nil
	})
}

// parsePosition converts a 1-based CLI position to an index.
func parsePosition(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q (use the # column of `pcalc income`)", arg)
	}
	return n - 1, nil
}

func runIncomeShow(_ *cobra.Command, _ []string) error {
	return withStore(func(_ config.Config, db *store.Store) error {
		st, err := db.LoadIncomeState()
		if err != nil {
			return err
		}
		goal, hasGoal, err := db.LoadIncomeGoal()
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle("ANNUAL INCOME"))
		fmt.Println()

		t := cli.Table{Headers: []string{"#", "Type", "Label", "Inputs", "Annual"}}
		for i, e := range st.Incomes {
			t.Rows = append(t.Rows, []string{
				strconv.Itoa(i + 1),
				e.Kind().Title(),
				e.Name(),
				cli.FormatIncomeDetail(e),
				cli.FormatMoney(float64(pipeline.IncomeContribution(e, st.WeeksOff))),
			})
		}
		annual := pipeline.CalculateAnnualIncome(st.Incomes, st.WeeksOff)
		t.Rows = append(t.Rows, []string{"---"})
		t.Rows = append(t.Rows, []string{"", "", "TOTAL", fmt.Sprintf("%s weeks off", cli.FormatNumber(st.WeeksOff)), cli.FormatMoney(float64(annual))})
		fmt.Print(cli.RenderTable(t))

		if hasGoal {
			line := fmt.Sprintf("  Income goal: %s", cli.FormatMoney(goal))
			if pct, ok := pipeline.GoalPercent(float64(annual), goal); ok {
				line += fmt.Sprintf("  (%s vs goal)", cli.FormatGoalPercent(pct))
			}
			fmt.Println()
			fmt.Println(line)
		}
		return nil
	})
}

// applyIncomeFlags sets the fields named by changed flags on e. A flag that
// does not belong to e's type is an error.
func applyIncomeFlags(cfg config.Config, fs *pflag.FlagSet, e model.IncomeEntry) (model.IncomeEntry, error) {
	allowed := map[model.IncomeKind][]string{
		model.IncomeClient:     {"rate", "sessions"},
		model.IncomeMisc:       {"amount", "period"},
		model.IncomeConsulting: {"rate", "hours"},
		model.IncomeW2:         {"amount", "start"},
	}
	var bad error
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "type", "label":
			return
		}
		for _, ok := range allowed[e.Kind()] {
			if ok == f.Name {
				return
			}
		}
		if bad == nil {
			bad = fmt.Errorf("--%s does not apply to %s income", f.Name, e.Kind())
		}
	})
	if bad != nil {
		return e, bad
	}

	rate := cfg.Sliders.IncomeRate.Clamp(flagIncomeRate)
	switch v := e.(type) {
	case model.ClientIncome:
		if fs.Changed("rate") {
			v.Rate = rate
		}
		if fs.Changed("sessions") {
			v.SessionsPerMonth = flagIncomeQty
		}
		e = v
	case model.MiscIncome:
		if fs.Changed("amount") {
			v.Amount = flagIncomeAmount
		}
		if fs.Changed("period") {
			switch p := model.Period(flagIncomePeriod); p {
			case model.PeriodWeek, model.PeriodMonth, model.PeriodYear:
				v.Period = p
			default:
				return e, fmt.Errorf("invalid period %q (week, month or year)", flagIncomePeriod)
			}
		}
		e = v
	case model.ConsultingIncome:
		if fs.Changed("rate") {
			v.Rate = rate
		}
		if fs.Changed("hours") {
			v.Hours = flagIncomeHours
		}
		e = v
	case model.W2Income:
		if fs.Changed("amount") {
			v.Amount = flagIncomeAmount
		}
		if fs.Changed("start") {
			if flagIncomeStart != model.W2StartAll {
				if _, ok := pipeline.StartMonth(flagIncomeStart); !ok {
					return e, fmt.Errorf("invalid start %q (YYYY-MM or all)", flagIncomeStart)
				}
			}
			v.Start = flagIncomeStart
		}
		e = v
	}

	if fs.Changed("label") {
		e = model.WithLabel(e, flagIncomeLabel)
	}
	return e, nil
}

func runIncomeAdd(cmd *cobra.Command, _ []string) error {
	kind := model.IncomeKind(flagIncomeType)
	return editIncome(func(cfg config.Config, is *records.IncomeStore) (string, error) {
		var e model.IncomeEntry
		if kind == model.IncomeClient {
			e = is.AddClient()
		} else {
			def, err := model.DefaultIncomeFor(kind, kind.Title())
			if err != nil {
				return "", err
			}
			is.Add(def)
			e = def
		}
		idx := is.Len() - 1
		e, err := applyIncomeFlags(cfg, cmd.Flags(), e)
		if err != nil {
			return "", err
		}
		if err := is.Replace(idx, e); err != nil {
			return "", err
		}
		return fmt.Sprintf("Added #%d %s (%s)", idx+1, e.Name(), e.Kind().Title()), nil
	})
}

func runIncomeSet(cmd *cobra.Command, args []string) error {
	idx, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	return editIncome(func(cfg config.Config, is *records.IncomeStore) (string, error) {
		e, err := is.Get(idx)
		if err != nil {
			return "", fmt.Errorf("income #%d: %w", idx+1, err)
		}
		if cmd.Flags().Changed("type") {
			if e, err = is.ChangeKind(idx, model.IncomeKind(flagIncomeNewType)); err != nil {
				return "", err
			}
		}
		if e, err = applyIncomeFlags(cfg, cmd.Flags(), e); err != nil {
			return "", err
		}
		if err := is.Replace(idx, e); err != nil {
			return "", err
		}
		return fmt.Sprintf("Updated #%d %s: %s", idx+1, e.Name(), cli.FormatIncomeDetail(e)), nil
	})
}

func runIncomeRm(_ *cobra.Command, args []string) error {
	idx, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	return editIncome(removeIncome(idx))
}

// removeIncome drops the entry at idx.
func removeIncome(idx int) incomeEdit {
	return func(_ config.Config, is *records.IncomeStore) (string, error) {
		e, err := is.Get(idx)
		if err != nil {
			return "", fmt.Errorf("income #%d: %w", idx+1, err)
		}
		if err := is.Remove(idx); err != nil {
			return "", err
		}
		return fmt.Sprintf("Removed #%d %s", idx+1, e.Name()), nil
	}
}

func runIncomeWeeks(_ *cobra.Command, args []string) error {
	w, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid weeks %q", args[0])
	}
	return editIncome(func(cfg config.Config, is *records.IncomeStore) (string, error) {
		is.SetWeeksOff(cfg.Sliders.WeeksOff.Clamp(w))
		return fmt.Sprintf("Weeks off set to %s (%s working weeks)",
			cli.FormatNumber(is.WeeksOff()), cli.FormatNumber(pipeline.WorkingWeeks(is.WeeksOff()))), nil
	})
}

func runIncomeGoal(_ *cobra.Command, args []string) error {
	return withStore(func(_ config.Config, db *store.Store) error {
		switch {
		case flagGoalClear:
			if err := db.ClearIncomeGoal(); err != nil {
				return err
			}
			saved("Income goal cleared")
			return nil
		case flagGoalCurrent:
			st, err := db.LoadIncomeState()
			if err != nil {
				return err
			}
			annual := float64(pipeline.CalculateAnnualIncome(st.Incomes, st.WeeksOff))
			if err := db.SaveIncomeGoal(annual); err != nil {
				return err
			}
			saved("Income goal set to %s", cli.FormatMoney(annual))
			return nil
		case len(args) == 1:
			goal, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[0])
			}
			if err := db.SaveIncomeGoal(goal); err != nil {
				return err
			}
			saved("Income goal set to %s", cli.FormatMoney(goal))
			return nil
		}

		goal, ok, err := db.LoadIncomeGoal()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("  No income goal set.")
			return nil
		}
		fmt.Printf("  Income goal: %s\n", cli.FormatMoney(goal))
		return nil
	})
}

func runIncomeClear(_ *cobra.Command, _ []string) error {
	return editIncome(func(_ config.Config, is *records.IncomeStore) (string, error) {
		is.Reset()
		return "Income sources reset to defaults", nil
	})
}
