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
)

var (
	flagVisitType string
	flagPayer     string
	flagLength    float64
	flagAdmin     float64
	flagRate      float64
	flagSessions  float64
)

var servicesCmd = &cobra.Command{
	Use:     "services",
	Aliases: []string{"svc"},
	Short:   "List and edit service types",
	RunE:    runServicesList,
}

var servicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List services with base and adjusted values",
	RunE:  runServicesList,
}

var servicesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a service",
	RunE:  runServicesAdd,
}

var servicesEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a service's base values (resets its adjustments)",
	Args:  cobra.ExactArgs(1),
	RunE:  runServicesEdit,
}

var servicesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a service",
	Args:  cobra.ExactArgs(1),
	RunE:  runServicesRm,
}

var servicesAdjustCmd = &cobra.Command{
	Use:   "adjust <id>",
	Short: "Set a service's projected rate or sessions",
	Args:  cobra.ExactArgs(1),
	RunE:  runServicesAdjust,
}

var servicesResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop all adjustments back to base values",
	RunE:  runServicesReset,
}

func init() {
	def := model.DefaultServiceForm()
	for _, c := range []*cobra.Command{servicesAddCmd, servicesEditCmd} {
		c.Flags().StringVar(&flagVisitType, "visit-type", "", "Visit type name")
		c.Flags().StringVar(&flagPayer, "payer", "Private Pay", "Payer label")
		c.Flags().Float64Var(&flagLength, "length", def.SessionLength, "Session length in minutes")
		c.Flags().Float64Var(&flagAdmin, "admin", def.AdminTime, "Admin minutes per session")
		c.Flags().Float64Var(&flagRate, "rate", def.BaseRate, "Rate per session")
		c.Flags().Float64Var(&flagSessions, "sessions", def.BaseSessions, "Sessions per month")
	}
	_ = servicesAddCmd.MarkFlagRequired("visit-type")

	servicesAdjustCmd.Flags().Float64Var(&flagRate, "rate", 0, "Projected rate per session")
	servicesAdjustCmd.Flags().Float64Var(&flagSessions, "sessions", 0, "Projected sessions per month")
	servicesAdjustCmd.MarkFlagsOneRequired("rate", "sessions")

	servicesCmd.AddCommand(servicesListCmd, servicesAddCmd, servicesEditCmd, servicesRmCmd, servicesAdjustCmd, servicesResetCmd)
	rootCmd.AddCommand(servicesCmd)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// editServices loads the services, applies fn and saves the result.
func editServices(fn func(config.Config, *records.ServiceStore) (string, error)) error {
	return withStore(func(cfg config.Config, db *store.Store) error {
		entries, err := db.LoadServices()
		if err != nil {
			return err
		}
		rs := records.NewServiceStore(entries)
		msg, err := fn(cfg, rs)
		if err != nil {
			return err
		}
		if err := db.SaveServices(rs.Snapshot()); err != nil {
			return fmt.Errorf("saving services: %w", err)
		}
		saved("%s", msg)
		return nil
	})
}

func runServicesList(_ *cobra.Command, _ []string) error {
	return withStore(func(_ config.Config, db *store.Store) error {
		entries, err := db.LoadServices()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("\n  No services. Add one with `pcalc services add --visit-type ...`.")
			return nil
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(servicesTable(entries)))
		return nil
	})
}

func servicesTable(entries []model.ServiceEntry) cli.Table {
	t := cli.Table{
		Headers: []string{"ID", "Visit Type", "Payer", "Min", "Admin", "Rate", "Sessions", "Revenue"},
	}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(e.ID),
			e.VisitType,
			e.Payer,
			cli.FormatNumber(e.SessionLength),
			cli.FormatNumber(e.AdminTime),
			cli.FormatMoney(e.AdjustedRate) + " " + cli.Change(e.AdjustedRate, e.BaseRate),
			cli.FormatNumber(e.AdjustedSessions) + " " + cli.Change(e.AdjustedSessions, e.BaseSessions),
			cli.FormatMoney(e.Revenue(true)),
		})
	}
	t.Rows = append(t.Rows, []string{"---"})
	t.Rows = append(t.Rows, []string{"", "TOTAL", "", "", "", "",
		cli.FormatNumber(pipeline.CalculateTotalVisits(entries, true)),
		cli.FormatMoney(pipeline.CalculateRevenue(entries, true)),
	})
	return t
}

func formFromFlags(cmd *cobra.Command, f model.ServiceForm) model.ServiceForm {
	flags := cmd.Flags()
	if flags.Changed("visit-type") {
		f.VisitType = flagVisitType
	}
	if flags.Changed("payer") {
		f.Payer = flagPayer
	}
	if flags.Changed("length") {
		f.SessionLength = flagLength
	}
	if flags.Changed("admin") {
		f.AdminTime = flagAdmin
	}
	if flags.Changed("rate") {
		f.BaseRate = flagRate
	}
	if flags.Changed("sessions") {
		f.BaseSessions = flagSessions
	}
	return f
}

func runServicesAdd(cmd *cobra.Command, _ []string) error {
	return editServices(func(_ config.Config, rs *records.ServiceStore) (string, error) {
		f := model.DefaultServiceForm()
		f.Payer = flagPayer
		e := rs.Add(formFromFlags(cmd, f))
		return fmt.Sprintf("Added service %d (%s)", e.ID, e.VisitType), nil
	})
}

func runServicesEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return editServices(func(_ config.Config, rs *records.ServiceStore) (string, error) {
		cur, err := rs.Get(id)
		if err != nil {
			return "", fmt.Errorf("service %d: %w", id, err)
		}
		e, err := rs.Edit(id, formFromFlags(cmd, model.FormOf(cur)))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Updated service %d (%s); adjustments reset", e.ID, e.VisitType), nil
	})
}

func runServicesRm(_ *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return editServices(func(_ config.Config, rs *records.ServiceStore) (string, error) {
		if err := rs.Remove(id); err != nil {
			return "", fmt.Errorf("service %d: %w", id, err)
		}
		return fmt.Sprintf("Removed service %d", id), nil
	})
}

func runServicesAdjust(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return editServices(func(cfg config.Config, rs *records.ServiceStore) (string, error) {
		if cmd.Flags().Changed("rate") {
			if err := rs.SetAdjustedRate(id, cfg.Sliders.Rate.Clamp(flagRate)); err != nil {
				return "", fmt.Errorf("service %d: %w", id, err)
			}
		}
		if cmd.Flags().Changed("sessions") {
			if err := rs.SetAdjustedSessions(id, cfg.Sliders.Sessions.Clamp(flagSessions)); err != nil {
				return "", fmt.Errorf("service %d: %w", id, err)
			}
		}
		e, err := rs.Get(id)
		if err != nil {
			return "", fmt.Errorf("service %d: %w", id, err)
		}
		return fmt.Sprintf("Service %d now %s x %s sessions", id, cli.FormatMoney(e.AdjustedRate), cli.FormatNumber(e.AdjustedSessions)), nil
	})
}

func runServicesReset(_ *cobra.Command, _ []string) error {
	return editServices(func(_ config.Config, rs *records.ServiceStore) (string, error) {
		rs.ResetAdjusted()
		return fmt.Sprintf("Adjustments reset for %d services", rs.Len()), nil
	})
}
