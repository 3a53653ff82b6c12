package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/pcalc/internal/cli"
	"github.com/theirongolddev/pcalc/internal/model"
	"github.com/theirongolddev/pcalc/internal/tui/components"
	"github.com/theirongolddev/pcalc/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// selectedService returns the service under the cursor.
func (a App) selectedService() (model.ServiceEntry, bool) {
	entries := a.services.Snapshot()
	if a.svcCursor < 0 || a.svcCursor >= len(entries) {
		return model.ServiceEntry{}, false
	}
	return entries[a.svcCursor], true
}

func (a App) updateServicesKey(key string) (tea.Model, tea.Cmd) {
	if key == "a" {
		vals := serviceValues(model.DefaultServiceForm())
		cmd := a.openForm(formServiceAdd, vals, newServiceForm("Add service", vals, a.cfg.Payers.Labels))
		return a, cmd
	}
	if key == "R" {
		a.services.ResetAdjusted()
		a.setStatus(components.StatusInfo, "all sliders reset to base")
		return a, a.servicesChanged()
	}

	e, ok := a.selectedService()
	if !ok {
		return a, nil
	}
	sl := a.cfg.Sliders

	switch key {
	case "h", "l", "H", "L":
		steps := map[string]int{"h": -1, "l": 1, "H": -5, "L": 5}[key]
		_ = a.services.SetAdjustedRate(e.ID, sl.Rate.Move(e.AdjustedRate, steps))
		return a, a.servicesChanged()

	case "-", "_", "+", "=":
		steps := 1
		if key == "-" || key == "_" {
			steps = -1
		}
		_ = a.services.SetAdjustedSessions(e.ID, sl.Sessions.Move(e.AdjustedSessions, steps))
		return a, a.servicesChanged()

	case "r":
		_ = a.services.SetAdjustedRate(e.ID, e.BaseRate)
		_ = a.services.SetAdjustedSessions(e.ID, e.BaseSessions)
		return a, a.servicesChanged()

	case "e", "enter":
		vals := serviceValues(model.FormOf(e))
		a.formTarget = e.ID
		cmd := a.openForm(formServiceEdit, vals, newServiceForm("Edit "+e.VisitType, vals, a.cfg.Payers.Labels))
		return a, cmd

	case "x", "delete":
		if err := a.services.Remove(e.ID); err != nil {
			a.setStatus(components.StatusError, "%v", err)
			return a, nil
		}
		a.setStatus(components.StatusInfo, "removed %s", e.VisitType)
		return a, a.servicesChanged()
	}
	return a, nil
}

func (a App) renderServicesTab(cw, h int) string {
	t := theme.Active
	entries := a.services.Snapshot()

	head := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	row := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	sel := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	innerW := components.CardInnerWidth(cw)
	nameW := max(innerW-78, 12)
	payerW := 14

	var b strings.Builder
	if len(entries) == 0 {
		b.WriteString(dim.Render("No services. Press a to add one."))
		return components.ContentCard("Services", b.String(), cw)
	}

	b.WriteString(head.Render(fmt.Sprintf("  %-*s %-*s %9s %9s %9s %11s %11s",
		nameW, "Visit type", payerW, "Payer", "Min+admin", "Rate", "Sessions", "Base rev", "Adj rev")))

	// Leave room for the card chrome and the slider detail below.
	listRows := max(h-12, 3)
	start, end := listWindow(a.svcCursor, len(entries), listRows)
	for i := start; i < end; i++ {
		e := entries[i]
		marker := "  "
		style := row
		if i == a.svcCursor {
			marker = "▸ "
			style = sel
		}
		line := fmt.Sprintf("%s%-*s %-*s %9s %9s %9s %11s %11s",
			marker,
			nameW, cli.Truncate(e.VisitType, nameW),
			payerW, cli.Truncate(e.Payer, payerW),
			fmt.Sprintf("%g+%g", e.SessionLength, e.AdminTime),
			cli.FormatMoney(e.AdjustedRate),
			cli.FormatNumber(e.AdjustedSessions),
			cli.FormatMoney(e.Revenue(false)),
			cli.FormatMoney(e.Revenue(true)))
		b.WriteString("\n")
		b.WriteString(style.Render(line))
	}
	if end-start < len(entries) {
		b.WriteString("\n")
		b.WriteString(dim.Render(fmt.Sprintf("  %d-%d of %d", start+1, end, len(entries))))
	}

	list := components.ContentCard("Services", b.String(), cw)

	e, _ := a.selectedService()
	return list + "\n" + components.ContentCard("Adjust "+e.VisitType, a.renderSliders(e, innerW), cw)
}

// renderSliders shows the selected service's adjusted rate and sessions on
// their configured ranges, next to the base values.
func (a App) renderSliders(e model.ServiceEntry, innerW int) string {
	t := theme.Active
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sl := a.cfg.Sliders
	trackW := max(innerW-60, 10)

	line := func(name, val string, v, lo, hi float64, base, change string) string {
		return label.Render(fmt.Sprintf("%-10s", name)) +
			components.Slider(v, lo, hi, trackW) +
			value.Render(fmt.Sprintf(" %9s", val)) +
			dim.Render(fmt.Sprintf("  base %s %s", base, change))
	}

	return strings.Join([]string{
		line("Rate", cli.FormatMoney(e.AdjustedRate), e.AdjustedRate, sl.Rate.Min, sl.Rate.Max,
			cli.FormatMoney(e.BaseRate), cli.FormatChange(e.AdjustedRate, e.BaseRate)),
		line("Sessions", cli.FormatNumber(e.AdjustedSessions), e.AdjustedSessions, sl.Sessions.Min, sl.Sessions.Max,
			cli.FormatNumber(e.BaseSessions), cli.FormatChange(e.AdjustedSessions, e.BaseSessions)),
		label.Render(fmt.Sprintf("%-10s", "Revenue")) +
			value.Render(cli.FormatMoney(e.Revenue(true))) +
			dim.Render(fmt.Sprintf("  base %s %s", cli.FormatMoney(e.Revenue(false)),
				cli.FormatChange(e.Revenue(true), e.Revenue(false)))),
	}, "\n")
}
