package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/pcalc/internal/cli"
	"github.com/theirongolddev/pcalc/internal/model"
	"github.com/theirongolddev/pcalc/internal/pipeline"
	"github.com/theirongolddev/pcalc/internal/tui/components"
	"github.com/theirongolddev/pcalc/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// nextIncomeKind cycles through the income variants.
func nextIncomeKind(k model.IncomeKind) model.IncomeKind {
	for i, kind := range model.IncomeKinds {
		if kind == k {
			return model.IncomeKinds[(i+1)%len(model.IncomeKinds)]
		}
	}
	return model.IncomeClient
}

func (a App) updateIncomeKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "a":
		e := a.income.AddClient()
		a.incCursor = a.income.Len() - 1
		a.setStatus(components.StatusInfo, "added %s", e.Name())
		return a, a.incomeChanged()

	case "[", "]":
		steps := 1
		if key == "[" {
			steps = -1
		}
		a.income.SetWeeksOff(a.cfg.Sliders.WeeksOff.Move(a.income.WeeksOff(), steps))
		return a, a.incomeChanged()

	case "m":
		vals := &formValues{}
		if a.hasGoal {
			vals.amount = formatInput(a.incomeGoal)
		}
		cmd := a.openForm(formIncomeGoal, vals, newIncomeGoalForm(vals))
		return a, cmd

	case "u":
		a.incomeGoal = float64(a.annual)
		a.hasGoal = a.incomeGoal > 0
		a.setStatus(components.StatusInfo, "goal set to %s", cli.FormatMoney(a.incomeGoal))
		return a, a.incomeGoalChanged()

	case "z":
		a.incomeGoal, a.hasGoal = 0, false
		a.setStatus(components.StatusInfo, "goal cleared")
		return a, a.incomeGoalChanged()

	case "R":
		a.income.Reset()
		a.incCursor = 0
		a.setStatus(components.StatusInfo, "income sources reset")
		return a, a.incomeChanged()
	}

	e, err := a.income.Get(a.incCursor)
	if err != nil {
		return a, nil
	}

	switch key {
	case "t":
		changed, err := a.income.ChangeKind(a.incCursor, nextIncomeKind(e.Kind()))
		if err != nil {
			a.setStatus(components.StatusError, "%v", err)
			return a, nil
		}
		a.setStatus(components.StatusInfo, "now %s", changed.Kind().Title())
		return a, a.incomeChanged()

	case "e", "enter":
		vals := incomeValues(e)
		a.formTarget = a.incCursor
		cmd := a.openForm(formIncomeEdit, vals, newIncomeForm(e, vals))
		return a, cmd

	case "x", "delete":
		if err := a.income.Remove(a.incCursor); err != nil {
			a.setStatus(components.StatusError, "%v", err)
			return a, nil
		}
		a.setStatus(components.StatusInfo, "removed %s", e.Name())
		return a, a.incomeChanged()
	}
	return a, nil
}

func (a App) renderIncomeTab(cw, h int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	head := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	row := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	sel := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	incomes := a.income.Incomes()
	weeksOff := a.income.WeeksOff()

	// Sources
	kindW := 20
	nameW := max(innerW-kindW-48, 12)
	var list strings.Builder
	if len(incomes) == 0 {
		list.WriteString(dim.Render("No income sources. Press a to add a client source."))
	} else {
		list.WriteString(head.Render(fmt.Sprintf("  %-*s %-*s %-30s %12s",
			nameW, "Label", kindW, "Type", "Inputs", "Per year")))
		listRows := max(h-14, 3)
		start, end := listWindow(a.incCursor, len(incomes), listRows)
		for i := start; i < end; i++ {
			e := incomes[i]
			marker := "  "
			style := row
			if i == a.incCursor {
				marker = "▸ "
				style = sel
			}
			list.WriteString("\n")
			list.WriteString(style.Render(fmt.Sprintf("%s%-*s %-*s %-30s %12s",
				marker,
				nameW, cli.Truncate(e.Name(), nameW),
				kindW, cli.Truncate(e.Kind().Title(), kindW),
				cli.Truncate(cli.FormatIncomeDetail(e), 30),
				cli.FormatMoney(float64(pipeline.IncomeContribution(e, weeksOff))))))
		}
		if end-start < len(incomes) {
			list.WriteString("\n")
			list.WriteString(dim.Render(fmt.Sprintf("  %d-%d of %d", start+1, end, len(incomes))))
		}
	}

	// Totals, weeks off and goal
	sl := a.cfg.Sliders.WeeksOff
	trackW := max(innerW-50, 10)
	var totals strings.Builder
	totals.WriteString(label.Render(fmt.Sprintf("%-12s", "Weeks off")))
	totals.WriteString(components.Slider(weeksOff, sl.Min, sl.Max, trackW))
	totals.WriteString(value.Render(fmt.Sprintf(" %s", cli.FormatNumber(weeksOff))))
	totals.WriteString(dim.Render(fmt.Sprintf("  (%s working weeks)", cli.FormatNumber(pipeline.WorkingWeeks(weeksOff)))))
	totals.WriteString("\n")
	totals.WriteString(label.Render(fmt.Sprintf("%-12s", "Annual")))
	totals.WriteString(value.Render(cli.FormatMoney(float64(a.annual))))
	totals.WriteString(dim.Render(fmt.Sprintf("  %s/mo", cli.FormatMoney(float64(a.annual)/12))))
	totals.WriteString("\n")
	if line := a.incomeGoalLine(); line != "" {
		totals.WriteString(line)
	} else {
		totals.WriteString(dim.Render("No goal set. Press m to set one or u to use the current total."))
	}

	return components.ContentCard("Income Sources", list.String(), cw) + "\n" +
		components.ContentCard("Annual Income", totals.String(), cw)
}
