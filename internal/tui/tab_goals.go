package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/pcalc/internal/cli"
	"github.com/theirongolddev/pcalc/internal/goals"
	"github.com/theirongolddev/pcalc/internal/model"
	"github.com/theirongolddev/pcalc/internal/tui/components"
	"github.com/theirongolddev/pcalc/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (a App) updateGoalsKey(key string) (tea.Model, tea.Cmd) {
	if key == "a" {
		if a.tracker.Full() {
			a.setStatus(components.StatusError, "at most %d goals; remove one first", goals.MaxGoals)
			return a, nil
		}
		kinds := a.tracker.AvailableKinds()
		if len(kinds) == 0 {
			a.setStatus(components.StatusError, "every metric already has a goal")
			return a, nil
		}
		vals := &formValues{metric: string(kinds[0]), comparison: string(model.AtLeast)}
		cmd := a.openForm(formGoalAdd, vals, newGoalForm("Add goal", vals, kinds))
		return a, cmd
	}

	list := a.tracker.Goals()
	if a.goalCursor < 0 || a.goalCursor >= len(list) {
		return a, nil
	}
	g := list[a.goalCursor]

	switch key {
	case "e", "enter":
		// The goal's own metric stays selectable alongside the unused ones.
		kinds := append([]model.MetricKind{g.Metric}, a.tracker.AvailableKinds()...)
		vals := goalValues(g)
		a.formGoal = g.ID
		cmd := a.openForm(formGoalEdit, vals, newGoalForm("Edit goal", vals, kinds))
		return a, cmd

	case "x", "delete":
		if err := a.tracker.Remove(g.ID); err != nil {
			a.setStatus(components.StatusError, "%v", err)
			return a, nil
		}
		a.setStatus(components.StatusInfo, "removed %s goal", g.Metric.Title())
		return a, a.goalsChanged()
	}
	return a, nil
}

func (a App) renderGoalsTab(cw int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(cw)

	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	sel := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface)
	metStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true)
	missStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Bold(true)

	title := fmt.Sprintf("Goals (%d/%d)", a.tracker.Len(), goals.MaxGoals)
	if len(a.results) == 0 {
		return components.ContentCard(title, dim.Render("No goals yet. Press a to add one."), cw)
	}

	labelW := 16
	barW := max(innerW-labelW-60, 8)

	var b strings.Builder
	for i, r := range a.results {
		if i > 0 {
			b.WriteString("\n\n")
		}
		marker := space.Render("  ")
		if i == a.goalCursor {
			marker = sel.Render("▸ ")
		}
		b.WriteString(marker)
		b.WriteString(components.GoalBar(r.Goal.Metric.Title(), r.Progress(), r.Met, goalNote(r), labelW, barW))
		b.WriteString("\n")
		b.WriteString(space.Render("  "))

		if r.Met {
			b.WriteString(metStyle.Render("✓ met"))
			continue
		}
		b.WriteString(missStyle.Render("✗ not met"))
		// An unmet floor is short of target; an unmet cap is past it.
		word := "to go"
		if r.Goal.Comparison == model.NoMoreThan {
			word = "over"
		}
		b.WriteString(dim.Render(fmt.Sprintf("  %s %s", cli.FormatMetric(r.Goal.Metric, math.Abs(r.Delta)), word)))
	}
	return components.ContentCard(title, b.String(), cw)
}
