package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/pcalc/internal/cli"
	"github.com/theirongolddev/pcalc/internal/goals"
	"github.com/theirongolddev/pcalc/internal/model"
	"github.com/theirongolddev/pcalc/internal/pipeline"
	"github.com/theirongolddev/pcalc/internal/tui/components"
	"github.com/theirongolddev/pcalc/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// metricCards builds the base-vs-adjusted cards for the summary row.
func metricCards(sum model.PracticeSummary) []components.Metric {
	b, adj := sum.Base, sum.Adjusted
	card := func(label string, kind model.MetricKind, base, value float64) components.Metric {
		return components.Metric{
			Label:  label,
			Value:  cli.FormatMetric(kind, value),
			Base:   cli.FormatMetric(kind, base),
			Change: cli.FormatChange(value, base),
			Delta:  value - base,
		}
	}
	return []components.Metric{
		card("Monthly Revenue", model.MetricRevenue, b.Revenue, adj.Revenue),
		card("Monthly Visits", model.MetricVisits, b.Visits, adj.Visits),
		card("Blended Rate", model.MetricBlendedRate, b.BlendedRate, adj.BlendedRate),
		card("Total Hours", model.MetricTotalHours, b.Hours.Total, adj.Hours.Total),
	}
}

func (a App) renderOverviewTab(cw int) string {
	var b strings.Builder

	// Row 1: metric cards
	cards := metricCards(a.summary)
	if a.isCompactLayout() {
		b.WriteString(components.MetricCardRow(cards[:2], cw))
		b.WriteString("\n")
		b.WriteString(components.MetricCardRow(cards[2:], cw))
	} else {
		b.WriteString(components.MetricCardRow(cards, cw))
	}
	b.WriteString("\n")

	// Row 2: goals + hours split
	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Goals", a.renderGoalBars(components.CardInnerWidth(cw)), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Hours (adjusted)", a.renderHoursSplit(), cw))
	} else {
		halves := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			components.ContentCard("Goals", a.renderGoalBars(components.CardInnerWidth(halves[0])), halves[0]),
			components.ContentCard("Hours (adjusted)", a.renderHoursSplit(), halves[1]),
		}))
	}
	b.WriteString("\n")

	// Row 3: breakdown by visit type
	b.WriteString(components.ContentCard("By Visit Type", a.renderBreakdown(components.CardInnerWidth(cw)), cw))
	b.WriteString("\n")

	// Row 4: simple income calculator
	b.WriteString(components.ContentCard("Annual Income", a.renderIncomeSummary(), cw))

	return b.String()
}

// goalNote is the "current / target" trailer shown next to a goal bar.
func goalNote(r goals.Result) string {
	kind := r.Goal.Metric
	return fmt.Sprintf("%s / %s %s",
		cli.FormatMetric(kind, r.Current),
		r.Goal.Comparison.Title(),
		cli.FormatMetric(kind, r.Goal.Target))
}

func (a App) renderGoalBars(innerW int) string {
	t := theme.Active
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	if len(a.results) == 0 {
		return dim.Render("No goals yet. Press g then a to add one.")
	}

	labelW := 16
	barW := max(innerW-labelW-36, 8)

	lines := make([]string, len(a.results))
	for i, r := range a.results {
		lines[i] = components.GoalBar(r.Goal.Metric.Title(), r.Progress(), r.Met, goalNote(r), labelW, barW)
	}
	return strings.Join(lines, "\n")
}

func (a App) renderHoursSplit() string {
	t := theme.Active
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	base, adj := a.summary.Base.Hours, a.summary.Adjusted.Hours
	row := func(name string, v, bv float64) string {
		return label.Render(fmt.Sprintf("%-8s", name)) +
			value.Render(fmt.Sprintf("%8sh", cli.FormatHours(v))) +
			dim.Render(fmt.Sprintf("  base %sh %s", cli.FormatHours(bv), cli.FormatChange(v, bv)))
	}
	return strings.Join([]string{
		row("Therapy", adj.Therapy, base.Therapy),
		row("Admin", adj.Admin, base.Admin),
		row("Total", adj.Total, base.Total),
	}, "\n")
}

func (a App) renderBreakdown(innerW int) string {
	t := theme.Active
	head := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	cell := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	total := cell.Bold(true)

	if len(a.breakdown) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("No services.")
	}

	nameW := max(innerW-64, 12)
	format := func(r pipeline.VisitTypeBreakdown) string {
		return fmt.Sprintf("%-*s %4d %11s %11s %9s %9s %6.1f%%",
			nameW, cli.Truncate(r.VisitType, nameW), r.Services,
			cli.FormatMoney(r.BaseRevenue), cli.FormatMoney(r.AdjustedRevenue),
			cli.FormatHours(r.BaseHours), cli.FormatHours(r.AdjustedHours),
			r.RevenueSharePct)
	}

	lines := []string{head.Render(fmt.Sprintf("%-*s %4s %11s %11s %9s %9s %7s",
		nameW, "Visit type", "Svc", "Base rev", "Adj rev", "Base hrs", "Adj hrs", "Share"))}
	for _, r := range a.breakdown {
		lines = append(lines, cell.Render(format(r)))
	}
	lines = append(lines, total.Render(format(a.totals)))
	return strings.Join(lines, "\n")
}

func (a App) renderIncomeSummary() string {
	t := theme.Active
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	s := label.Render("Projected ") + value.Render(cli.FormatMoney(float64(a.annual))) +
		label.Render(fmt.Sprintf("/yr from %d sources, %s weeks off",
			a.income.Len(), cli.FormatNumber(a.income.WeeksOff())))
	if line := a.incomeGoalLine(); line != "" {
		s += "\n" + line
	}
	return s
}

// incomeGoalLine renders the goal comparison, or "" when no goal is set.
func (a App) incomeGoalLine() string {
	t := theme.Active
	pct, ok := pipeline.GoalPercent(float64(a.annual), a.incomeGoal)
	if !a.hasGoal || !ok {
		return ""
	}
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	color := t.Red
	if pct >= 0 {
		color = t.Green
	}
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	return label.Render("Goal "+cli.FormatMoney(a.incomeGoal)+"  ") +
		pctStyle.Render(cli.FormatGoalPercent(pct)) +
		label.Render(" vs goal")
}
