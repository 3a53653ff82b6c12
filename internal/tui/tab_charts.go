package tui

import (
	"strings"

	"github.com/theirongolddev/pcalc/internal/chartdata"
	"github.com/theirongolddev/pcalc/internal/cli"
	"github.com/theirongolddev/pcalc/internal/tui/components"
	"github.com/theirongolddev/pcalc/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// stackRows lines a table's rows up with its series order for the stacked
// bar renderer. A series missing from a row contributes 0.
func stackRows(tbl chartdata.Table) []components.StackRow {
	rows := make([]components.StackRow, len(tbl.Rows))
	for i, r := range tbl.Rows {
		values := make([]float64, len(tbl.Series))
		for j, s := range tbl.Series {
			values[j] = r.Value(s)
		}
		rows[i] = components.StackRow{Label: r.Category, Values: values}
	}
	return rows
}

func stackedCard(title string, tbl chartdata.Table, outerW int, format func(float64) string) string {
	innerW := components.CardInnerWidth(outerW)
	if len(tbl.Series) == 0 || tbl.Max() == 0 {
		t := theme.Active
		dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
		return components.ContentCard(title, dim.Render("Nothing to chart."), outerW)
	}
	body := components.StackedBarChart(stackRows(tbl), tbl.Max(), innerW, format) +
		"\n" + components.Legend(tbl.Series, innerW)
	return components.ContentCard(title, body, outerW)
}

func payerCard(title string, slices []chartdata.Slice, outerW int) string {
	items := make([]components.ShareBar, len(slices))
	for i, s := range slices {
		items[i] = components.ShareBar{Label: s.Name, Value: cli.FormatMoney(s.Value), Share: s.Share}
	}
	body := components.ShareBars(items, components.CardInnerWidth(outerW))
	if body == "" {
		t := theme.Active
		body = lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("No payers.")
	}
	return components.ContentCard(title, body, outerW)
}

func formatHoursLabel(v float64) string { return cli.FormatHours(v) + "h" }

func (a App) renderChartsTab(cw int) string {
	entries := a.services.Snapshot()

	revenue := chartdata.RevenueByScenario(entries)
	hours := chartdata.HoursByScenario(entries)
	alloc := chartdata.TimeAllocation(entries)

	var b strings.Builder
	if a.isCompactLayout() {
		b.WriteString(stackedCard("Revenue by Visit Type", revenue, cw, cli.FormatMoney))
		b.WriteString("\n")
		b.WriteString(stackedCard("Hours by Visit Type", hours, cw, formatHoursLabel))
		b.WriteString("\n")
		b.WriteString(stackedCard("Time Allocation (adjusted)", alloc, cw, formatHoursLabel))
		b.WriteString("\n")
		b.WriteString(payerCard("Payer Mix (adjusted)", chartdata.PayerSlices(entries, true), cw))
		return b.String()
	}

	halves := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		stackedCard("Revenue by Visit Type", revenue, halves[0], cli.FormatMoney),
		stackedCard("Hours by Visit Type", hours, halves[1], formatHoursLabel),
	}))
	b.WriteString("\n")
	b.WriteString(components.CardRow([]string{
		stackedCard("Time Allocation (adjusted)", alloc, halves[0], formatHoursLabel),
		payerCard("Payer Mix (base)", chartdata.PayerSlices(entries, false), halves[1]),
	}))
	b.WriteString("\n")
	b.WriteString(payerCard("Payer Mix (adjusted)", chartdata.PayerSlices(entries, true), cw))
	return b.String()
}
