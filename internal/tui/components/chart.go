package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/pcalc/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// SeriesColor returns the palette color for the i-th series, cycling.
func SeriesColor(i int) lipgloss.Color {
	series := theme.Active.Series
	return series[i%len(series)]
}

// StackRow is one horizontal bar; Values align with the chart's series.
type StackRow struct {
	Label  string
	Values []float64
}

func (r StackRow) total() float64 {
	var sum float64
	for _, v := range r.Values {
		sum += v
	}
	return sum
}

// segmentWidths splits a bar of barW cells across values scaled against
// maxTotal. Rounding error goes to the largest segment so the bar length
// tracks the total.
func segmentWidths(values []float64, maxTotal float64, barW int) []int {
	widths := make([]int, len(values))
	if maxTotal <= 0 || barW <= 0 {
		return widths
	}
	var sum float64
	largest, used := -1, 0
	for i, v := range values {
		if v <= 0 {
			continue
		}
		sum += v
		widths[i] = int(v / maxTotal * float64(barW))
		used += widths[i]
		if largest < 0 || v > values[largest] {
			largest = i
		}
	}
	if largest >= 0 {
		want := int(math.Round(sum / maxTotal * float64(barW)))
		widths[largest] += min(want, barW) - used
		widths[largest] = max(widths[largest], 0)
	}
	return widths
}

// StackedBarChart renders one labeled horizontal bar per row, each bar a
// stack of colored series segments, followed by the row total.
func StackedBarChart(rows []StackRow, maxTotal float64, width int, format func(float64) string) string {
	if len(rows) == 0 {
		return ""
	}
	t := theme.Active

	labelW := 0
	totalW := 0
	for _, r := range rows {
		labelW = max(labelW, lipgloss.Width(r.Label))
		totalW = max(totalW, lipgloss.Width(format(r.total())))
	}
	labelW = min(labelW, 18)
	barW := max(width-labelW-totalW-2, 5)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	totalStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		label := r.Label
		if lipgloss.Width(label) > labelW {
			label = string([]rune(label)[:labelW-1]) + "…"
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)))
		b.WriteString(spaceStyle.Render(" "))

		filled := 0
		for j, w := range segmentWidths(r.Values, maxTotal, barW) {
			if w == 0 {
				continue
			}
			seg := lipgloss.NewStyle().Foreground(SeriesColor(j)).Background(t.Surface)
			b.WriteString(seg.Render(strings.Repeat("█", w)))
			filled += w
		}
		b.WriteString(spaceStyle.Render(strings.Repeat(" ", max(barW-filled, 0)+1)))
		b.WriteString(totalStyle.Render(fmt.Sprintf("%*s", totalW, format(r.total()))))
	}
	return b.String()
}

// Legend renders a colored key for the series names, wrapped to width.
func Legend(series []string, width int) string {
	t := theme.Active
	nameStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var lines []string
	line, lineW := "", 0
	for i, s := range series {
		swatch := lipgloss.NewStyle().Foreground(SeriesColor(i)).Background(t.Surface).Render("■")
		item := swatch + nameStyle.Render(" "+s)
		itemW := lipgloss.Width(item)
		if lineW > 0 && lineW+2+itemW > width {
			lines = append(lines, line)
			line, lineW = "", 0
		}
		if lineW > 0 {
			line += spaceStyle.Render("  ")
			lineW += 2
		}
		line += item
		lineW += itemW
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// ShareBar is one row of a share chart.
type ShareBar struct {
	Label string
	Value string
	Share float64 // 0-1
}

// ShareBars renders a list of labeled bars sized by share, each followed by
// its value and percentage. Used where a pie chart would be.
func ShareBars(items []ShareBar, width int) string {
	if len(items) == 0 {
		return ""
	}
	t := theme.Active

	labelW, valueW := 0, 0
	for _, it := range items {
		labelW = max(labelW, lipgloss.Width(it.Label))
		valueW = max(valueW, lipgloss.Width(it.Value))
	}
	labelW = min(labelW, 18)
	barW := max(width-labelW-valueW-8, 5)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		label := it.Label
		if lipgloss.Width(label) > labelW {
			label = string([]rune(label)[:labelW-1]) + "…"
		}
		filled := int(math.Round(math.Max(0, math.Min(1, it.Share)) * float64(barW)))
		barStyle := lipgloss.NewStyle().Foreground(SeriesColor(i)).Background(t.Surface)

		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)))
		b.WriteString(spaceStyle.Render(" "))
		b.WriteString(barStyle.Render(strings.Repeat("█", filled)))
		b.WriteString(emptyStyle.Render(strings.Repeat("░", barW-filled)))
		b.WriteString(spaceStyle.Render(" "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%*s", valueW, it.Value)))
		b.WriteString(pctStyle.Render(fmt.Sprintf(" %4.0f%%", it.Share*100)))
	}
	return b.String()
}
