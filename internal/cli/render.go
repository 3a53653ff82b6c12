package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorPurple    = lipgloss.Color("#8B7EC8")
	ColorYellow    = lipgloss.Color("#D0A215")
)

// seriesColors cycles through chart series in legend order.
var seriesColors = []lipgloss.Color{ColorBlue, ColorGreen, ColorOrange, ColorPurple, ColorYellow, ColorAccent, ColorRed}

// SeriesColor returns the color for the i-th chart series.
func SeriesColor(i int) lipgloss.Color {
	return seriesColors[i%len(seriesColors)]
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)

	upStyle   = lipgloss.NewStyle().Foreground(ColorGreen)
	downStyle = lipgloss.NewStyle().Foreground(ColorRed)
)

// Table represents a bordered text table for CLI output.
// A row holding the single cell "---" renders as a separator.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// Muted renders s in the muted text color.
func Muted(s string) string { return mutedStyle.Render(s) }

// Header renders s as a section header.
func Header(s string) string { return headerStyle.Render(s) }

// Change renders a FormatChange string colored by direction.
func Change(value, base float64) string {
	s := FormatChange(value, base)
	switch {
	case s == "":
		return ""
	case value > base:
		return upStyle.Render(s)
	default:
		return downStyle.Render(s)
	}
}

// Status renders a met/missed marker.
func Status(met bool) string {
	if met {
		return upStyle.Render("met")
	}
	return downStyle.Render("not met")
}

func (t Table) columnWidths(numCols int) []int {
	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}
	for i, h := range t.Headers {
		widths[i] = max(widths[i], lipgloss.Width(h))
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	return widths
}

func borderLine(b *strings.Builder, widths []int, left, mid, right string) {
	b.WriteString(dimStyle.Render(left))
	for i, w := range widths {
		b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
		if i < len(widths)-1 {
			b.WriteString(dimStyle.Render(mid))
		}
	}
	b.WriteString(dimStyle.Render(right))
	b.WriteString("\n")
}

// pad aligns cell within w display columns. Cells may carry ANSI styling,
// so widths are measured with lipgloss rather than len.
func pad(cell string, w int, right bool) string {
	gap := strings.Repeat(" ", max(0, w-lipgloss.Width(cell)))
	if right {
		return " " + gap + cell + " "
	}
	return " " + cell + gap + " "
}

// RenderTable renders a bordered table with headers and rows. The first
// column is left-aligned; the rest are right-aligned.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	numCols := len(t.Headers)
	if numCols == 0 {
		numCols = len(t.Rows[0])
	}
	widths := t.columnWidths(numCols)

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	borderLine(&b, widths, "╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(pad(h, widths[i], i > 0)))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
		borderLine(&b, widths, "├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			borderLine(&b, widths, "├", "┼", "┤")
			continue
		}
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(valueStyle.Render(pad(cell, widths[i], i > 0)))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
	}

	borderLine(&b, widths, "╰", "┴", "╯")
	return b.String()
}

// RenderGoalBar renders a goal progress bar with the percentage reached.
// progress is clamped to 0-1.
func RenderGoalBar(progress float64, width int) string {
	progress = min(1, max(0, progress))
	filled := int(progress * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := upStyle
	if progress < 1 {
		style = mutedStyle
	}
	return fmt.Sprintf("%s %3s", style.Render(bar), FormatPercent(progress))
}

// Segment is one colored part of a stacked bar.
type Segment struct {
	Label string
	Value float64
}

// RenderStackedBar renders segments as one bar scaled so that maxTotal
// spans width cells. Segments keep their colors by position.
func RenderStackedBar(segments []Segment, maxTotal float64, width int) string {
	if maxTotal <= 0 {
		return ""
	}
	var b strings.Builder
	used := 0
	for i, s := range segments {
		n := int(s.Value / maxTotal * float64(width))
		if n <= 0 {
			continue
		}
		n = min(n, width-used)
		used += n
		b.WriteString(lipgloss.NewStyle().Foreground(SeriesColor(i)).Render(strings.Repeat("█", n)))
	}
	return b.String()
}

// RenderLegend renders "■ label" entries in series colors.
func RenderLegend(labels []string) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = lipgloss.NewStyle().Foreground(SeriesColor(i)).Render("■") + " " + mutedStyle.Render(l)
	}
	return strings.Join(parts, "  ")
}
