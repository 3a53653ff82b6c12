package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/pcalc/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForProgress returns green once a goal is met, otherwise a color
// stepping from red to yellow as progress grows.
func ColorForProgress(pct float64, met bool) string {
	t := theme.Active
	switch {
	case met:
		return string(t.Green)
	case pct >= 0.75:
		return string(t.Yellow)
	case pct >= 0.4:
		return string(t.Orange)
	default:
		return string(t.Red)
	}
}

// GoalBar renders a labeled progress bar with percentage and a trailing
// note (usually the current vs target values).
func GoalBar(label string, pct float64, met bool, note string, labelW, barWidth int) string {
	t := theme.Active

	pct = min(max(pct, 0), 1)
	color := ColorForProgress(pct, met)

	bar := progress.New(
		progress.WithSolidFill(color),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Background(t.Surface).Bold(true)
	noteStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	if lipgloss.Width(label) > labelW {
		label = string([]rune(label)[:max(labelW-1, 0)]) + "…"
	}

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100)) +
		spaceStyle.Render("  ") +
		noteStyle.Render(note)
}

// Slider renders a value on a track between lo and hi, e.g. the adjusted
// rate of a service within the configured slider range.
func Slider(value, lo, hi float64, width int) string {
	t := theme.Active
	if width < 3 {
		width = 3
	}
	pos := 0
	if hi > lo {
		frac := min(max((value-lo)/(hi-lo), 0), 1)
		pos = int(frac * float64(width-1))
	}

	trackStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	fillStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	knobStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)

	return fillStyle.Render(strings.Repeat("━", pos)) +
		knobStyle.Render("●") +
		trackStyle.Render(strings.Repeat("─", width-pos-1))
}
