package components

import (
	"strings"

	"github.com/theirongolddev/pcalc/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// StatusKind selects the color of the status bar message.
type StatusKind int

// Status message kinds.
const (
	StatusInfo StatusKind = iota
	StatusSaved
	StatusError
)

// RenderStatusBar renders the bottom status bar: key hints on the left and
// the latest message on the right.
func RenderStatusBar(width int, hints, message string, kind StatusKind) string {
	t := theme.Active

	base := lipgloss.NewStyle().Background(t.Surface)
	hintStyle := base.Foreground(t.TextMuted)

	msgColor := t.TextDim
	switch kind {
	case StatusSaved:
		msgColor = t.Green
	case StatusError:
		msgColor = t.Red
	}
	msgStyle := base.Foreground(msgColor)

	left := hintStyle.Render(" " + hints)
	right := ""
	if message != "" {
		right = msgStyle.Render(message + " ")
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		// Drop the hints before the message.
		left = ""
		gap = max(0, width-lipgloss.Width(right))
	}

	return left + base.Render(strings.Repeat(" ", gap)) + right
}
