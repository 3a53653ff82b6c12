package components

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/theirongolddev/pcalc/internal/tui/theme"
)

func TestSegmentWidths(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		maxTotal float64
		barW     int
		want     int
	}{
		{"full bar", []float64{1500, 1800}, 3300, 30, 30},
		{"half bar", []float64{1, 1}, 4, 20, 10},
		{"missing series", []float64{0, 2}, 2, 10, 10},
		{"zero max", []float64{0, 0}, 0, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := 0
			for _, w := range segmentWidths(tt.values, tt.maxTotal, tt.barW) {
				if w < 0 {
					t.Fatalf("negative segment width %d", w)
				}
				sum += w
			}
			if sum != tt.want {
				t.Fatalf("bar length = %d, want %d", sum, tt.want)
			}
		})
	}
}

func TestStackedBarChartRowsFitWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	chart := StackedBarChart([]StackRow{
		{Label: "Base", Values: []float64{1500, 1800}},
		{Label: "Adjusted", Values: []float64{2250, 1800}},
	}, 4050, 60, func(v float64) string { return fmt.Sprintf("$%.0f", v) })

	lines := strings.Split(chart, "\n")
	if len(lines) != 2 {
		t.Fatalf("rows = %d, want 2", len(lines))
	}
	if lipgloss.Width(lines[0]) != lipgloss.Width(lines[1]) {
		t.Fatalf("row widths differ: %d vs %d", lipgloss.Width(lines[0]), lipgloss.Width(lines[1]))
	}
}

func TestTabVisualWidth(t *testing.T) {
	tab := Tab{Name: "Income", Key: 'i', KeyPos: 0}
	if w := TabVisualWidth(tab, false); w != 8 {
		t.Fatalf("width = %d, want 8", w)
	}
	odd := Tab{Name: "Settings", Key: 'x', KeyPos: -1}
	if w := TabVisualWidth(odd, false); w != 13 {
		t.Fatalf("inactive width = %d, want 13", w)
	}
	if w := TabVisualWidth(odd, true); w != 10 {
		t.Fatalf("active width = %d, want 10", w)
	}
}

func TestTabIdxByName(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"overview", 0},
		{"Goals", 4},
		{" income ", 3},
		{"c", 2},
		{"costs", -1},
		{"", -1},
	}
	for _, tt := range tests {
		if got := TabIdxByName(tt.in); got != tt.want {
			t.Fatalf("TabIdxByName(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
