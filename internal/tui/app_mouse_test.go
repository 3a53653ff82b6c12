package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	names := []string{"Overview", "Services", "Charts", "Income", "Goals"}

	for active := range names {
		a := App{activeTab: active}
		pos := 0

		for i, name := range names {
			w := len(name) + 2 // horizontal padding in tab renderer
			x := pos + w/2     // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w
			if i < len(names)-1 {
				pos++ // separator
			}
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Fatalf("x past last tab -> %d, want -1", got)
		}
	}
}

func TestMouseClickSwitchesTab(t *testing.T) {
	a := newTestApp(t)

	// "Overview" (10) + separator + "Services" (10): x=15 is inside Services.
	m, _ := a.Update(tea.MouseMsg{X: 15, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := m.(App).activeTab; got != tabServices {
		t.Fatalf("activeTab = %d, want %d", got, tabServices)
	}

	// Clicks below the tab bar are ignored.
	m, _ = m.(App).Update(tea.MouseMsg{X: 30, Y: 3, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := m.(App).activeTab; got != tabServices {
		t.Fatalf("activeTab after body click = %d", got)
	}
}

func TestMouseWheelMovesCursor(t *testing.T) {
	a := newTestApp(t)
	a.activeTab = tabServices

	m, _ := a.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if got := m.(App).svcCursor; got != 1 {
		t.Fatalf("cursor = %d, want 1", got)
	}
	// Wheel past the end stays on the last row.
	m, _ = m.(App).Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if got := m.(App).svcCursor; got != 1 {
		t.Fatalf("cursor = %d, want 1", got)
	}
}
