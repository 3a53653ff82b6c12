// Package tui provides the interactive Bubble Tea dashboard for pcalc.
package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/pcalc/internal/cli"
	"github.com/theirongolddev/pcalc/internal/config"
	"github.com/theirongolddev/pcalc/internal/goals"
	"github.com/theirongolddev/pcalc/internal/model"
	"github.com/theirongolddev/pcalc/internal/pipeline"
	"github.com/theirongolddev/pcalc/internal/records"
	"github.com/theirongolddev/pcalc/internal/store"
	"github.com/theirongolddev/pcalc/internal/tui/components"
	"github.com/theirongolddev/pcalc/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// Tab indices, matching components.Tabs.
const (
	tabOverview = iota
	tabServices
	tabCharts
	tabIncome
	tabGoals
)

// App is the root Bubble Tea model.
type App struct {
	cfg config.Config

	// Records
	services   *records.ServiceStore
	tracker    *goals.Tracker
	income     *records.IncomeStore
	incomeGoal float64
	hasGoal    bool

	// Recomputed after every change
	summary   model.PracticeSummary
	results   []goals.Result
	totals    pipeline.VisitTypeBreakdown
	breakdown []pipeline.VisitTypeBreakdown
	annual    int64

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab cursors
	svcCursor  int
	incCursor  int
	goalCursor int

	// Modal form (huh); formVals is shared with the form's bound fields
	form       *huh.Form
	formVals   *formValues
	formKind   formKind
	formTarget int       // service ID or income position
	formGoal   uuid.UUID // goal being edited

	status     string
	statusKind components.StatusKind

	// Background writes in flight; the spinner runs while any are pending
	saver   *persister
	pending int
	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5
)

// NewApp loads every snapshot from db and returns a ready model. A nil db
// starts from defaults and never persists.
func NewApp(cfg config.Config, db *store.Store) (App, error) {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		cfg:     cfg,
		saver:   newPersister(db),
		spinner: sp,
	}

	services := model.DefaultServices()
	var goalList []model.GoalMetric
	incomeState := model.DefaultIncomeState()

	if db != nil {
		var err error
		if services, err = db.LoadServices(); err != nil {
			return App{}, fmt.Errorf("loading services: %w", err)
		}
		if goalList, err = db.LoadGoals(); err != nil {
			return App{}, fmt.Errorf("loading goals: %w", err)
		}
		if incomeState, err = db.LoadIncomeState(); err != nil {
			return App{}, fmt.Errorf("loading income: %w", err)
		}
		if a.incomeGoal, a.hasGoal, err = db.LoadIncomeGoal(); err != nil {
			return App{}, fmt.Errorf("loading income goal: %w", err)
		}
	}

	a.services = records.NewServiceStore(services)
	a.tracker = goals.NewTracker(goalList)
	a.income = records.NewIncomeStore(incomeState)
	a.recompute()

	if !config.Exists() {
		a.setStatus(components.StatusInfo, "no config file; run `pcalc setup` to pick payers and theme")
	}
	return a, nil
}

// WithTab returns a copy of the app opened on the named tab.
func (a App) WithTab(name string) (App, error) {
	idx := components.TabIdxByName(name)
	if idx < 0 {
		return a, fmt.Errorf("unknown tab %q", name)
	}
	a.activeTab = idx
	return a, nil
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// recompute refreshes every derived figure from the records.
func (a *App) recompute() {
	entries := a.services.Snapshot()
	a.summary = pipeline.Summarize(entries)
	a.results = a.tracker.Check(a.summary.Adjusted)
	a.totals, a.breakdown = pipeline.AggregateVisitTypes(entries)
	a.annual = pipeline.CalculateAnnualIncome(a.income.Incomes(), a.income.WeeksOff())

	a.svcCursor = clampCursor(a.svcCursor, a.services.Len())
	a.incCursor = clampCursor(a.incCursor, a.income.Len())
	a.goalCursor = clampCursor(a.goalCursor, a.tracker.Len())
}

func clampCursor(c, n int) int {
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	return c
}

func (a *App) setStatus(kind components.StatusKind, format string, args ...any) {
	a.statusKind = kind
	a.status = fmt.Sprintf(format, args...)
}

// ─── Persistence ────────────────────────────────────────────────

// persist schedules a snapshot write and starts the spinner for the first
// write in flight.
func (a *App) persist(key string, fn func(*store.Store) error) tea.Cmd {
	cmd := a.saver.save(key, fn)
	if cmd == nil {
		return nil
	}
	a.pending++
	if a.pending == 1 {
		return tea.Batch(cmd, a.spinner.Tick)
	}
	return cmd
}

func (a *App) servicesChanged() tea.Cmd {
	a.recompute()
	entries := a.services.Snapshot()
	return a.persist(store.KeyServices, func(s *store.Store) error {
		return s.SaveServices(entries)
	})
}

func (a *App) goalsChanged() tea.Cmd {
	a.recompute()
	list := a.tracker.Goals()
	return a.persist(store.KeyGoals, func(s *store.Store) error {
		return s.SaveGoals(list)
	})
}

func (a *App) incomeChanged() tea.Cmd {
	a.recompute()
	st := a.income.State()
	return a.persist(store.KeyIncomeState, func(s *store.Store) error {
		return s.SaveIncomeState(st)
	})
}

func (a *App) incomeGoalChanged() tea.Cmd {
	if !a.hasGoal {
		return a.persist(store.KeyIncomeGoal, (*store.Store).ClearIncomeGoal)
	}
	goal := a.incomeGoal
	return a.persist(store.KeyIncomeGoal, func(s *store.Store) error {
		return s.SaveIncomeGoal(goal)
	})
}

// ─── Update ─────────────────────────────────────────────────────

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth()).WithHeight(msg.Height)
		}
		return a, nil

	case SavedMsg:
		a.pending = max(a.pending-1, 0)
		if msg.Skipped {
			return a, nil
		}
		if msg.Err != nil {
			a.setStatus(components.StatusError, "save failed: %v", msg.Err)
		} else {
			a.setStatus(components.StatusSaved, "saved")
		}
		return a, nil

	case spinner.TickMsg:
		if a.pending == 0 {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.MouseMsg:
		if a.showHelp || a.form != nil {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.moveCursor(-1)
			return a, nil

		case tea.MouseButtonWheelDown:
			a.moveCursor(1)
			return a, nil

		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		// An open form takes every key; esc abandons it.
		if a.form != nil {
			if key == "esc" {
				a.closeForm()
				a.setStatus(components.StatusInfo, "cancelled")
				return a, nil
			}
			return a.updateForm(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "left", "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		case "up", "k":
			a.moveCursor(-1)
			return a, nil
		case "down", "j":
			a.moveCursor(1)
			return a, nil
		}

		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}

		switch a.activeTab {
		case tabServices:
			return a.updateServicesKey(key)
		case tabIncome:
			return a.updateIncomeKey(key)
		case tabGoals:
			return a.updateGoalsKey(key)
		}
		return a, nil
	}

	// Forward everything else (cursor blinks and the like) to an open form.
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

// moveCursor moves the list cursor of the active tab by delta.
func (a *App) moveCursor(delta int) {
	switch a.activeTab {
	case tabServices:
		a.svcCursor = clampCursor(a.svcCursor+delta, a.services.Len())
	case tabIncome:
		a.incCursor = clampCursor(a.incCursor+delta, a.income.Len())
	case tabGoals:
		a.goalCursor = clampCursor(a.goalCursor+delta, a.tracker.Len())
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// ─── View ───────────────────────────────────────────────────────

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.form != nil {
		return a.viewForm()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  pcalc needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o s c i g", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move through lists"},
		}},
		{"Services", []struct{ key, desc string }{
			{"h l  H L", "Adjusted rate down / up (x5)"},
			{"- +", "Adjusted sessions down / up"},
			{"a e x", "Add / Edit / Delete service"},
			{"r R", "Reset selected / all sliders"},
		}},
		{"Income", []struct{ key, desc string }{
			{"a t e x", "Add client / Change type / Edit / Delete"},
			{"[ ]", "Weeks off down / up"},
			{"m u z", "Set goal / Goal = current / Clear goal"},
			{"R", "Reset income sources"},
		}},
		{"Goals", []struct{ key, desc string }{
			{"a e x", "Add / Edit / Delete goal"},
		}},
		{"General", []struct{ key, desc string }{
			{"Esc", "Cancel form"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// headerSummary is the one-line figures row under the tab bar.
func (a App) headerSummary() string {
	t := theme.Active
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	base := a.summary.Base.Revenue
	adj := a.summary.Adjusted.Revenue

	s := dim.Render(" base ") + accent.Render(cli.FormatMoney(base)) +
		dim.Render(" │ adjusted ") + accent.Render(cli.FormatMoney(adj))
	if change := cli.FormatChange(adj, base); change != "" {
		s += dim.Render(" " + change)
	}
	s += dim.Render(" │ income ") + accent.Render(cli.FormatMoney(float64(a.annual))) + dim.Render("/yr ")
	return s
}

func (a App) tabHints() string {
	switch a.activeTab {
	case tabServices:
		return "[h/l]rate  [-/+]sessions  [a]dd  [e]dit  [x]del  [r]eset  [?]help"
	case tabIncome:
		return "[a]dd  [t]ype  [e]dit  [x]del  [[/]]weeks  [m]goal  [?]help"
	case tabGoals:
		return "[a]dd  [e]dit  [x]del  [?]help  [q]uit"
	}
	return "[?]help  [q]uit"
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + summary row
	summaryRow := lipgloss.NewStyle().Background(t.Surface).Width(w)
	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		summaryRow.Render(a.headerSummary())

	// 2. Status bar
	status, kind := a.status, a.statusKind
	if a.pending > 0 {
		status, kind = a.spinner.View()+" saving", components.StatusInfo
	}
	statusBar := components.RenderStatusBar(w, a.tabHints(), status, kind)

	// 3. Content zone height
	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabServices:
		content = a.renderServicesTab(cw, contentH)
	case tabCharts:
		content = a.renderChartsTab(cw)
	case tabIncome:
		content = a.renderIncomeTab(cw, contentH)
	case tabGoals:
		content = a.renderGoalsTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Center when the terminal is wider than the content
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// listWindow returns the [start, end) slice of an n-row list that fits in
// rows lines while keeping cursor visible.
func listWindow(cursor, n, rows int) (int, int) {
	if rows <= 0 {
		return 0, 0
	}
	if n <= rows {
		return 0, n
	}
	start := cursor - rows/2
	start = max(0, min(start, n-rows))
	return start, start + rows
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the same width rules as RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
