package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/pcalc/internal/model"
	"github.com/theirongolddev/pcalc/internal/pipeline"
	"github.com/theirongolddev/pcalc/internal/tui/components"
	"github.com/theirongolddev/pcalc/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

type formKind int

const (
	formNone formKind = iota
	formServiceAdd
	formServiceEdit
	formIncomeEdit
	formIncomeGoal
	formGoalAdd
	formGoalEdit
)

// formValues holds the text bound to the open form's fields. It lives
// behind a pointer so copies of App share it with the form.
type formValues struct {
	// Service
	visitType string
	payer     string
	length    string
	admin     string
	rate      string
	sessions  string

	// Income
	label  string
	amount string
	hours  string
	period string
	start  string

	// Goal
	metric     string
	target     string
	comparison string
}

const maxFormWidth = 70

func (a App) formWidth() int {
	return min(maxFormWidth, max(a.width-8, 30))
}

func (a *App) openForm(kind formKind, vals *formValues, form *huh.Form) tea.Cmd {
	a.formKind = kind
	a.formVals = vals
	a.form = form.WithShowHelp(true).WithWidth(a.formWidth())
	if a.height > 0 {
		a.form = a.form.WithHeight(a.height - 6)
	}
	return a.form.Init()
}

func (a *App) closeForm() {
	a.form = nil
	a.formVals = nil
	a.formKind = formNone
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		done := a.submitForm()
		a.closeForm()
		return a, done
	case huh.StateAborted:
		a.closeForm()
		a.setStatus(components.StatusInfo, "cancelled")
		return a, nil
	}
	return a, cmd
}

// submitForm applies the completed form to the records and returns the
// persistence command.
func (a *App) submitForm() tea.Cmd {
	v := a.formVals
	switch a.formKind {
	case formServiceAdd:
		e := a.services.Add(v.serviceForm())
		a.svcCursor = a.services.Len() - 1
		a.setStatus(components.StatusInfo, "added %s", e.VisitType)
		return a.servicesChanged()

	case formServiceEdit:
		if _, err := a.services.Edit(a.formTarget, v.serviceForm()); err != nil {
			a.setStatus(components.StatusError, "%v", err)
			return nil
		}
		return a.servicesChanged()

	case formIncomeEdit:
		cur, err := a.income.Get(a.formTarget)
		if err != nil {
			a.setStatus(components.StatusError, "%v", err)
			return nil
		}
		e := v.incomeEntry(cur.Kind(), a.cfg.Sliders.IncomeRate.Clamp)
		if err := a.income.Replace(a.formTarget, e); err != nil {
			a.setStatus(components.StatusError, "%v", err)
			return nil
		}
		return a.incomeChanged()

	case formIncomeGoal:
		a.incomeGoal = parseNumber(v.amount)
		a.hasGoal = a.incomeGoal > 0
		return a.incomeGoalChanged()

	case formGoalAdd:
		a.tracker.Add(model.MetricKind(v.metric), parseNumber(v.target), model.Comparison(v.comparison))
		a.goalCursor = a.tracker.Len() - 1
		return a.goalsChanged()

	case formGoalEdit:
		err := a.tracker.Update(a.formGoal, model.MetricKind(v.metric), parseNumber(v.target), model.Comparison(v.comparison))
		if err != nil {
			a.setStatus(components.StatusError, "%v", err)
			return nil
		}
		return a.goalsChanged()
	}
	return nil
}

func (a App) viewForm() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)

	hint := lipgloss.NewStyle().Foreground(t.TextDim).Render("esc to cancel")
	card := cardStyle.Render(a.form.View() + "\n" + hint)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Field helpers ──────────────────────────────────────────────

func parseNumber(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

func formatInput(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func validNumber(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("enter a number")
	}
	if v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func validRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func validStart(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || s == model.W2StartAll {
		return nil
	}
	if _, ok := pipeline.StartMonth(s); !ok {
		return fmt.Errorf("use %q or YYYY-MM", model.W2StartAll)
	}
	return nil
}

func numberInput(title string, value *string) *huh.Input {
	return huh.NewInput().Title(title).Value(value).Validate(validNumber)
}

// ─── Services ───────────────────────────────────────────────────

func serviceValues(f model.ServiceForm) *formValues {
	return &formValues{
		visitType: f.VisitType,
		payer:     f.Payer,
		length:    formatInput(f.SessionLength),
		admin:     formatInput(f.AdminTime),
		rate:      formatInput(f.BaseRate),
		sessions:  formatInput(f.BaseSessions),
	}
}

func (v *formValues) serviceForm() model.ServiceForm {
	return model.ServiceForm{
		VisitType:     strings.TrimSpace(v.visitType),
		Payer:         v.payer,
		SessionLength: parseNumber(v.length),
		AdminTime:     parseNumber(v.admin),
		BaseRate:      parseNumber(v.rate),
		BaseSessions:  parseNumber(v.sessions),
	}
}

// payerOptions offers the configured payers plus current when it is not
// one of them, and an empty choice.
func payerOptions(labels []string, current string) []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("(none)", "")}
	found := current == ""
	for _, l := range labels {
		opts = append(opts, huh.NewOption(l, l))
		found = found || l == current
	}
	if !found {
		opts = append(opts, huh.NewOption(current, current))
	}
	return opts
}

func newServiceForm(title string, v *formValues, payers []string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title),
			huh.NewInput().Title("Visit type").Placeholder("Individual 45").
				Value(&v.visitType).Validate(validRequired),
			huh.NewSelect[string]().Title("Payer").
				Options(payerOptions(payers, v.payer)...).Value(&v.payer),
			numberInput("Session length (minutes)", &v.length),
			numberInput("Admin time (minutes)", &v.admin),
			numberInput("Base rate ($)", &v.rate),
			numberInput("Base sessions per month", &v.sessions),
		),
	)
}

// ─── Income ─────────────────────────────────────────────────────

func incomeValues(e model.IncomeEntry) *formValues {
	v := &formValues{label: e.Name()}
	switch x := e.(type) {
	case model.ClientIncome:
		v.rate = formatInput(x.Rate)
		v.sessions = formatInput(x.SessionsPerMonth)
	case model.MiscIncome:
		v.amount = formatInput(x.Amount)
		v.period = string(x.Period)
	case model.ConsultingIncome:
		v.rate = formatInput(x.Rate)
		v.hours = formatInput(x.Hours)
	case model.W2Income:
		v.amount = formatInput(x.Amount)
		v.start = x.Start
	}
	return v
}

// incomeEntry builds an entry of kind from the form. clampRate bounds
// hourly and session rates to the configured slider range.
func (v *formValues) incomeEntry(kind model.IncomeKind, clampRate func(float64) float64) model.IncomeEntry {
	label := strings.TrimSpace(v.label)
	switch kind {
	case model.IncomeMisc:
		return model.MiscIncome{Label: label, Amount: parseNumber(v.amount), Period: model.Period(v.period)}
	case model.IncomeConsulting:
		return model.ConsultingIncome{Label: label, Rate: clampRate(parseNumber(v.rate)), Hours: parseNumber(v.hours)}
	case model.IncomeW2:
		start := strings.TrimSpace(v.start)
		if start == "" {
			start = model.W2StartAll
		}
		return model.W2Income{Label: label, Amount: parseNumber(v.amount), Start: start}
	}
	return model.ClientIncome{Label: label, Rate: clampRate(parseNumber(v.rate)), SessionsPerMonth: parseNumber(v.sessions)}
}

func newIncomeForm(e model.IncomeEntry, v *formValues) *huh.Form {
	fields := []huh.Field{
		huh.NewNote().Title("Edit " + e.Kind().Title()),
		huh.NewInput().Title("Label").Value(&v.label).Validate(validRequired),
	}
	switch e.Kind() {
	case model.IncomeClient:
		fields = append(fields,
			numberInput("Rate per session ($)", &v.rate),
			numberInput("Sessions per month", &v.sessions))
	case model.IncomeMisc:
		fields = append(fields,
			numberInput("Amount ($)", &v.amount),
			huh.NewSelect[string]().Title("Every").
				Options(
					huh.NewOption("week", string(model.PeriodWeek)),
					huh.NewOption("month", string(model.PeriodMonth)),
					huh.NewOption("year", string(model.PeriodYear)),
				).Value(&v.period))
	case model.IncomeConsulting:
		fields = append(fields,
			numberInput("Rate per hour ($)", &v.rate),
			numberInput("Hours per month", &v.hours))
	case model.IncomeW2:
		fields = append(fields,
			numberInput("Annual salary ($)", &v.amount),
			huh.NewInput().Title("Start month").
				Description(fmt.Sprintf("YYYY-MM, or %q for the whole year", model.W2StartAll)).
				Value(&v.start).Validate(validStart))
	}
	return huh.NewForm(huh.NewGroup(fields...))
}

func newIncomeGoalForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Annual income goal").
				Description("Enter 0 to clear the goal."),
			numberInput("Goal ($/yr)", &v.amount),
		),
	)
}

// ─── Goals ──────────────────────────────────────────────────────

func goalValues(g model.GoalMetric) *formValues {
	return &formValues{
		metric:     string(g.Metric),
		target:     formatInput(g.Target),
		comparison: string(g.Comparison),
	}
}

func newGoalForm(title string, v *formValues, kinds []model.MetricKind) *huh.Form {
	metricOpts := make([]huh.Option[string], len(kinds))
	for i, k := range kinds {
		metricOpts[i] = huh.NewOption(k.Title(), string(k))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title),
			huh.NewSelect[string]().Title("Metric").Options(metricOpts...).Value(&v.metric),
			huh.NewSelect[string]().Title("Comparison").
				Options(
					huh.NewOption(model.AtLeast.Title(), string(model.AtLeast)),
					huh.NewOption(model.NoMoreThan.Title(), string(model.NoMoreThan)),
				).Value(&v.comparison),
			numberInput("Target", &v.target),
		),
	)
}
