// Package goals tracks numeric practice goals and evaluates them against
// computed metrics.
package goals

import (
	"errors"

	"github.com/google/uuid"

	"github.com/theirongolddev/pcalc/internal/model"
	"github.com/theirongolddev/pcalc/internal/pipeline"
)

// MaxGoals is how many goals the dashboard offers slots for. The tracker
// itself accepts any number.
const MaxGoals = 3

// ErrNotFound is returned when a goal ID is not tracked.
var ErrNotFound = errors.New("goal not found")

// Evaluate reports whether current satisfies the goal. Equality passes for
// both comparisons.
func Evaluate(g model.GoalMetric, current float64) bool {
	if g.Comparison == model.NoMoreThan {
		return current <= g.Target
	}
	return current >= g.Target
}

// Delta returns target - current. It is for display only.
func Delta(g model.GoalMetric, current float64) float64 {
	return g.Target - current
}

// Result is the evaluation of one goal.
type Result struct {
	Goal    model.GoalMetric
	Current float64
	Met     bool
	Delta   float64
}

// Progress returns current/target clamped to [0, 1], for progress bars.
func (r Result) Progress() float64 {
	if r.Goal.Target <= 0 {
		if r.Met {
			return 1
		}
		return 0
	}
	p := r.Current / r.Goal.Target
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Tracker is an ordered list of goals.
type Tracker struct {
	goals []model.GoalMetric
}

// NewTracker returns a tracker seeded with a copy of goals.
func NewTracker(goals []model.GoalMetric) *Tracker {
	t := &Tracker{}
	t.goals = append(t.goals, goals...)
	return t
}

// Goals returns a copy of the tracked goals in order.
func (t *Tracker) Goals() []model.GoalMetric {
	out := make([]model.GoalMetric, len(t.goals))
	copy(out, t.goals)
	return out
}

// Len returns the number of tracked goals.
func (t *Tracker) Len() int { return len(t.goals) }

// Full reports whether every dashboard slot is used.
func (t *Tracker) Full() bool { return len(t.goals) >= MaxGoals }

// Add appends a new goal and returns it.
func (t *Tracker) Add(metric model.MetricKind, target float64, cmp model.Comparison) model.GoalMetric {
	g := model.NewGoalMetric(metric, target, cmp)
	t.goals = append(t.goals, g)
	return g
}

// Update replaces the metric, target and comparison of the goal with id.
func (t *Tracker) Update(id uuid.UUID, metric model.MetricKind, target float64, cmp model.Comparison) error {
	for i := range t.goals {
		if t.goals[i].ID != id {
			continue
		}
		if cmp == "" {
			cmp = model.AtLeast
		}
		t.goals[i].Metric = metric
		t.goals[i].Target = target
		t.goals[i].Comparison = cmp
		return nil
	}
	return ErrNotFound
}

// Remove deletes the goal with id.
func (t *Tracker) Remove(id uuid.UUID) error {
	for i := range t.goals {
		if t.goals[i].ID == id {
			t.goals = append(t.goals[:i:i], t.goals[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Find returns the goal with the given ID prefix, as printed by the CLI.
func (t *Tracker) Find(prefix string) (model.GoalMetric, error) {
	var match *model.GoalMetric
	for i := range t.goals {
		id := t.goals[i].ID.String()
		if len(prefix) == 0 || len(prefix) > len(id) || id[:len(prefix)] != prefix {
			continue
		}
		if match != nil {
			return model.GoalMetric{}, errors.New("goal id prefix is ambiguous")
		}
		match = &t.goals[i]
	}
	if match == nil {
		return model.GoalMetric{}, ErrNotFound
	}
	return *match, nil
}

// AvailableKinds lists metric kinds not yet used by any goal.
func (t *Tracker) AvailableKinds() []model.MetricKind {
	used := make(map[model.MetricKind]bool, len(t.goals))
	for _, g := range t.goals {
		used[g.Metric] = true
	}
	var kinds []model.MetricKind
	for _, k := range model.MetricKinds {
		if !used[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Check evaluates every goal against m.
func (t *Tracker) Check(m model.PracticeMetrics) []Result {
	results := make([]Result, len(t.goals))
	for i, g := range t.goals {
		current := pipeline.MetricValue(g.Metric, m)
		results[i] = Result{
			Goal:    g,
			Current: current,
			Met:     Evaluate(g, current),
			Delta:   Delta(g, current),
		}
	}
	return results
}
