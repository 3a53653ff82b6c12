package goals

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/theirongolddev/pcalc/internal/model"
	"github.com/theirongolddev/pcalc/internal/pipeline"
)

func TestEvaluate_BoundaryEqualityPassesBothWays(t *testing.T) {
	for _, cmp := range []model.Comparison{model.AtLeast, model.NoMoreThan} {
		g := model.NewGoalMetric(model.MetricRevenue, 5000, cmp)
		if !Evaluate(g, 5000) {
			t.Errorf("%s: value == target should pass", cmp)
		}
	}
}

func TestEvaluate_Comparisons(t *testing.T) {
	tests := []struct {
		cmp     model.Comparison
		target  float64
		current float64
		want    bool
	}{
		{model.AtLeast, 100, 150, true},
		{model.AtLeast, 100, 99.99, false},
		{model.NoMoreThan, 30, 28.75, true},
		{model.NoMoreThan, 30, 30.01, false},
		{"", 10, 11, true}, // empty comparison reads as at least
	}
	for _, tt := range tests {
		g := model.GoalMetric{Metric: model.MetricTotalHours, Target: tt.target, Comparison: tt.cmp}
		if got := Evaluate(g, tt.current); got != tt.want {
			t.Errorf("Evaluate(%q, target=%v, current=%v) = %v, want %v", tt.cmp, tt.target, tt.current, got, tt.want)
		}
	}
}

func TestDelta(t *testing.T) {
	g := model.NewGoalMetric(model.MetricVisits, 40, model.AtLeast)
	if d := Delta(g, 25); d != 15 {
		t.Fatalf("Delta = %v, want 15", d)
	}
	if d := Delta(g, 50); d != -10 {
		t.Fatalf("Delta = %v, want -10", d)
	}
}

func TestTracker_AddUpdateRemove(t *testing.T) {
	tr := NewTracker(nil)
	if tr.Len() != 0 || tr.Full() {
		t.Fatal("new tracker should be empty")
	}

	rev := tr.Add(model.MetricRevenue, 4000, model.AtLeast)
	hrs := tr.Add(model.MetricTotalHours, 30, model.NoMoreThan)
	tr.Add(model.MetricVisits, 25, "")

	if !tr.Full() {
		t.Fatal("tracker with 3 goals should be Full")
	}

	// Extra goals and duplicate kinds are tolerated.
	extra := tr.Add(model.MetricRevenue, 1, model.AtLeast)
	if tr.Len() != 4 {
		t.Fatalf("Len = %d, want 4", tr.Len())
	}

	if err := tr.Update(hrs.ID, model.MetricAdminHours, 8, model.NoMoreThan); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := tr.Remove(extra.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := tr.Remove(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Remove unknown = %v, want ErrNotFound", err)
	}

	got := tr.Goals()
	if len(got) != 3 {
		t.Fatalf("goals = %d, want 3", len(got))
	}
	if got[0].ID != rev.ID || got[1].Metric != model.MetricAdminHours || got[1].Target != 8 {
		t.Fatalf("unexpected goals after update: %+v", got)
	}
	if got[2].Comparison != model.AtLeast {
		t.Fatalf("default comparison = %q, want at_least", got[2].Comparison)
	}
}

func TestTracker_GoalsReturnsCopy(t *testing.T) {
	tr := NewTracker(nil)
	tr.Add(model.MetricRevenue, 100, model.AtLeast)

	gs := tr.Goals()
	gs[0].Target = 999

	if tr.Goals()[0].Target != 100 {
		t.Fatal("mutating Goals() result changed tracker state")
	}
}

func TestTracker_CheckAgainstMetrics(t *testing.T) {
	m := pipeline.Metrics(model.DefaultServices(), true) // revenue 3300, 25 visits, 28.75h

	tr := NewTracker(nil)
	tr.Add(model.MetricRevenue, 4000, model.AtLeast)
	tr.Add(model.MetricTotalHours, 30, model.NoMoreThan)
	tr.Add(model.MetricBlendedRate, 132, model.AtLeast)

	results := tr.Check(m)
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	if results[0].Met || results[0].Delta != 700 {
		t.Errorf("revenue result = %+v, want unmet with delta 700", results[0])
	}
	if !results[1].Met || results[1].Current != 28.75 {
		t.Errorf("hours result = %+v, want met at 28.75", results[1])
	}
	if !results[2].Met {
		t.Errorf("blended rate result = %+v, want met at equality", results[2])
	}
	if p := results[0].Progress(); p != 3300.0/4000 {
		t.Errorf("Progress = %v, want %v", p, 3300.0/4000)
	}

	if res := NewTracker(nil).Check(m); len(res) != 0 {
		t.Fatalf("empty tracker Check = %v, want none", res)
	}
}

func TestTracker_AvailableKinds(t *testing.T) {
	tr := NewTracker(nil)
	tr.Add(model.MetricRevenue, 1, model.AtLeast)
	tr.Add(model.MetricAdminHours, 1, model.NoMoreThan)

	kinds := tr.AvailableKinds()
	if len(kinds) != 4 {
		t.Fatalf("available = %v, want 4 kinds", kinds)
	}
	for _, k := range kinds {
		if k == model.MetricRevenue || k == model.MetricAdminHours {
			t.Fatalf("used kind %s listed as available", k)
		}
	}
}

func TestTracker_Find(t *testing.T) {
	tr := NewTracker(nil)
	g := tr.Add(model.MetricVisits, 20, model.AtLeast)

	found, err := tr.Find(g.ID.String()[:8])
	if err != nil || found.ID != g.ID {
		t.Fatalf("Find = %v, %v", found, err)
	}
	if _, err := tr.Find("zzzzzzzz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Find unknown = %v, want ErrNotFound", err)
	}
}
