package store

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/theirongolddev/pcalc/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", FileName))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutGetDelete(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.Get("missing"); !errors.Is(err, ErrNoValue) {
		t.Fatalf("Get missing = %v, want ErrNoValue", err)
	}

	if err := s.Put("k", "one"); err != nil {
		t.Fatal(err)
	}
	if err := s.Put("k", "two"); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get("k")
	if err != nil || got != "two" {
		t.Fatalf("Get = %q, %v; want two", got, err)
	}
	if _, err := s.UpdatedAt("k"); err != nil {
		t.Fatalf("UpdatedAt: %v", err)
	}

	if err := s.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("second Delete = %v", err)
	}
	if _, err := s.Get("k"); !errors.Is(err, ErrNoValue) {
		t.Fatalf("Get after delete = %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put("a", "1"); err != nil {
		t.Fatal(err)
	}
	_ = s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s.Close() }()
	keys, err := s.Keys()
	if err != nil || !reflect.DeepEqual(keys, []string{"a"}) {
		t.Fatalf("Keys = %v, %v", keys, err)
	}
}

func TestIncomeState_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	st := model.IncomeState{
		WeeksOff: 6,
		Incomes: model.Incomes{
			model.ClientIncome{Label: "Clients", Rate: 140, SessionsPerMonth: 30},
			model.MiscIncome{Label: "Rent", Amount: 500, Period: model.PeriodMonth},
			model.ConsultingIncome{Label: "Clinic", Rate: 100, Hours: 5},
			model.W2Income{Label: "Hospital", Amount: 60000, Start: "2026-07"},
		},
	}
	if err := s.SaveIncomeState(st); err != nil {
		t.Fatal(err)
	}
	got, err := s.LoadIncomeState()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, st) {
		t.Fatalf("LoadIncomeState = %+v, want %+v", got, st)
	}
}

func TestIncomeState_FallsBackToDefault(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "{{"},
		{"array", "[1,2,3]"},
		{"unknown type", `{"weeksOff":2,"incomes":[{"type":"lottery","label":"x"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTestStore(t)
			if err := s.Put(KeyIncomeState, tt.raw); err != nil {
				t.Fatal(err)
			}
			got, err := s.LoadIncomeState()
			if err != nil {
				t.Fatalf("LoadIncomeState error = %v", err)
			}
			if !reflect.DeepEqual(got, model.DefaultIncomeState()) {
				t.Fatalf("state = %+v, want default", got)
			}
		})
	}

	s := openTestStore(t)
	got, err := s.LoadIncomeState()
	if err != nil || !reflect.DeepEqual(got, model.DefaultIncomeState()) {
		t.Fatalf("empty store state = %+v, %v", got, err)
	}
}

func TestIncomeState_FieldsFallBackIndependently(t *testing.T) {
	def := model.DefaultIncomeState()
	rent := model.Incomes{model.MiscIncome{Label: "Rent", Amount: 500, Period: model.PeriodMonth}}
	tests := []struct {
		name string
		raw  string
		want model.IncomeState
	}{
		{"weeks off only", `{"weeksOff":10}`, model.IncomeState{WeeksOff: 10, Incomes: def.Incomes}},
		{"empty incomes", `{"weeksOff":2,"incomes":[]}`, model.IncomeState{WeeksOff: 2, Incomes: def.Incomes}},
		{"null incomes", `{"weeksOff":0,"incomes":null}`, model.IncomeState{WeeksOff: 0, Incomes: def.Incomes}},
		{"incomes only", `{"incomes":[{"type":"misc","label":"Rent","miscAmount":500,"miscPeriod":"month"}]}`,
			model.IncomeState{WeeksOff: model.DefaultWeeksOff, Incomes: rent}},
		{"empty object", `{}`, def},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openTestStore(t)
			if err := s.Put(KeyIncomeState, tt.raw); err != nil {
				t.Fatal(err)
			}
			got, err := s.LoadIncomeState()
			if err != nil {
				t.Fatalf("LoadIncomeState error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("state = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIncomeState_EmptyListReloadsAsDefaultEntry(t *testing.T) {
	s := openTestStore(t)
	if err := s.SaveIncomeState(model.IncomeState{WeeksOff: 6}); err != nil {
		t.Fatal(err)
	}
	got, err := s.LoadIncomeState()
	if err != nil {
		t.Fatal(err)
	}
	want := model.IncomeState{WeeksOff: 6, Incomes: model.DefaultIncomeState().Incomes}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("state = %+v, want %+v", got, want)
	}
}

func TestIncomeGoal(t *testing.T) {
	s := openTestStore(t)

	if _, ok, err := s.LoadIncomeGoal(); ok || err != nil {
		t.Fatalf("unset goal ok=%v err=%v", ok, err)
	}
	if err := s.SaveIncomeGoal(120000); err != nil {
		t.Fatal(err)
	}
	if g, ok, _ := s.LoadIncomeGoal(); !ok || g != 120000 {
		t.Fatalf("goal = %v ok=%v, want 120000", g, ok)
	}
	if err := s.ClearIncomeGoal(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.LoadIncomeGoal(); ok {
		t.Fatal("goal still set after clear")
	}

	_ = s.Put(KeyIncomeGoal, "lots")
	if g, ok, err := s.LoadIncomeGoal(); ok || g != 0 || err != nil {
		t.Fatalf("malformed goal = %v ok=%v err=%v", g, ok, err)
	}
}

func TestServicesAndGoals(t *testing.T) {
	s := openTestStore(t)

	services, err := s.LoadServices()
	if err != nil || !reflect.DeepEqual(services, model.DefaultServices()) {
		t.Fatalf("default services = %+v, %v", services, err)
	}

	services[0].AdjustedRate = 175
	if err := s.SaveServices(services); err != nil {
		t.Fatal(err)
	}
	got, _ := s.LoadServices()
	if got[0].AdjustedRate != 175 || got[0].BaseRate != 150 {
		t.Fatalf("reloaded = %+v", got[0])
	}

	if err := s.SaveServices(nil); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.LoadServices(); got == nil || len(got) != 0 {
		t.Fatalf("empty list reloaded as %v", got)
	}

	if goals, err := s.LoadGoals(); err != nil || len(goals) != 0 {
		t.Fatalf("default goals = %v, %v", goals, err)
	}
	g := model.NewGoalMetric(model.MetricRevenue, 4000, model.AtLeast)
	if err := s.SaveGoals([]model.GoalMetric{g}); err != nil {
		t.Fatal(err)
	}
	goals, _ := s.LoadGoals()
	if len(goals) != 1 || goals[0] != g {
		t.Fatalf("goals = %+v, want [%+v]", goals, g)
	}

	_ = s.Put(KeyGoals, `{"metric":1}`)
	if goals, err := s.LoadGoals(); err != nil || goals != nil {
		t.Fatalf("malformed goals = %v, %v", goals, err)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	_ = s.SaveIncomeGoal(1)
	_ = s.SaveServices(nil)
	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	keys, _ := s.Keys()
	if len(keys) != 0 {
		t.Fatalf("keys after reset = %v", keys)
	}
}
