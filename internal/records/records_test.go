package records

import (
	"errors"
	"reflect"
	"testing"

	"github.com/theirongolddev/pcalc/internal/model"
)

func TestServiceStore_AddAssignsNextID(t *testing.T) {
	s := NewServiceStore(model.DefaultServices())

	e := s.Add(model.ServiceForm{VisitType: "Intake", Payer: "Private Pay", SessionLength: 90, AdminTime: 30, BaseRate: 200, BaseSessions: 2})
	if e.ID != 3 {
		t.Fatalf("new ID = %d, want 3", e.ID)
	}
	if e.AdjustedRate != 200 || e.AdjustedSessions != 2 {
		t.Fatalf("adjusted values = %v/%v, want copies of base", e.AdjustedRate, e.AdjustedSessions)
	}

	if got := NewServiceStore(nil).Add(model.DefaultServiceForm()); got.ID != 1 {
		t.Fatalf("first ID in empty store = %d, want 1", got.ID)
	}
}

func TestServiceStore_SlidersNeverTouchBase(t *testing.T) {
	s := NewServiceStore(model.DefaultServices())

	if err := s.SetAdjustedRate(1, 175); err != nil {
		t.Fatal(err)
	}
	if err := s.SetAdjustedSessions(1, 15); err != nil {
		t.Fatal(err)
	}

	e, _ := s.Get(1)
	if e.BaseRate != 150 || e.BaseSessions != 10 {
		t.Fatalf("base changed to %v/%v", e.BaseRate, e.BaseSessions)
	}
	if e.AdjustedRate != 175 || e.AdjustedSessions != 15 {
		t.Fatalf("adjusted = %v/%v, want 175/15", e.AdjustedRate, e.AdjustedSessions)
	}
}

func TestServiceStore_EditResetsAdjusted(t *testing.T) {
	s := NewServiceStore(model.DefaultServices())
	_ = s.SetAdjustedSessions(2, 25)

	f := model.FormOf(model.DefaultServices()[1])
	f.BaseRate = 130
	e, err := s.Edit(2, f)
	if err != nil {
		t.Fatal(err)
	}
	if e.AdjustedRate != 130 || e.AdjustedSessions != 15 {
		t.Fatalf("adjusted after edit = %v/%v, want 130/15", e.AdjustedRate, e.AdjustedSessions)
	}
	if _, err := s.Edit(99, f); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Edit unknown = %v, want ErrNotFound", err)
	}
}

func TestServiceStore_RemoveKeepsOthersIntact(t *testing.T) {
	s := NewServiceStore(nil)
	a := s.Add(model.ServiceForm{VisitType: "A", BaseRate: 100, BaseSessions: 1})
	b := s.Add(model.ServiceForm{VisitType: "B", BaseRate: 110, BaseSessions: 2})
	c := s.Add(model.ServiceForm{VisitType: "C", BaseRate: 120, BaseSessions: 3})
	_ = s.SetAdjustedRate(c.ID, 300)

	if err := s.Remove(b.ID); err != nil {
		t.Fatal(err)
	}

	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("len = %d, want 2", len(snap))
	}
	if !reflect.DeepEqual(snap[0], a) {
		t.Fatalf("first entry changed: %+v", snap[0])
	}
	wantC := c
	wantC.AdjustedRate = 300
	if !reflect.DeepEqual(snap[1], wantC) {
		t.Fatalf("last entry = %+v, want %+v", snap[1], wantC)
	}

	// Editing by ID after removal hits the right entry.
	if err := s.SetAdjustedSessions(c.ID, 9); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Get(a.ID); got.AdjustedSessions != 1 {
		t.Fatalf("entry A aliased: %+v", got)
	}

	if err := s.Remove(b.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Remove = %v, want ErrNotFound", err)
	}
	// IDs are never reused while a higher one exists.
	if d := s.Add(model.DefaultServiceForm()); d.ID != 4 {
		t.Fatalf("ID after removal = %d, want 4", d.ID)
	}
}

func TestServiceStore_SnapshotIsCopy(t *testing.T) {
	s := NewServiceStore(model.DefaultServices())
	snap := s.Snapshot()
	snap[0].AdjustedRate = 1

	if e, _ := s.Get(1); e.AdjustedRate != 150 {
		t.Fatal("Snapshot aliases store state")
	}
}

func TestServiceStore_ResetAdjusted(t *testing.T) {
	s := NewServiceStore(model.DefaultServices())
	_ = s.SetAdjustedRate(1, 250)
	s.ResetAdjusted()
	if !reflect.DeepEqual(s.Snapshot(), model.DefaultServices()) {
		t.Fatal("ResetAdjusted did not restore base values")
	}
}

func TestIncomeStore_AddClientLabels(t *testing.T) {
	s := NewIncomeStore(model.DefaultIncomeState())
	e := s.AddClient()
	if e.Name() != "Client Session 2" {
		t.Fatalf("label = %q, want Client Session 2", e.Name())
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
}

func TestIncomeStore_ChangeKind(t *testing.T) {
	s := NewIncomeStore(model.DefaultIncomeState())
	s.AddClient()

	e, err := s.ChangeKind(1, model.IncomeMisc)
	if err != nil {
		t.Fatal(err)
	}
	misc, ok := e.(model.MiscIncome)
	if !ok || misc.Label != "Periodic Income" || misc.Period != model.PeriodMonth || misc.Amount != 0 {
		t.Fatalf("changed entry = %#v", e)
	}

	e, _ = s.ChangeKind(1, model.IncomeClient)
	if e.Name() != "Clients/Hourly Rates 1" {
		t.Fatalf("client label = %q", e.Name())
	}

	if _, err := s.ChangeKind(5, model.IncomeMisc); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ChangeKind out of range = %v", err)
	}
}

func TestIncomeStore_RemoveAndReset(t *testing.T) {
	s := NewIncomeStore(model.DefaultIncomeState())
	s.Add(model.W2Income{Label: "Hospital", Amount: 50000, Start: "2026-04"})
	s.SetWeeksOff(6)

	if err := s.Remove(0); err != nil {
		t.Fatal(err)
	}
	if e, _ := s.Get(0); e.Name() != "Hospital" {
		t.Fatalf("remaining = %v", e)
	}
	if err := s.Remove(3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Remove out of range = %v", err)
	}

	s.Reset()
	if !reflect.DeepEqual(s.State(), model.DefaultIncomeState()) {
		t.Fatalf("Reset state = %+v", s.State())
	}
}

func TestIncomeStore_SetLabel(t *testing.T) {
	s := NewIncomeStore(model.DefaultIncomeState())
	if err := s.SetLabel(0, "Evening clients"); err != nil {
		t.Fatal(err)
	}
	e, _ := s.Get(0)
	c := e.(model.ClientIncome)
	if c.Label != "Evening clients" || c.Rate != 150 {
		t.Fatalf("entry = %+v", c)
	}
}
