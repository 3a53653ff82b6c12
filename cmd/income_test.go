package cmd

import (
	"errors"
	"testing"

	"github.com/theirongolddev/pcalc/internal/config"
	"github.com/theirongolddev/pcalc/internal/model"
)

type fakeIncomeSnapshots struct {
	state   model.IncomeState
	saveErr error
	saves   int
}

func (f *fakeIncomeSnapshots) LoadIncomeState() (model.IncomeState, error) {
	return f.state, nil
}

func (f *fakeIncomeSnapshots) SaveIncomeState(st model.IncomeState) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.state = st
	return nil
}

func TestApplyIncomeEdit_ConfirmsAfterSave(t *testing.T) {
	db := &fakeIncomeSnapshots{state: model.DefaultIncomeState()}
	db.state.Incomes = append(db.state.Incomes, model.MiscIncome{Label: "Rent", Amount: 500, Period: model.PeriodMonth})

	msg, err := applyIncomeEdit(config.DefaultConfig(), db, removeIncome(1))
	if err != nil {
		t.Fatalf("applyIncomeEdit: %v", err)
	}
	if msg != "Removed #2 Rent" {
		t.Fatalf("msg = %q, want %q", msg, "Removed #2 Rent")
	}
	if db.saves != 1 || len(db.state.Incomes) != 1 {
		t.Fatalf("saves = %d, incomes = %d", db.saves, len(db.state.Incomes))
	}
}

func TestApplyIncomeEdit_NoConfirmationWhenSaveFails(t *testing.T) {
	boom := errors.New("disk full")
	db := &fakeIncomeSnapshots{state: model.DefaultIncomeState(), saveErr: boom}

	msg, err := applyIncomeEdit(config.DefaultConfig(), db, removeIncome(0))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if msg != "" {
		t.Fatalf("msg = %q, want none", msg)
	}
}

func TestApplyIncomeEdit_EditErrorSkipsSave(t *testing.T) {
	db := &fakeIncomeSnapshots{state: model.DefaultIncomeState()}

	if _, err := applyIncomeEdit(config.DefaultConfig(), db, removeIncome(5)); err == nil {
		t.Fatal("removing #6 succeeded")
	}
	if db.saves != 0 {
		t.Fatalf("saves = %d, want 0", db.saves)
	}
}
