package records

import (
	"fmt"

	"github.com/theirongolddev/pcalc/internal/model"
)

// IncomeStore holds the simple calculator's income sources (by position)
// and the weeks-off parameter.
type IncomeStore struct {
	weeksOff float64
	incomes  []model.IncomeEntry
}

// NewIncomeStore returns a store holding a copy of st.
func NewIncomeStore(st model.IncomeState) *IncomeStore {
	s := &IncomeStore{weeksOff: st.WeeksOff}
	s.incomes = append(s.incomes, st.Incomes...)
	return s
}

// State returns a copy of the store contents, ready to persist.
func (s *IncomeStore) State() model.IncomeState {
	incomes := make(model.Incomes, len(s.incomes))
	copy(incomes, s.incomes)
	return model.IncomeState{WeeksOff: s.weeksOff, Incomes: incomes}
}

// Incomes returns a copy of the income sources.
func (s *IncomeStore) Incomes() []model.IncomeEntry {
	out := make([]model.IncomeEntry, len(s.incomes))
	copy(out, s.incomes)
	return out
}

// Len returns the number of income sources.
func (s *IncomeStore) Len() int { return len(s.incomes) }

// WeeksOff returns the configured weeks off per year.
func (s *IncomeStore) WeeksOff() float64 { return s.weeksOff }

// SetWeeksOff updates the weeks off per year.
func (s *IncomeStore) SetWeeksOff(w float64) { s.weeksOff = w }

// Get returns the income at position idx.
func (s *IncomeStore) Get(idx int) (model.IncomeEntry, error) {
	if idx < 0 || idx >= len(s.incomes) {
		return nil, ErrNotFound
	}
	return s.incomes[idx], nil
}

func (s *IncomeStore) countKind(kind model.IncomeKind) int {
	n := 0
	for _, e := range s.incomes {
		if e.Kind() == kind {
			n++
		}
	}
	return n
}

// AddClient appends a default client source labelled "Client Session N".
func (s *IncomeStore) AddClient() model.IncomeEntry {
	e := model.DefaultClientIncome(fmt.Sprintf("Client Session %d", s.countKind(model.IncomeClient)+1))
	s.incomes = append(s.incomes, e)
	return e
}

// Add appends an arbitrary income source.
func (s *IncomeStore) Add(e model.IncomeEntry) {
	s.incomes = append(s.incomes, e)
}

// Replace overwrites the income at idx.
func (s *IncomeStore) Replace(idx int, e model.IncomeEntry) error {
	if idx < 0 || idx >= len(s.incomes) {
		return ErrNotFound
	}
	s.incomes[idx] = e
	return nil
}

// SetLabel renames the income at idx.
func (s *IncomeStore) SetLabel(idx int, label string) error {
	e, err := s.Get(idx)
	if err != nil {
		return err
	}
	s.incomes[idx] = model.WithLabel(e, label)
	return nil
}

// ChangeKind swaps the income at idx for a default entry of another kind.
// Client entries are labelled after the number of client sources already
// present; other kinds take the kind's title.
func (s *IncomeStore) ChangeKind(idx int, kind model.IncomeKind) (model.IncomeEntry, error) {
	if idx < 0 || idx >= len(s.incomes) {
		return nil, ErrNotFound
	}
	label := kind.Title()
	if kind == model.IncomeClient {
		label = fmt.Sprintf("%s %d", label, s.countKind(model.IncomeClient))
	}
	e, err := model.DefaultIncomeFor(kind, label)
	if err != nil {
		return nil, err
	}
	s.incomes[idx] = e
	return e, nil
}

// Remove deletes the income at idx.
func (s *IncomeStore) Remove(idx int) error {
	if idx < 0 || idx >= len(s.incomes) {
		return ErrNotFound
	}
	kept := make([]model.IncomeEntry, 0, len(s.incomes)-1)
	kept = append(kept, s.incomes[:idx]...)
	kept = append(kept, s.incomes[idx+1:]...)
	s.incomes = kept
	return nil
}

// Reset restores the default state.
func (s *IncomeStore) Reset() {
	def := model.DefaultIncomeState()
	s.weeksOff = def.WeeksOff
	s.incomes = append([]model.IncomeEntry(nil), def.Incomes...)
}
