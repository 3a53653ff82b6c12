// Package records holds the editable service and income collections.
// Each store owns its entries; callers receive copies.
package records

import (
	"errors"

	"github.com/theirongolddev/pcalc/internal/model"
)

// ErrNotFound is returned when an id or position does not name an entry.
var ErrNotFound = errors.New("record not found")

// ServiceStore is an ordered collection of services addressed by ID.
type ServiceStore struct {
	entries []model.ServiceEntry
}

// NewServiceStore returns a store holding a copy of entries.
func NewServiceStore(entries []model.ServiceEntry) *ServiceStore {
	s := &ServiceStore{}
	s.entries = append(s.entries, entries...)
	return s
}

// Snapshot returns a copy of the current entries.
func (s *ServiceStore) Snapshot() []model.ServiceEntry {
	out := make([]model.ServiceEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of services.
func (s *ServiceStore) Len() int { return len(s.entries) }

// Get returns the service with id.
func (s *ServiceStore) Get(id int) (model.ServiceEntry, error) {
	i := s.index(id)
	if i < 0 {
		return model.ServiceEntry{}, ErrNotFound
	}
	return s.entries[i], nil
}

func (s *ServiceStore) index(id int) int {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return i
		}
	}
	return -1
}

// nextID returns max(existing IDs)+1, or 1 for an empty store.
func (s *ServiceStore) nextID() int {
	maxID := 0
	for _, e := range s.entries {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	return maxID + 1
}

// Add appends a service built from the form. Adjusted values start equal to
// the base values.
func (s *ServiceStore) Add(f model.ServiceForm) model.ServiceEntry {
	e := model.ServiceEntry{ID: s.nextID()}
	applyForm(&e, f)
	s.entries = append(s.entries, e)
	return e
}

// Edit replaces the base fields of a service and resets its adjusted values.
func (s *ServiceStore) Edit(id int, f model.ServiceForm) (model.ServiceEntry, error) {
	i := s.index(id)
	if i < 0 {
		return model.ServiceEntry{}, ErrNotFound
	}
	applyForm(&s.entries[i], f)
	return s.entries[i], nil
}

func applyForm(e *model.ServiceEntry, f model.ServiceForm) {
	e.VisitType = f.VisitType
	e.Payer = f.Payer
	e.SessionLength = f.SessionLength
	e.AdminTime = f.AdminTime
	e.BaseRate = f.BaseRate
	e.BaseSessions = f.BaseSessions
	e.AdjustedRate = f.BaseRate
	e.AdjustedSessions = f.BaseSessions
}

// SetAdjustedRate moves the rate slider of a service. Base values are untouched.
func (s *ServiceStore) SetAdjustedRate(id int, rate float64) error {
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.entries[i].AdjustedRate = rate
	return nil
}

// SetAdjustedSessions moves the sessions slider of a service. Base values are untouched.
func (s *ServiceStore) SetAdjustedSessions(id int, sessions float64) error {
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.entries[i].AdjustedSessions = sessions
	return nil
}

// ResetAdjusted sets every adjusted value back to its base value.
func (s *ServiceStore) ResetAdjusted() {
	for i := range s.entries {
		s.entries[i].AdjustedRate = s.entries[i].BaseRate
		s.entries[i].AdjustedSessions = s.entries[i].BaseSessions
	}
}

// Remove deletes the service with id, keeping the order of the rest.
func (s *ServiceStore) Remove(id int) error {
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	kept := make([]model.ServiceEntry, 0, len(s.entries)-1)
	kept = append(kept, s.entries[:i]...)
	kept = append(kept, s.entries[i+1:]...)
	s.entries = kept
	return nil
}
