package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/theirongolddev/pcalc/internal/logger"
	"github.com/theirongolddev/pcalc/internal/model"

	"go.uber.org/zap"
)

// loadJSON decodes the value under key into dst. It reports false when the
// key is absent or the value does not decode; the caller then keeps its
// default. Only I/O failures are returned.
func (s *Store) loadJSON(key string, dst any) (bool, error) {
	raw, err := s.Get(key)
	if errors.Is(err, ErrNoValue) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		logger.Get().Warn("discarding malformed snapshot",
			zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (s *Store) saveJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.Put(key, string(data))
}

// storedIncomeState mirrors the snapshot with every field optional.
type storedIncomeState struct {
	WeeksOff *float64      `json:"weeksOff"`
	Incomes  model.Incomes `json:"incomes"`
}

// LoadIncomeState returns the saved income calculator state. Each field falls
// back on its own: a missing weeksOff keeps the default, and a missing or
// empty incomes list becomes the default client entry.
func (s *Store) LoadIncomeState() (model.IncomeState, error) {
	st := model.DefaultIncomeState()
	var raw storedIncomeState
	ok, err := s.loadJSON(KeyIncomeState, &raw)
	if err != nil || !ok {
		return st, err
	}
	if raw.WeeksOff != nil {
		st.WeeksOff = *raw.WeeksOff
	}
	if len(raw.Incomes) > 0 {
		st.Incomes = raw.Incomes
	} else {
		logger.Get().Warn("income snapshot has no incomes, using the default entry")
	}
	return st, nil
}

// SaveIncomeState persists the income calculator state.
func (s *Store) SaveIncomeState(st model.IncomeState) error {
	if st.Incomes == nil {
		st.Incomes = model.Incomes{}
	}
	return s.saveJSON(KeyIncomeState, st)
}

// LoadIncomeGoal returns the annual income goal. ok is false when no goal is set.
func (s *Store) LoadIncomeGoal() (goal float64, ok bool, err error) {
	raw, err := s.Get(KeyIncomeGoal)
	if errors.Is(err, ErrNoValue) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	v, perr := strconv.ParseFloat(raw, 64)
	if perr != nil {
		logger.Get().Warn("discarding malformed income goal",
			zap.String("value", raw), zap.Error(perr))
		return 0, false, nil
	}
	return v, true, nil
}

// SaveIncomeGoal stores the annual income goal.
func (s *Store) SaveIncomeGoal(goal float64) error {
	return s.Put(KeyIncomeGoal, strconv.FormatFloat(goal, 'f', -1, 64))
}

// ClearIncomeGoal removes the annual income goal.
func (s *Store) ClearIncomeGoal() error {
	return s.Delete(KeyIncomeGoal)
}

// LoadServices returns the saved services, or the default services when
// nothing usable is stored. A stored empty list is kept as empty.
func (s *Store) LoadServices() ([]model.ServiceEntry, error) {
	var entries []model.ServiceEntry
	ok, err := s.loadJSON(KeyServices, &entries)
	if err != nil {
		return model.DefaultServices(), err
	}
	if !ok {
		return model.DefaultServices(), nil
	}
	if entries == nil {
		entries = []model.ServiceEntry{}
	}
	return entries, nil
}

// SaveServices persists the services.
func (s *Store) SaveServices(entries []model.ServiceEntry) error {
	if entries == nil {
		entries = []model.ServiceEntry{}
	}
	return s.saveJSON(KeyServices, entries)
}

// LoadGoals returns the saved goals; none when nothing usable is stored.
func (s *Store) LoadGoals() ([]model.GoalMetric, error) {
	var goals []model.GoalMetric
	ok, err := s.loadJSON(KeyGoals, &goals)
	if err != nil || !ok {
		return nil, err
	}
	return goals, nil
}

// SaveGoals persists the goals.
func (s *Store) SaveGoals(goals []model.GoalMetric) error {
	if goals == nil {
		goals = []model.GoalMetric{}
	}
	return s.saveJSON(KeyGoals, goals)
}

// Reset removes every snapshot so the next load returns defaults.
func (s *Store) Reset() error {
	for _, key := range []string{KeyIncomeState, KeyIncomeGoal, KeyServices, KeyGoals} {
		if err := s.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
