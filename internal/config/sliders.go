package config

import "math"

// Range bounds a slider. Values move in Step increments between Min and Max.
type Range struct {
	Min  float64 `toml:"min"`
	Max  float64 `toml:"max"`
	Step float64 `toml:"step"`
}

// SliderConfig holds the bounds of every adjustable value.
type SliderConfig struct {
	Rate       Range `toml:"rate"`
	Sessions   Range `toml:"sessions"`
	IncomeRate Range `toml:"income_rate"`
	WeeksOff   Range `toml:"weeks_off"`
}

// DefaultSliders returns the stock slider ranges.
func DefaultSliders() SliderConfig {
	return SliderConfig{
		Rate:       Range{Min: 50, Max: 300, Step: 5},
		Sessions:   Range{Min: 0, Max: 30, Step: 1},
		IncomeRate: Range{Min: 0, Max: 500, Step: 5},
		WeeksOff:   Range{Min: 0, Max: 52, Step: 1},
	}
}

// fillDefaults replaces unusable ranges (zero step or inverted bounds)
// left by a partial config file.
func (s *SliderConfig) fillDefaults() {
	def := DefaultSliders()
	for _, p := range []struct{ got, want *Range }{
		{&s.Rate, &def.Rate},
		{&s.Sessions, &def.Sessions},
		{&s.IncomeRate, &def.IncomeRate},
		{&s.WeeksOff, &def.WeeksOff},
	} {
		if p.got.Step <= 0 || p.got.Max < p.got.Min {
			*p.got = *p.want
		}
	}
}

// Clamp limits v to the range.
func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Move returns v shifted by n steps, clamped to the range. A slider never
// moves outside its bounds even when v started outside them.
func (r Range) Move(v float64, n int) float64 {
	return r.Clamp(v + float64(n)*r.Step)
}
