package model

import (
	"encoding/json"
	"fmt"
)

// IncomeKind discriminates the IncomeEntry variants.
type IncomeKind string

const (
	IncomeClient     IncomeKind = "client"
	IncomeMisc       IncomeKind = "misc"
	IncomeConsulting IncomeKind = "consulting"
	IncomeW2         IncomeKind = "w2"
)

// IncomeKinds lists every variant in display order.
var IncomeKinds = []IncomeKind{IncomeClient, IncomeMisc, IncomeConsulting, IncomeW2}

// Title returns the human-readable name of the income kind.
func (k IncomeKind) Title() string {
	switch k {
	case IncomeClient:
		return "Clients/Hourly Rates"
	case IncomeMisc:
		return "Periodic Income"
	case IncomeConsulting:
		return "Consulting"
	case IncomeW2:
		return "W2 Salary"
	}
	return string(k)
}

// Period is the recurrence unit of a MiscIncome amount.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// W2StartAll marks a salary that covers the whole year.
const W2StartAll = "all"

// IncomeEntry is one income source in the simple calculator. The set of
// implementations is closed: ClientIncome, MiscIncome, ConsultingIncome and
// W2Income.
type IncomeEntry interface {
	Kind() IncomeKind
	Name() string
	isIncome()
}

// ClientIncome is hourly client work: rate x sessions per month.
type ClientIncome struct {
	Label            string
	Rate             float64
	SessionsPerMonth float64
}

// MiscIncome is a fixed amount recurring every Period.
type MiscIncome struct {
	Label  string
	Amount float64
	Period Period
}

// ConsultingIncome is consulting work: rate x hours per month.
type ConsultingIncome struct {
	Label string
	Rate  float64
	Hours float64
}

// W2Income is an annual salary, optionally starting mid-year.
// Start is W2StartAll or a "YYYY-MM" month.
type W2Income struct {
	Label  string
	Amount float64
	Start  string
}

func (ClientIncome) Kind() IncomeKind     { return IncomeClient }
func (MiscIncome) Kind() IncomeKind       { return IncomeMisc }
func (ConsultingIncome) Kind() IncomeKind { return IncomeConsulting }
func (W2Income) Kind() IncomeKind         { return IncomeW2 }

func (c ClientIncome) Name() string     { return c.Label }
func (m MiscIncome) Name() string       { return m.Label }
func (c ConsultingIncome) Name() string { return c.Label }
func (w W2Income) Name() string         { return w.Label }

func (ClientIncome) isIncome()     {}
func (MiscIncome) isIncome()       {}
func (ConsultingIncome) isIncome() {}
func (W2Income) isIncome()         {}

// DefaultClientIncome returns a client source with the standard starting values.
func DefaultClientIncome(label string) ClientIncome {
	return ClientIncome{Label: label, Rate: 150, SessionsPerMonth: 20}
}

// DefaultIncomeFor returns a fresh entry of the given kind.
func DefaultIncomeFor(kind IncomeKind, label string) (IncomeEntry, error) {
	switch kind {
	case IncomeClient:
		return DefaultClientIncome(label), nil
	case IncomeMisc:
		return MiscIncome{Label: label, Period: PeriodMonth}, nil
	case IncomeConsulting:
		return ConsultingIncome{Label: label}, nil
	case IncomeW2:
		return W2Income{Label: label, Start: W2StartAll}, nil
	}
	return nil, fmt.Errorf("unknown income type %q", kind)
}

// WithLabel returns a copy of e carrying the new label.
func WithLabel(e IncomeEntry, label string) IncomeEntry {
	switch v := e.(type) {
	case ClientIncome:
		v.Label = label
		return v
	case MiscIncome:
		v.Label = label
		return v
	case ConsultingIncome:
		v.Label = label
		return v
	case W2Income:
		v.Label = label
		return v
	}
	return e
}

// incomeJSON is the flat wire form shared by every variant.
type incomeJSON struct {
	Type             IncomeKind `json:"type"`
	Label            string     `json:"label"`
	Rate             *float64   `json:"rate,omitempty"`
	SessionsPerMonth *float64   `json:"sessionsPerMonth,omitempty"`
	MiscAmount       *float64   `json:"miscAmount,omitempty"`
	MiscPeriod       Period     `json:"miscPeriod,omitempty"`
	ConsultingRate   *float64   `json:"consultingRate,omitempty"`
	ConsultingHours  *float64   `json:"consultingHours,omitempty"`
	W2Amount         *float64   `json:"w2Amount,omitempty"`
	W2Start          string     `json:"w2Start,omitempty"`
}

func ptr(f float64) *float64 { return &f }

func val(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func toJSON(e IncomeEntry) (incomeJSON, error) {
	switch v := e.(type) {
	case ClientIncome:
		return incomeJSON{Type: IncomeClient, Label: v.Label, Rate: ptr(v.Rate), SessionsPerMonth: ptr(v.SessionsPerMonth)}, nil
	case MiscIncome:
		return incomeJSON{Type: IncomeMisc, Label: v.Label, MiscAmount: ptr(v.Amount), MiscPeriod: v.Period}, nil
	case ConsultingIncome:
		return incomeJSON{Type: IncomeConsulting, Label: v.Label, ConsultingRate: ptr(v.Rate), ConsultingHours: ptr(v.Hours)}, nil
	case W2Income:
		return incomeJSON{Type: IncomeW2, Label: v.Label, W2Amount: ptr(v.Amount), W2Start: v.Start}, nil
	}
	return incomeJSON{}, fmt.Errorf("unsupported income entry %T", e)
}

func fromJSON(raw incomeJSON) (IncomeEntry, error) {
	switch raw.Type {
	case IncomeClient:
		return ClientIncome{Label: raw.Label, Rate: val(raw.Rate), SessionsPerMonth: val(raw.SessionsPerMonth)}, nil
	case IncomeMisc:
		return MiscIncome{Label: raw.Label, Amount: val(raw.MiscAmount), Period: raw.MiscPeriod}, nil
	case IncomeConsulting:
		return ConsultingIncome{Label: raw.Label, Rate: val(raw.ConsultingRate), Hours: val(raw.ConsultingHours)}, nil
	case IncomeW2:
		start := raw.W2Start
		if start == "" {
			start = W2StartAll
		}
		return W2Income{Label: raw.Label, Amount: val(raw.W2Amount), Start: start}, nil
	}
	return nil, fmt.Errorf("unknown income type %q", raw.Type)
}

// Incomes is an ordered list of income entries with a tagged JSON encoding.
type Incomes []IncomeEntry

// MarshalJSON implements json.Marshaler.
func (in Incomes) MarshalJSON() ([]byte, error) {
	out := make([]incomeJSON, 0, len(in))
	for _, e := range in {
		raw, err := toJSON(e)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (in *Incomes) UnmarshalJSON(data []byte) error {
	var raws []incomeJSON
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(Incomes, 0, len(raws))
	for i, raw := range raws {
		e, err := fromJSON(raw)
		if err != nil {
			return fmt.Errorf("income %d: %w", i, err)
		}
		out = append(out, e)
	}
	*in = out
	return nil
}

// IncomeState is the persisted state of the simple income calculator.
type IncomeState struct {
	WeeksOff float64 `json:"weeksOff"`
	Incomes  Incomes `json:"incomes"`
}

// DefaultWeeksOff is the vacation allowance a fresh calculator starts with.
const DefaultWeeksOff = 4

// DefaultIncomeState returns the state used on first launch or after reset.
func DefaultIncomeState() IncomeState {
	return IncomeState{
		WeeksOff: DefaultWeeksOff,
		Incomes:  Incomes{DefaultClientIncome("Client Session 1")},
	}
}
