// Package chartdata reshapes metric aggregates into the tables chart
// renderers consume: named series over named categories.
package chartdata

import (
	"github.com/theirongolddev/pcalc/internal/model"
	"github.com/theirongolddev/pcalc/internal/pipeline"
)

// Scenario category labels.
const (
	CategoryBase     = "Base"
	CategoryAdjusted = "Adjusted"
)

// Series names used by TimeAllocation.
const (
	SeriesTherapy = "therapy"
	SeriesAdmin   = "admin"
)

// Row is one category (an x-axis group) with a value per series.
// A series with no contribution to this category has no key.
type Row struct {
	Category string
	Values   map[string]float64
}

// Value returns the row's value for series, reading a missing key as 0.
func (r Row) Value(series string) float64 {
	return r.Values[series]
}

// Total sums every series value in the row.
func (r Row) Total() float64 {
	var sum float64
	for _, v := range r.Values {
		sum += v
	}
	return sum
}

// Table is an ordered set of rows plus the series names in legend order.
type Table struct {
	Series []string
	Rows   []Row
}

// Max returns the largest row total, for scaling stacked bars.
func (t Table) Max() float64 {
	var peak float64
	for _, r := range t.Rows {
		if tot := r.Total(); tot > peak {
			peak = tot
		}
	}
	return peak
}

func rowFrom(category string, groups []pipeline.GroupTotal) Row {
	values := make(map[string]float64, len(groups))
	for _, g := range groups {
		values[g.Key] = g.Value
	}
	return Row{Category: category, Values: values}
}

// RevenueByScenario returns Base and Adjusted rows with one series per visit type.
func RevenueByScenario(entries []model.ServiceEntry) Table {
	return Table{
		Series: pipeline.VisitTypes(entries),
		Rows: []Row{
			rowFrom(CategoryBase, pipeline.RevenueByVisitType(entries, false)),
			rowFrom(CategoryAdjusted, pipeline.RevenueByVisitType(entries, true)),
		},
	}
}

// HoursByScenario returns Base and Adjusted rows of therapy+admin hours per visit type.
func HoursByScenario(entries []model.ServiceEntry) Table {
	return Table{
		Series: pipeline.VisitTypes(entries),
		Rows: []Row{
			rowFrom(CategoryBase, pipeline.HoursByVisitType(entries, false)),
			rowFrom(CategoryAdjusted, pipeline.HoursByVisitType(entries, true)),
		},
	}
}

// TimeAllocation returns one row per service with adjusted therapy and admin hours.
func TimeAllocation(entries []model.ServiceEntry) Table {
	t := Table{Series: []string{SeriesTherapy, SeriesAdmin}}
	for _, e := range entries {
		h := pipeline.CalculateHours([]model.ServiceEntry{e}, true)
		t.Rows = append(t.Rows, Row{
			Category: e.VisitType,
			Values: map[string]float64{
				SeriesTherapy: h.Therapy,
				SeriesAdmin:   h.Admin,
			},
		})
	}
	return t
}

// Slice is one pie segment.
type Slice struct {
	Name  string
	Value float64
	Share float64 // 0-1 of the total; 0 when the total is 0
}

// PayerSlices returns the payer mix for one scenario as pie segments.
func PayerSlices(entries []model.ServiceEntry, useAdjusted bool) []Slice {
	mix := pipeline.PayerMix(entries, useAdjusted)
	var total float64
	for _, nv := range mix {
		total += nv.Value
	}
	slices := make([]Slice, len(mix))
	for i, nv := range mix {
		slices[i] = Slice{Name: nv.Name, Value: nv.Value}
		if total != 0 {
			slices[i].Share = nv.Value / total
		}
	}
	return slices
}
