// Package pipeline computes derived practice metrics from service and income records.
//
// Every function here is pure: it reads the entries it is given, never
// mutates them, and returns zero values for empty input.
package pipeline

import (
	"github.com/theirongolddev/pcalc/internal/model"
)

// CalculateRevenue sums rate x sessions across entries for the selected scenario.
// The result is not rounded; rounding happens at display time.
func CalculateRevenue(entries []model.ServiceEntry, useAdjusted bool) float64 {
	var total float64
	for _, e := range entries {
		total += e.Revenue(useAdjusted)
	}
	return total
}

// CalculateHours sums therapy and admin hours across entries.
func CalculateHours(entries []model.ServiceEntry, useAdjusted bool) model.Hours {
	var h model.Hours
	for _, e := range entries {
		th, ah := entryHours(e, useAdjusted)
		h.Therapy += th
		h.Admin += ah
	}
	// Derived from the two sums so Total == Therapy + Admin holds exactly.
	h.Total = h.Therapy + h.Admin
	return h
}

func entryHours(e model.ServiceEntry, useAdjusted bool) (therapy, admin float64) {
	sessions := e.Sessions(useAdjusted)
	return (e.SessionLength / 60) * sessions, (e.AdminTime / 60) * sessions
}

// CalculateTotalVisits sums monthly sessions across entries.
func CalculateTotalVisits(entries []model.ServiceEntry, useAdjusted bool) float64 {
	var total float64
	for _, e := range entries {
		total += e.Sessions(useAdjusted)
	}
	return total
}

// CalculateBlendedRate returns revenue per session, or 0 when there are no sessions.
func CalculateBlendedRate(entries []model.ServiceEntry, useAdjusted bool) float64 {
	sessions := CalculateTotalVisits(entries, useAdjusted)
	if sessions == 0 {
		return 0
	}
	return CalculateRevenue(entries, useAdjusted) / sessions
}

// Metrics computes every scalar metric for one scenario.
func Metrics(entries []model.ServiceEntry, useAdjusted bool) model.PracticeMetrics {
	return model.PracticeMetrics{
		Revenue:     CalculateRevenue(entries, useAdjusted),
		Visits:      CalculateTotalVisits(entries, useAdjusted),
		BlendedRate: CalculateBlendedRate(entries, useAdjusted),
		Hours:       CalculateHours(entries, useAdjusted),
	}
}

// Summarize computes base and adjusted metrics for the monthly summary.
func Summarize(entries []model.ServiceEntry) model.PracticeSummary {
	return model.PracticeSummary{
		Base:     Metrics(entries, false),
		Adjusted: Metrics(entries, true),
	}
}

// MetricValue extracts the value a goal of the given kind is measured against.
func MetricValue(kind model.MetricKind, m model.PracticeMetrics) float64 {
	switch kind {
	case model.MetricRevenue:
		return m.Revenue
	case model.MetricVisits:
		return m.Visits
	case model.MetricBlendedRate:
		return m.BlendedRate
	case model.MetricTherapyHours:
		return m.Hours.Therapy
	case model.MetricAdminHours:
		return m.Hours.Admin
	case model.MetricTotalHours:
		return m.Hours.Total
	}
	return 0
}

// GroupTotal is the accumulated value for one group key.
type GroupTotal struct {
	Key   string
	Value float64
}

// AggregateByGroup folds entries into per-key totals. Keys appear in the
// order they are first seen, so repeated calls over the same entry order
// produce the same output order.
func AggregateByGroup[E any](entries []E, keyFn func(E) string, valueFn func(E) float64) []GroupTotal {
	idx := make(map[string]int)
	var groups []GroupTotal
	for _, e := range entries {
		key := keyFn(e)
		i, ok := idx[key]
		if !ok {
			i = len(groups)
			idx[key] = i
			groups = append(groups, GroupTotal{Key: key})
		}
		groups[i].Value += valueFn(e)
	}
	return groups
}

func byVisitType(e model.ServiceEntry) string { return e.VisitType }
func byPayer(e model.ServiceEntry) string     { return e.Payer }

func revenueOf(useAdjusted bool) func(model.ServiceEntry) float64 {
	return func(e model.ServiceEntry) float64 { return e.Revenue(useAdjusted) }
}

func hoursOf(useAdjusted bool) func(model.ServiceEntry) float64 {
	return func(e model.ServiceEntry) float64 {
		th, ah := entryHours(e, useAdjusted)
		return th + ah
	}
}

// RevenueByVisitType groups scenario revenue by visit type.
func RevenueByVisitType(entries []model.ServiceEntry, useAdjusted bool) []GroupTotal {
	return AggregateByGroup(entries, byVisitType, revenueOf(useAdjusted))
}

// HoursByVisitType groups scenario therapy+admin hours by visit type.
func HoursByVisitType(entries []model.ServiceEntry, useAdjusted bool) []GroupTotal {
	return AggregateByGroup(entries, byVisitType, hoursOf(useAdjusted))
}

// PayerMix groups scenario revenue by payer as a flat name/value list.
func PayerMix(entries []model.ServiceEntry, useAdjusted bool) []model.NameValue {
	groups := AggregateByGroup(entries, byPayer, revenueOf(useAdjusted))
	mix := make([]model.NameValue, len(groups))
	for i, g := range groups {
		mix[i] = model.NameValue{Name: g.Key, Value: g.Value}
	}
	return mix
}

// VisitTypes returns the distinct visit types in first-seen order.
func VisitTypes(entries []model.ServiceEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	var names []string
	for _, e := range entries {
		if _, ok := seen[e.VisitType]; ok {
			continue
		}
		seen[e.VisitType] = struct{}{}
		names = append(names, e.VisitType)
	}
	return names
}
