package pipeline

import (
	"github.com/theirongolddev/pcalc/internal/model"
)

// VisitTypeBreakdown holds base and adjusted figures for one visit type.
type VisitTypeBreakdown struct {
	VisitType       string
	Services        int
	BaseRevenue     float64
	AdjustedRevenue float64
	BaseHours       float64
	AdjustedHours   float64
	RevenueSharePct float64 // share of adjusted revenue
}

// AggregateVisitTypes computes per-visit-type revenue and hours for both
// scenarios, plus a totals row. Rows keep first-seen order.
func AggregateVisitTypes(entries []model.ServiceEntry) (VisitTypeBreakdown, []VisitTypeBreakdown) {
	totals := VisitTypeBreakdown{VisitType: "TOTAL"}
	idx := make(map[string]int)
	var rows []VisitTypeBreakdown

	for _, e := range entries {
		i, ok := idx[e.VisitType]
		if !ok {
			i = len(rows)
			idx[e.VisitType] = i
			rows = append(rows, VisitTypeBreakdown{VisitType: e.VisitType})
		}
		baseTh, baseAh := entryHours(e, false)
		adjTh, adjAh := entryHours(e, true)

		row := &rows[i]
		row.Services++
		row.BaseRevenue += e.Revenue(false)
		row.AdjustedRevenue += e.Revenue(true)
		row.BaseHours += baseTh + baseAh
		row.AdjustedHours += adjTh + adjAh

		totals.Services++
		totals.BaseRevenue += e.Revenue(false)
		totals.AdjustedRevenue += e.Revenue(true)
		totals.BaseHours += baseTh + baseAh
		totals.AdjustedHours += adjTh + adjAh
	}

	for i := range rows {
		if totals.AdjustedRevenue > 0 {
			rows[i].RevenueSharePct = rows[i].AdjustedRevenue / totals.AdjustedRevenue * 100
		}
	}
	if totals.AdjustedRevenue > 0 {
		totals.RevenueSharePct = 100
	}

	return totals, rows
}
