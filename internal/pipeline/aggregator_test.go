package pipeline

import (
	"math"
	"reflect"
	"testing"

	"github.com/theirongolddev/pcalc/internal/model"
)

func svc(id int, visitType, payer string, length, admin, rate, sessions float64) model.ServiceEntry {
	return model.ServiceEntry{
		ID:               id,
		VisitType:        visitType,
		Payer:            payer,
		SessionLength:    length,
		AdminTime:        admin,
		BaseRate:         rate,
		BaseSessions:     sessions,
		AdjustedRate:     rate,
		AdjustedSessions: sessions,
	}
}

func TestCalculateRevenue_AdjustedAndBase(t *testing.T) {
	entries := []model.ServiceEntry{svc(1, "Individual 45", "Private Pay", 45, 15, 150, 10)}

	if got := CalculateRevenue(entries, true); got != 1500 {
		t.Fatalf("adjusted revenue = %v, want 1500", got)
	}

	entries[0].AdjustedSessions = 15
	if got := CalculateRevenue(entries, true); got != 2250 {
		t.Fatalf("adjusted revenue after slider = %v, want 2250", got)
	}
	if got := CalculateRevenue(entries, false); got != 1500 {
		t.Fatalf("base revenue after slider = %v, want 1500 (unchanged)", got)
	}
}

func TestCalculateRevenue_SumsSelectedFields(t *testing.T) {
	entries := []model.ServiceEntry{
		{BaseRate: 100, BaseSessions: 4, AdjustedRate: 110, AdjustedSessions: 5},
		{BaseRate: 80, BaseSessions: 10, AdjustedRate: 90, AdjustedSessions: 2},
	}
	if got, want := CalculateRevenue(entries, false), 100.0*4+80*10; got != want {
		t.Errorf("base revenue = %v, want %v", got, want)
	}
	if got, want := CalculateRevenue(entries, true), 110.0*5+90*2; got != want {
		t.Errorf("adjusted revenue = %v, want %v", got, want)
	}
}

func TestCalculateHours_Scenario(t *testing.T) {
	entries := []model.ServiceEntry{{SessionLength: 60, AdminTime: 15, AdjustedSessions: 15}}

	h := CalculateHours(entries, true)
	if h.Therapy != 15 {
		t.Errorf("Therapy = %v, want 15", h.Therapy)
	}
	if h.Admin != 3.75 {
		t.Errorf("Admin = %v, want 3.75", h.Admin)
	}
	if h.Total != 18.75 {
		t.Errorf("Total = %v, want 18.75", h.Total)
	}
}

func TestCalculateHours_TotalIsExactSum(t *testing.T) {
	sets := [][]model.ServiceEntry{
		nil,
		model.DefaultServices(),
		{
			svc(1, "A", "P", 50, 10, 120, 7),
			svc(2, "B", "P", 53, 17, 95, 13),
			svc(3, "C", "Q", 90, 11, 200, 3),
		},
	}
	for i, entries := range sets {
		for _, adj := range []bool{false, true} {
			h := CalculateHours(entries, adj)
			if h.Total != h.Therapy+h.Admin {
				t.Errorf("set %d adjusted=%v: Total %v != Therapy+Admin %v", i, adj, h.Total, h.Therapy+h.Admin)
			}
		}
	}
}

func TestCalculateHours_DoesNotMutateInput(t *testing.T) {
	entries := model.DefaultServices()
	before := make([]model.ServiceEntry, len(entries))
	copy(before, entries)

	_ = CalculateHours(entries, true)
	_ = CalculateHours(entries, false)

	if !reflect.DeepEqual(entries, before) {
		t.Fatal("CalculateHours mutated its input")
	}
}

func TestCalculateBlendedRate_ZeroSessions(t *testing.T) {
	entries := []model.ServiceEntry{
		{BaseRate: 300, BaseSessions: 0, AdjustedRate: 250, AdjustedSessions: 0},
		{BaseRate: 120, BaseSessions: 0, AdjustedRate: 0, AdjustedSessions: 0},
	}
	for _, adj := range []bool{false, true} {
		got := CalculateBlendedRate(entries, adj)
		if got != 0 || math.IsNaN(got) || math.IsInf(got, 0) {
			t.Errorf("blended rate adjusted=%v = %v, want exactly 0", adj, got)
		}
	}
	if got := CalculateBlendedRate(nil, true); got != 0 {
		t.Errorf("blended rate of empty set = %v, want 0", got)
	}
}

func TestCalculateBlendedRate_Weighted(t *testing.T) {
	// (150*10 + 120*15) / 25 = 3300 / 25 = 132
	got := CalculateBlendedRate(model.DefaultServices(), true)
	if got != 132 {
		t.Fatalf("blended rate = %v, want 132", got)
	}
}

func TestCalculateTotalVisits(t *testing.T) {
	entries := model.DefaultServices()
	entries[1].AdjustedSessions = 20

	if got := CalculateTotalVisits(entries, false); got != 25 {
		t.Errorf("base visits = %v, want 25", got)
	}
	if got := CalculateTotalVisits(entries, true); got != 30 {
		t.Errorf("adjusted visits = %v, want 30", got)
	}
}

func TestEmptyEntriesAreZero(t *testing.T) {
	var entries []model.ServiceEntry
	if m := Metrics(entries, true); m != (model.PracticeMetrics{}) {
		t.Fatalf("Metrics(nil) = %+v, want zero value", m)
	}
	if g := PayerMix(entries, true); len(g) != 0 {
		t.Fatalf("PayerMix(nil) = %v, want empty", g)
	}
}

func TestAggregateByGroup_FirstSeenOrder(t *testing.T) {
	entries := []model.ServiceEntry{
		svc(1, "Couples", "Insurance", 60, 15, 100, 2),
		svc(2, "Intake", "Private Pay", 90, 30, 200, 1),
		svc(3, "Couples", "Sliding Scale", 60, 15, 80, 3),
		svc(4, "Group", "Insurance", 90, 10, 50, 4),
	}

	want := []GroupTotal{
		{Key: "Couples", Value: 100*2 + 80*3},
		{Key: "Intake", Value: 200},
		{Key: "Group", Value: 200},
	}
	for i := 0; i < 3; i++ {
		got := RevenueByVisitType(entries, true)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("call %d: RevenueByVisitType = %v, want %v", i, got, want)
		}
	}

	payers := PayerMix(entries, false)
	names := make([]string, len(payers))
	for i, p := range payers {
		names[i] = p.Name
	}
	if !reflect.DeepEqual(names, []string{"Insurance", "Private Pay", "Sliding Scale"}) {
		t.Fatalf("payer order = %v", names)
	}
	if payers[0].Value != 100*2+50*4 {
		t.Fatalf("Insurance revenue = %v, want 400", payers[0].Value)
	}
}

func TestAggregateByGroup_Generic(t *testing.T) {
	type item struct {
		tag string
		n   float64
	}
	got := AggregateByGroup([]item{{"b", 1}, {"a", 2}, {"b", 3}},
		func(i item) string { return i.tag },
		func(i item) float64 { return i.n })
	want := []GroupTotal{{Key: "b", Value: 4}, {Key: "a", Value: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AggregateByGroup = %v, want %v", got, want)
	}
}

func TestHoursByVisitType(t *testing.T) {
	entries := []model.ServiceEntry{svc(1, "Individual 60", "Insurance", 60, 15, 120, 15)}
	got := HoursByVisitType(entries, true)
	if len(got) != 1 || got[0].Value != 18.75 {
		t.Fatalf("HoursByVisitType = %v, want [{Individual 60 18.75}]", got)
	}
}

func TestMetricValue(t *testing.T) {
	m := Metrics(model.DefaultServices(), true)
	cases := map[model.MetricKind]float64{
		model.MetricRevenue:      3300,
		model.MetricVisits:       25,
		model.MetricBlendedRate:  132,
		model.MetricTherapyHours: 7.5 + 15,
		model.MetricAdminHours:   2.5 + 3.75,
		model.MetricTotalHours:   22.5 + 6.25,
	}
	for kind, want := range cases {
		if got := MetricValue(kind, m); got != want {
			t.Errorf("MetricValue(%s) = %v, want %v", kind, got, want)
		}
	}
}

func TestAggregateVisitTypes(t *testing.T) {
	entries := model.DefaultServices()
	entries = append(entries, svc(3, "Individual 45", "Insurance", 45, 15, 100, 6))
	entries[0].AdjustedSessions = 12

	totals, rows := AggregateVisitTypes(entries)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].VisitType != "Individual 45" || rows[0].Services != 2 {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[0].BaseRevenue != 1500+600 || rows[0].AdjustedRevenue != 1800+600 {
		t.Fatalf("row 0 revenue base=%v adjusted=%v", rows[0].BaseRevenue, rows[0].AdjustedRevenue)
	}
	if totals.AdjustedRevenue != CalculateRevenue(entries, true) {
		t.Fatalf("totals adjusted = %v, want %v", totals.AdjustedRevenue, CalculateRevenue(entries, true))
	}
	share := rows[0].RevenueSharePct + rows[1].RevenueSharePct
	if math.Abs(share-100) > 1e-9 {
		t.Fatalf("shares sum to %v, want 100", share)
	}
}
