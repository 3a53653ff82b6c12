package pipeline

import (
	"testing"

	"github.com/theirongolddev/pcalc/internal/model"
)

func TestCalculateAnnualIncome_ClientGolden(t *testing.T) {
	incomes := []model.IncomeEntry{model.ClientIncome{Label: "Clients", Rate: 150, SessionsPerMonth: 20}}

	// 150*20*12*48/52 = 691200/52 = 13292.307...
	if got := CalculateAnnualIncome(incomes, 4); got != 13292 {
		t.Fatalf("annual income = %d, want 13292", got)
	}
}

func TestCalculateAnnualIncome_RoundsEachEntryBeforeSumming(t *testing.T) {
	// Each source contributes 13292.307..., rounded to 13292. Three of them
	// sum to 39876, while rounding the unrounded total would give 39877.
	c := model.ClientIncome{Label: "c", Rate: 150, SessionsPerMonth: 20}
	incomes := []model.IncomeEntry{c, c, c}

	if got := IncomeContribution(c, 4); got != 13292 {
		t.Fatalf("single contribution = %d, want 13292", got)
	}
	if got := CalculateAnnualIncome(incomes, 4); got != 39876 {
		t.Fatalf("annual income = %d, want 39876 (round-then-sum)", got)
	}
}

func TestCalculateAnnualIncome_Misc(t *testing.T) {
	tests := []struct {
		name     string
		entry    model.MiscIncome
		weeksOff float64
		want     int64
	}{
		{"weekly prorated", model.MiscIncome{Amount: 100, Period: model.PeriodWeek}, 2, 5000},
		{"monthly ignores weeks off", model.MiscIncome{Amount: 250.4, Period: model.PeriodMonth}, 10, 3005},
		{"yearly as-is", model.MiscIncome{Amount: 1200.5, Period: model.PeriodYear}, 10, 1201},
		{"unknown period", model.MiscIncome{Amount: 999, Period: "fortnight"}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateAnnualIncome([]model.IncomeEntry{tt.entry}, tt.weeksOff)
			if got != tt.want {
				t.Fatalf("annual = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCalculateAnnualIncome_Consulting(t *testing.T) {
	incomes := []model.IncomeEntry{model.ConsultingIncome{Label: "Consulting", Rate: 200, Hours: 5}}
	// 200*5*12*52/52 = 12000
	if got := CalculateAnnualIncome(incomes, 0); got != 12000 {
		t.Fatalf("annual = %d, want 12000", got)
	}
}

func TestCalculateAnnualIncome_W2(t *testing.T) {
	tests := []struct {
		start string
		want  int64
	}{
		{model.W2StartAll, 60000},
		{"2025-01", 60000},
		{"2025-07", 30000},
		{"2025-12", 5000},
		{"2025-10", 15000},
		{"garbage", 60000},
		{"2025-13", 60000},
	}
	for _, tt := range tests {
		got := CalculateAnnualIncome([]model.IncomeEntry{model.W2Income{Amount: 60000, Start: tt.start}}, 8)
		if got != tt.want {
			t.Errorf("start %q: annual = %d, want %d", tt.start, got, tt.want)
		}
	}
}

func TestCalculateAnnualIncome_AllWeeksOff(t *testing.T) {
	incomes := []model.IncomeEntry{
		model.ClientIncome{Rate: 150, SessionsPerMonth: 20},
		model.ConsultingIncome{Rate: 100, Hours: 10},
		model.MiscIncome{Amount: 50, Period: model.PeriodWeek},
	}
	if got := CalculateAnnualIncome(incomes, 52); got != 0 {
		t.Fatalf("time-based income with 52 weeks off = %d, want 0", got)
	}

	full := []model.IncomeEntry{
		model.MiscIncome{Amount: 100, Period: model.PeriodMonth},
		model.MiscIncome{Amount: 700, Period: model.PeriodYear},
		model.W2Income{Amount: 40000, Start: model.W2StartAll},
	}
	if got := CalculateAnnualIncome(append(incomes, full...), 52); got != 1200+700+40000 {
		t.Fatalf("annual with 52 weeks off = %d, want %d", got, 1200+700+40000)
	}
}

func TestCalculateAnnualIncome_Empty(t *testing.T) {
	if got := CalculateAnnualIncome(nil, 4); got != 0 {
		t.Fatalf("annual of nothing = %d, want 0", got)
	}
}

func TestStartMonth(t *testing.T) {
	if m, ok := StartMonth("2026-03"); !ok || m != 3 {
		t.Fatalf("StartMonth(2026-03) = %d, %v", m, ok)
	}
	if _, ok := StartMonth(model.W2StartAll); ok {
		t.Fatal("StartMonth(all) reported a month")
	}
}

func TestGoalPercent(t *testing.T) {
	if _, ok := GoalPercent(100, 0); ok {
		t.Fatal("GoalPercent with zero goal reported ok")
	}
	if pct, ok := GoalPercent(13292, 12000); !ok || pct != 11 {
		t.Fatalf("GoalPercent = %d, %v; want 11, true", pct, ok)
	}
	if pct, _ := GoalPercent(9000, 12000); pct != -25 {
		t.Fatalf("GoalPercent below goal = %d, want -25", pct)
	}
}

func TestRoundHalfUp(t *testing.T) {
	cases := map[float64]int64{2.5: 3, -2.5: -2, 13292.307: 13292, 0.49: 0}
	for in, want := range cases {
		if got := roundHalfUp(in); got != want {
			t.Errorf("roundHalfUp(%v) = %d, want %d", in, got, want)
		}
	}
}
