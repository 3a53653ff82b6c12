package pipeline

import (
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/pcalc/internal/model"
)

const weeksPerYear = 52

// WorkingWeeks returns the income-generating weeks in a year.
func WorkingWeeks(weeksOff float64) float64 {
	return weeksPerYear - weeksOff
}

// CalculateAnnualIncome projects yearly income from all sources.
// Each source's contribution is rounded before it is added, so the total is
// a sum of whole dollars rather than a rounded sum of fractions.
func CalculateAnnualIncome(incomes []model.IncomeEntry, weeksOff float64) int64 {
	var total int64
	for _, e := range incomes {
		total += IncomeContribution(e, weeksOff)
	}
	return total
}

// IncomeContribution returns one source's rounded annual contribution.
func IncomeContribution(e model.IncomeEntry, weeksOff float64) int64 {
	return roundHalfUp(annualAmount(e, WorkingWeeks(weeksOff)))
}

func annualAmount(e model.IncomeEntry, workingWeeks float64) float64 {
	switch v := e.(type) {
	case model.ClientIncome:
		return prorated(v.Rate*v.SessionsPerMonth, workingWeeks)
	case model.ConsultingIncome:
		return prorated(v.Rate*v.Hours, workingWeeks)
	case model.MiscIncome:
		switch v.Period {
		case model.PeriodWeek:
			return v.Amount * workingWeeks
		case model.PeriodMonth:
			return v.Amount * 12
		case model.PeriodYear:
			return v.Amount
		}
		return 0
	case model.W2Income:
		month, ok := StartMonth(v.Start)
		if !ok {
			return v.Amount
		}
		return v.Amount * (float64(13-month) / 12)
	}
	return 0
}

// prorated scales a monthly amount to a year of working weeks.
func prorated(monthly, workingWeeks float64) float64 {
	return monthly * 12 * (workingWeeks / weeksPerYear)
}

// StartMonth parses the 1-indexed month from a "YYYY-MM" salary start.
// It reports false for W2StartAll and for values without a valid month,
// both of which count as a full year.
func StartMonth(start string) (int, bool) {
	if start == model.W2StartAll {
		return 0, false
	}
	_, monthStr, found := strings.Cut(strings.TrimSpace(start), "-")
	if !found {
		return 0, false
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return 0, false
	}
	return month, true
}

// GoalPercent returns how far current is above (positive) or below
// (negative) goal, as a whole percentage. ok is false when goal is not
// positive.
func GoalPercent(current, goal float64) (pct int64, ok bool) {
	if goal <= 0 {
		return 0, false
	}
	return roundHalfUp((current - goal) / goal * 100), true
}

// roundHalfUp rounds to the nearest integer with halves going up (2.5 -> 3,
// -2.5 -> -2).
func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}
