// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/theirongolddev/pcalc/internal/model"
)

// round matches the half-up rounding used for displayed money figures.
func round(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

// FormatMoney formats a dollar amount rounded to whole dollars.
// e.g., 13291.7 -> "$13,292", -50 -> "-$50"
func FormatMoney(v float64) string {
	n := round(v)
	if n < 0 {
		return "-$" + humanize.Comma(-n)
	}
	return "$" + humanize.Comma(n)
}

// FormatRate formats a per-session rate with cents, e.g. "$132.00".
func FormatRate(v float64) string {
	if v < 0 {
		return "-" + FormatRate(-v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// FormatHours formats an hour count with two decimals.
func FormatHours(h float64) string {
	return fmt.Sprintf("%.2f", h)
}

// FormatNumber formats a value with comma separators and up to three
// decimals, trimming trailing zeros. e.g., 1234567 -> "1,234,567"
func FormatNumber(v float64) string {
	return humanize.CommafWithDigits(v, 3)
}

// FormatChange renders the difference between an adjusted value and its
// base as "(+N)" or "(-N)". It returns "" when the two are equal.
func FormatChange(value, base float64) string {
	diff := value - base
	if diff == 0 {
		return ""
	}
	sign := ""
	if diff > 0 {
		sign = "+"
	}
	return "(" + sign + FormatNumber(diff) + ")"
}

// FormatPercent formats a 0-1 share as a whole percentage, e.g. 0.456 -> "46%".
func FormatPercent(share float64) string {
	return fmt.Sprintf("%d%%", round(share*100))
}

// FormatGoalPercent formats a signed distance from a goal, e.g. "+12%" or "-25%".
func FormatGoalPercent(pct int64) string {
	if pct > 0 {
		return fmt.Sprintf("+%d%%", pct)
	}
	return fmt.Sprintf("%d%%", pct)
}

// FormatMetric formats a goal metric value in the metric's unit.
func FormatMetric(kind model.MetricKind, v float64) string {
	switch kind {
	case model.MetricRevenue:
		return FormatMoney(v)
	case model.MetricBlendedRate:
		return FormatRate(v)
	case model.MetricVisits:
		return FormatNumber(v)
	default:
		return FormatHours(v) + "h"
	}
}

// FormatIncomeDetail describes an income entry's inputs, e.g. "$150 x 20/mo".
func FormatIncomeDetail(e model.IncomeEntry) string {
	switch v := e.(type) {
	case model.ClientIncome:
		return fmt.Sprintf("%s x %s sessions/mo", FormatMoney(v.Rate), FormatNumber(v.SessionsPerMonth))
	case model.MiscIncome:
		return fmt.Sprintf("%s per %s", FormatMoney(v.Amount), v.Period)
	case model.ConsultingIncome:
		return fmt.Sprintf("%s x %s hours/mo", FormatMoney(v.Rate), FormatNumber(v.Hours))
	case model.W2Income:
		start := "full year"
		if v.Start != model.W2StartAll && v.Start != "" {
			start = "from " + v.Start
		}
		return fmt.Sprintf("%s/yr, %s", FormatMoney(v.Amount), start)
	}
	return ""
}

// Truncate shortens s to n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}
