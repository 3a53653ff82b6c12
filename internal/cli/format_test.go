package cli

import (
	"testing"

	"github.com/theirongolddev/pcalc/internal/model"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{150, "$150"},
		{13291.7, "$13,292"},
		{2.5, "$3"},
		{1234567, "$1,234,567"},
		{-50, "-$50"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{132, "$132.00"},
		{0, "$0.00"},
		{1234.5, "$1,234.50"},
	}
	for _, tt := range tests {
		if got := FormatRate(tt.in); got != tt.want {
			t.Errorf("FormatRate(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatChange(t *testing.T) {
	tests := []struct {
		value, base float64
		want        string
	}{
		{2250, 1500, "(+750)"},
		{10, 15, "(-5)"},
		{7.5, 7.5, ""},
		{1, 0.5, "(+0.5)"},
		{5000, 1000, "(+4,000)"},
	}
	for _, tt := range tests {
		if got := FormatChange(tt.value, tt.base); got != tt.want {
			t.Errorf("FormatChange(%v, %v) = %q, want %q", tt.value, tt.base, got, tt.want)
		}
	}
}

func TestFormatPercentAndHours(t *testing.T) {
	if got := FormatPercent(0.456); got != "46%" {
		t.Errorf("FormatPercent = %q", got)
	}
	if got := FormatHours(28.75); got != "28.75" {
		t.Errorf("FormatHours = %q", got)
	}
	if got := FormatGoalPercent(12); got != "+12%" {
		t.Errorf("FormatGoalPercent(12) = %q", got)
	}
	if got := FormatGoalPercent(-25); got != "-25%" {
		t.Errorf("FormatGoalPercent(-25) = %q", got)
	}
}

func TestFormatMetric(t *testing.T) {
	if got := FormatMetric(model.MetricRevenue, 3300); got != "$3,300" {
		t.Errorf("revenue = %q", got)
	}
	if got := FormatMetric(model.MetricBlendedRate, 132); got != "$132.00" {
		t.Errorf("blended rate = %q", got)
	}
	if got := FormatMetric(model.MetricVisits, 25); got != "25" {
		t.Errorf("visits = %q", got)
	}
	if got := FormatMetric(model.MetricAdminHours, 6.25); got != "6.25h" {
		t.Errorf("admin hours = %q", got)
	}
}

func TestFormatIncomeDetail(t *testing.T) {
	if got := FormatIncomeDetail(model.DefaultClientIncome("x")); got != "$150 x 20 sessions/mo" {
		t.Errorf("client = %q", got)
	}
	if got := FormatIncomeDetail(model.W2Income{Amount: 60000, Start: "2026-07"}); got != "$60,000/yr, from 2026-07" {
		t.Errorf("w2 = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Individual 45", 20); got != "Individual 45" {
		t.Errorf("short = %q", got)
	}
	if got := Truncate("Individual 45", 8); got != "Individ…" {
		t.Errorf("long = %q", got)
	}
}
