package model

import (
	"fmt"

	"github.com/google/uuid"
)

// MetricKind is one of the practice metrics a goal can target.
type MetricKind string

const (
	MetricRevenue      MetricKind = "revenue"
	MetricVisits       MetricKind = "visits"
	MetricBlendedRate  MetricKind = "blended_rate"
	MetricTherapyHours MetricKind = "therapy_hours"
	MetricAdminHours   MetricKind = "admin_hours"
	MetricTotalHours   MetricKind = "total_hours"
)

// MetricKinds lists all goal metrics in display order.
var MetricKinds = []MetricKind{
	MetricRevenue,
	MetricVisits,
	MetricBlendedRate,
	MetricTherapyHours,
	MetricAdminHours,
	MetricTotalHours,
}

// Title returns the label shown next to a goal.
func (k MetricKind) Title() string {
	switch k {
	case MetricRevenue:
		return "Monthly Revenue"
	case MetricVisits:
		return "Monthly Visits"
	case MetricBlendedRate:
		return "Blended Rate"
	case MetricTherapyHours:
		return "Therapy Hours"
	case MetricAdminHours:
		return "Admin Hours"
	case MetricTotalHours:
		return "Total Hours"
	}
	return string(k)
}

// IsMoney reports whether values of this metric are dollar amounts.
func (k MetricKind) IsMoney() bool {
	return k == MetricRevenue || k == MetricBlendedRate
}

// ParseMetricKind validates a metric name.
func ParseMetricKind(s string) (MetricKind, error) {
	for _, k := range MetricKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown metric %q", s)
}

// Comparison selects how a goal's target is compared to the current value.
type Comparison string

const (
	AtLeast    Comparison = "at_least"
	NoMoreThan Comparison = "no_more_than"
)

// Title returns the human-readable comparison.
func (c Comparison) Title() string {
	if c == NoMoreThan {
		return "no more than"
	}
	return "at least"
}

// ParseComparison validates a comparison name. Empty means AtLeast.
func ParseComparison(s string) (Comparison, error) {
	switch s {
	case "", string(AtLeast), "at-least", "min":
		return AtLeast, nil
	case string(NoMoreThan), "no-more-than", "max":
		return NoMoreThan, nil
	}
	return "", fmt.Errorf("unknown comparison %q", s)
}

// GoalMetric is a numeric target for one practice metric.
type GoalMetric struct {
	ID         uuid.UUID  `json:"id"`
	Metric     MetricKind `json:"metric"`
	Target     float64    `json:"target"`
	Comparison Comparison `json:"comparison"`
}

// NewGoalMetric creates a goal with a fresh identifier.
func NewGoalMetric(metric MetricKind, target float64, cmp Comparison) GoalMetric {
	if cmp == "" {
		cmp = AtLeast
	}
	return GoalMetric{
		ID:         uuid.New(),
		Metric:     metric,
		Target:     target,
		Comparison: cmp,
	}
}
