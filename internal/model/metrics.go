package model

// Hours holds monthly time spent, split into session and admin time.
type Hours struct {
	Therapy float64
	Admin   float64
	Total   float64
}

// PracticeMetrics holds the derived monthly figures for one scenario.
type PracticeMetrics struct {
	Revenue     float64
	Visits      float64
	BlendedRate float64
	Hours       Hours
}

// PracticeSummary holds base and adjusted metrics side by side.
type PracticeSummary struct {
	Base     PracticeMetrics
	Adjusted PracticeMetrics
}

// NameValue is a single labelled amount, e.g. one payer's revenue.
type NameValue struct {
	Name  string
	Value float64
}
