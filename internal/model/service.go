// Package model defines domain types for pcalc services, income sources and goals.
package model

// ServiceEntry is one billable service type offered by the practice.
// Base values are the declared current baseline; adjusted values are the
// what-if scenario driven by the sliders.
type ServiceEntry struct {
	ID               int     `json:"id"`
	VisitType        string  `json:"visitType"`
	Payer            string  `json:"payer"`
	SessionLength    float64 `json:"sessionLength"` // minutes
	AdminTime        float64 `json:"adminTime"`     // minutes
	BaseRate         float64 `json:"baseRate"`
	BaseSessions     float64 `json:"baseSessions"` // per month
	AdjustedRate     float64 `json:"adjustedRate"`
	AdjustedSessions float64 `json:"adjustedSessions"`
}

// Rate returns the per-session rate for the selected scenario.
func (s ServiceEntry) Rate(useAdjusted bool) float64 {
	if useAdjusted {
		return s.AdjustedRate
	}
	return s.BaseRate
}

// Sessions returns the monthly session count for the selected scenario.
func (s ServiceEntry) Sessions(useAdjusted bool) float64 {
	if useAdjusted {
		return s.AdjustedSessions
	}
	return s.BaseSessions
}

// Revenue returns rate x sessions for the selected scenario.
func (s ServiceEntry) Revenue(useAdjusted bool) float64 {
	return s.Rate(useAdjusted) * s.Sessions(useAdjusted)
}

// ServiceForm holds the user-editable base fields of a service.
// Adjusted values are never part of the form; saving a form resets them.
type ServiceForm struct {
	VisitType     string
	Payer         string
	SessionLength float64
	AdminTime     float64
	BaseRate      float64
	BaseSessions  float64
}

// DefaultServiceForm returns the values pre-filled for a new service.
func DefaultServiceForm() ServiceForm {
	return ServiceForm{
		SessionLength: 45,
		AdminTime:     15,
		BaseRate:      150,
		BaseSessions:  10,
	}
}

// FormOf extracts the editable fields of an existing entry.
func FormOf(s ServiceEntry) ServiceForm {
	return ServiceForm{
		VisitType:     s.VisitType,
		Payer:         s.Payer,
		SessionLength: s.SessionLength,
		AdminTime:     s.AdminTime,
		BaseRate:      s.BaseRate,
		BaseSessions:  s.BaseSessions,
	}
}

// DefaultServices returns the starter services shown on first launch.
func DefaultServices() []ServiceEntry {
	return []ServiceEntry{
		{
			ID:               1,
			VisitType:        "Individual 45",
			Payer:            "Private Pay",
			SessionLength:    45,
			AdminTime:        15,
			BaseRate:         150,
			BaseSessions:     10,
			AdjustedRate:     150,
			AdjustedSessions: 10,
		},
		{
			ID:               2,
			VisitType:        "Individual 60",
			Payer:            "Insurance",
			SessionLength:    60,
			AdminTime:        15,
			BaseRate:         120,
			BaseSessions:     15,
			AdjustedRate:     120,
			AdjustedSessions: 15,
		},
	}
}
