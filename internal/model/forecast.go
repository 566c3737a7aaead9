package model

import "time"

// Forecast is backend-computed astrological content for a profile and scope.
// It mirrors the ForecastResponse payload.
//
// Design decision: We keep the struct flat and serialize it whole into the
// reading history rather than normalizing sections into their own tables.
// Forecasts are read-only once received; there is nothing to update.
type Forecast struct {
	// Scope is the time horizon the forecast covers.
	Scope Scope `json:"scope"`

	// PeriodStart and PeriodEnd bound the covered dates.
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	// SunSign is the profile's zodiac sign as computed by the backend.
	SunSign string `json:"sun_sign"`

	// Summary is the headline text of the forecast.
	Summary string `json:"summary"`

	// Sections maps a life area (love, career, health, ...) to its text.
	Sections map[string]string `json:"sections,omitempty"`

	// LuckyNumbers are the numbers the backend associates with the period.
	LuckyNumbers []int `json:"lucky_numbers,omitempty"`

	// Mood is a one-word mood descriptor for the period.
	Mood string `json:"mood,omitempty"`
}

// NumerologyProfile is backend-computed numerology content for a profile.
// The core numbers follow Pythagorean numerology; each carries the backend's
// interpretation text so the client never computes locally.
type NumerologyProfile struct {
	// LifePath is the life path number derived from the birth date.
	LifePath int `json:"life_path"`

	// Expression is the expression (destiny) number derived from the name.
	Expression int `json:"expression"`

	// SoulUrge is the soul urge (heart's desire) number.
	SoulUrge int `json:"soul_urge"`

	// Personality is the personality number.
	Personality int `json:"personality"`

	// Birthday is the birthday number.
	Birthday int `json:"birthday"`

	// Interpretations maps a number name ("life_path", ...) to the
	// backend's explanation text.
	Interpretations map[string]string `json:"interpretations,omitempty"`
}

// CoreNumbers returns the numerology numbers in display order.
// The order matches how the web app lists them.
func (n *NumerologyProfile) CoreNumbers() []struct {
	Key   string
	Value int
} {
	return []struct {
		Key   string
		Value int
	}{
		{"life_path", n.LifePath},
		{"expression", n.Expression},
		{"soul_urge", n.SoulUrge},
		{"personality", n.Personality},
		{"birthday", n.Birthday},
	}
}
