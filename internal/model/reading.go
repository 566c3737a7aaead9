package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// ReadingKind identifies what a stored reading contains.
type ReadingKind string

const (
	// KindForecast marks a reading holding a Forecast payload.
	KindForecast ReadingKind = "forecast"

	// KindNumerology marks a reading holding a NumerologyProfile payload.
	KindNumerology ReadingKind = "numerology"

	// KindCompatibility marks a reading holding a CompatibilityResult payload.
	KindCompatibility ReadingKind = "compatibility"
)

// Reading is the envelope stored in the reading history and the anonymous
// cache. The payload is kept as raw JSON so the history can hold any reading
// kind without a union type.
//
// Design decision: We store payloads as json.RawMessage rather than
// interface{} because readings round-trip through sqlite and the anon cache
// file; raw JSON survives both without type registries.
type Reading struct {
	// ID uniquely identifies the reading. IDs are uuids generated
	// client-side so anonymous readings are addressable before any
	// backend account exists.
	ID string `json:"id"`

	// Kind tells which payload type the envelope holds.
	Kind ReadingKind `json:"kind"`

	// ProfileName is the saved profile the reading was computed for.
	// Compatibility readings use "a+b" form.
	ProfileName string `json:"profile_name"`

	// Scope is set for forecast readings and ScopeNone otherwise.
	Scope Scope `json:"scope,omitempty"`

	// CreatedAt is when the reading was received from the backend.
	CreatedAt time.Time `json:"created_at"`

	// Payload is the backend response serialized as JSON.
	Payload json.RawMessage `json:"payload"`
}

// NewReading wraps a backend payload into a reading envelope.
func NewReading(id string, kind ReadingKind, profileName string, scope Scope, payload any) (*Reading, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s payload: %w", kind, err)
	}
	return &Reading{
		ID:          id,
		Kind:        kind,
		ProfileName: profileName,
		Scope:       scope,
		CreatedAt:   time.Now(),
		Payload:     raw,
	}, nil
}

// Forecast decodes the payload as a Forecast.
// It returns an error if the reading is not a forecast.
func (r *Reading) Forecast() (*Forecast, error) {
	if r.Kind != KindForecast {
		return nil, fmt.Errorf("reading %s is %s, not a forecast", r.ID, r.Kind)
	}
	var f Forecast
	if err := json.Unmarshal(r.Payload, &f); err != nil {
		return nil, fmt.Errorf("failed to decode forecast payload: %w", err)
	}
	return &f, nil
}

// Numerology decodes the payload as a NumerologyProfile.
func (r *Reading) Numerology() (*NumerologyProfile, error) {
	if r.Kind != KindNumerology {
		return nil, fmt.Errorf("reading %s is %s, not a numerology profile", r.ID, r.Kind)
	}
	var n NumerologyProfile
	if err := json.Unmarshal(r.Payload, &n); err != nil {
		return nil, fmt.Errorf("failed to decode numerology payload: %w", err)
	}
	return &n, nil
}

// Compatibility decodes the payload as a CompatibilityResult.
func (r *Reading) Compatibility() (*CompatibilityResult, error) {
	if r.Kind != KindCompatibility {
		return nil, fmt.Errorf("reading %s is %s, not a compatibility result", r.ID, r.Kind)
	}
	var c CompatibilityResult
	if err := json.Unmarshal(r.Payload, &c); err != nil {
		return nil, fmt.Errorf("failed to decode compatibility payload: %w", err)
	}
	return &c, nil
}
