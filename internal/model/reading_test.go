package model

import (
	"testing"
	"time"
)

// TestNewReading verifies envelope construction and payload round trips.
func TestNewReading(t *testing.T) {
	t.Parallel()

	t.Run("forecast round trips", func(t *testing.T) {
		t.Parallel()
		f := &Forecast{
			Scope:        ScopeDaily,
			SunSign:      "gemini",
			Summary:      "A good day for bold decisions.",
			LuckyNumbers: []int{3, 7, 21},
			Sections:     map[string]string{"love": "Venus favors honesty."},
		}

		r, err := NewReading("r-1", KindForecast, "ana", ScopeDaily, f)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Kind != KindForecast {
			t.Errorf("expected KindForecast, got %v", r.Kind)
		}
		if r.CreatedAt.IsZero() {
			t.Error("expected CreatedAt to be set")
		}

		back, err := r.Forecast()
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if back.Summary != f.Summary {
			t.Errorf("expected summary %q, got %q", f.Summary, back.Summary)
		}
		if len(back.LuckyNumbers) != 3 {
			t.Errorf("expected 3 lucky numbers, got %d", len(back.LuckyNumbers))
		}
	})

	t.Run("kind mismatch errors", func(t *testing.T) {
		t.Parallel()
		r, err := NewReading("r-2", KindNumerology, "ana", ScopeNone, &NumerologyProfile{LifePath: 7})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := r.Forecast(); err == nil {
			t.Error("expected error decoding numerology reading as forecast")
		}
		if _, err := r.Compatibility(); err == nil {
			t.Error("expected error decoding numerology reading as compatibility")
		}
	})

	t.Run("compatibility round trips", func(t *testing.T) {
		t.Parallel()
		c := &CompatibilityResult{
			ProfileA:     "ana",
			ProfileB:     "bruno",
			Average:      8.5,
			AspectScores: map[string]float64{"emotional": 9, "intellectual": 7.4},
		}
		r, err := NewReading("r-3", KindCompatibility, "ana+bruno", ScopeNone, c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		back, err := r.Compatibility()
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if back.NormalizedScore() != 85 {
			t.Errorf("expected normalized score 85, got %d", back.NormalizedScore())
		}
	})

	t.Run("non-forecast readings carry no scope", func(t *testing.T) {
		t.Parallel()
		r, err := NewReading("r-5", KindNumerology, "ana", ScopeNone, &NumerologyProfile{LifePath: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Scope != ScopeNone {
			t.Errorf("expected ScopeNone, got %v", r.Scope)
		}
		if r.Scope.String() != "" {
			t.Errorf("expected empty scope string, got %q", r.Scope.String())
		}
	})

	t.Run("created at is recent", func(t *testing.T) {
		t.Parallel()
		r, err := NewReading("r-4", KindForecast, "ana", ScopeWeekly, &Forecast{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if time.Since(r.CreatedAt) > time.Minute {
			t.Errorf("CreatedAt too old: %v", r.CreatedAt)
		}
	})
}
