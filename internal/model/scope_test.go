package model

import (
	"encoding/json"
	"strings"
	"testing"
)

// TestParseScope tests scope parsing for all valid values and rejection
// of invalid input.
func TestParseScope(t *testing.T) {
	t.Parallel()

	t.Run("daily parses", func(t *testing.T) {
		t.Parallel()
		s, err := ParseScope("daily")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s != ScopeDaily {
			t.Errorf("expected ScopeDaily, got %v", s)
		}
	})

	t.Run("weekly parses", func(t *testing.T) {
		t.Parallel()
		s, err := ParseScope("weekly")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s != ScopeWeekly {
			t.Errorf("expected ScopeWeekly, got %v", s)
		}
	})

	t.Run("monthly parses", func(t *testing.T) {
		t.Parallel()
		s, err := ParseScope("monthly")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s != ScopeMonthly {
			t.Errorf("expected ScopeMonthly, got %v", s)
		}
	})

	t.Run("unknown value errors", func(t *testing.T) {
		t.Parallel()
		if _, err := ParseScope("yearly"); err == nil {
			t.Error("expected error for unknown scope")
		}
	})

	t.Run("uppercase is rejected", func(t *testing.T) {
		t.Parallel()
		if _, err := ParseScope("Daily"); err == nil {
			t.Error("expected error: parsing is exact, callers lowercase input")
		}
	})

	t.Run("empty string errors", func(t *testing.T) {
		t.Parallel()
		if _, err := ParseScope(""); err == nil {
			t.Error("expected error for empty scope")
		}
	})
}

// TestScopeString verifies wire representations.
func TestScopeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scope Scope
		want  string
	}{
		{ScopeNone, ""},
		{ScopeDaily, "daily"},
		{ScopeWeekly, "weekly"},
		{ScopeMonthly, "monthly"},
		{Scope(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.scope.String(); got != tt.want {
			t.Errorf("Scope(%d).String() = %q, want %q", int(tt.scope), got, tt.want)
		}
	}
}

// TestScopeJSONRoundTrip verifies that scopes serialize as their wire
// strings inside JSON documents.
func TestScopeJSONRoundTrip(t *testing.T) {
	t.Parallel()

	type doc struct {
		Scope Scope `json:"scope"`
	}

	data, err := json.Marshal(doc{Scope: ScopeWeekly})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"scope":"weekly"}` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var back doc
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back.Scope != ScopeWeekly {
		t.Errorf("expected ScopeWeekly after round trip, got %v", back.Scope)
	}
}

// TestScopeNoneSerialization verifies the absent-scope representation:
// empty on the wire, omitted from reading envelopes.
func TestScopeNoneSerialization(t *testing.T) {
	t.Parallel()

	t.Run("marshals as empty string", func(t *testing.T) {
		t.Parallel()
		type doc struct {
			Scope Scope `json:"scope"`
		}
		data, err := json.Marshal(doc{Scope: ScopeNone})
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if string(data) != `{"scope":""}` {
			t.Errorf("unexpected JSON: %s", data)
		}
	})

	t.Run("empty text unmarshals to none", func(t *testing.T) {
		t.Parallel()
		type doc struct {
			Scope Scope `json:"scope"`
		}
		var back doc
		if err := json.Unmarshal([]byte(`{"scope":""}`), &back); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if back.Scope != ScopeNone {
			t.Errorf("expected ScopeNone, got %v", back.Scope)
		}
	})

	t.Run("omitted from reading envelopes", func(t *testing.T) {
		t.Parallel()
		r, err := NewReading("r-omit", KindCompatibility, "ana+bruno", ScopeNone, &CompatibilityResult{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if strings.Contains(string(data), `"scope"`) {
			t.Errorf("expected scope to be omitted, got %s", data)
		}
	})
}
