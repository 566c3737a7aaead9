package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/btltech/astromeric-sub000/internal/model"
)

// TestStoreLoadSave tests app state persistence.
func TestStoreLoadSave(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields zero state", func(t *testing.T) {
		t.Parallel()
		st := NewStore(t.TempDir())
		s, err := st.Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Theme != "" || s.DefaultScope != "" || s.ActiveProfile != "" {
			t.Errorf("expected zero state, got %+v", s)
		}
	})

	t.Run("save then load round trips", func(t *testing.T) {
		t.Parallel()
		st := NewStore(t.TempDir())

		s := &State{Theme: "dark", ActiveProfile: "ana"}
		s.SetScope(model.ScopeWeekly)
		if err := st.Save(s); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		back, err := st.Load()
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if back.Theme != "dark" {
			t.Errorf("expected theme 'dark', got %q", back.Theme)
		}
		if back.ActiveProfile != "ana" {
			t.Errorf("expected active profile 'ana', got %q", back.ActiveProfile)
		}
		if back.Scope(model.ScopeDaily) != model.ScopeWeekly {
			t.Errorf("expected weekly scope, got %v", back.Scope(model.ScopeDaily))
		}
	})

	t.Run("corrupt file errors on load", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "state.json"), []byte("{"), 0600); err != nil {
			t.Fatalf("failed to write corrupt state: %v", err)
		}
		if _, err := NewStore(dir).Load(); err == nil {
			t.Error("expected error for corrupt state file")
		}
	})

	t.Run("unparseable scope falls back", func(t *testing.T) {
		t.Parallel()
		s := &State{DefaultScope: "fortnightly"}
		if got := s.Scope(model.ScopeMonthly); got != model.ScopeMonthly {
			t.Errorf("expected fallback to monthly, got %v", got)
		}
	})
}

// newTestReading builds a reading envelope for cache tests.
func newTestReading(t *testing.T, id string) *model.Reading {
	t.Helper()
	r, err := model.NewReading(id, model.KindForecast, "ana", model.ScopeDaily, &model.Forecast{Summary: id})
	if err != nil {
		t.Fatalf("failed to build reading: %v", err)
	}
	return r
}

// TestAnonCache tests the capped anonymous reading cache.
func TestAnonCache(t *testing.T) {
	t.Parallel()

	t.Run("empty cache lists nothing", func(t *testing.T) {
		t.Parallel()
		c := NewAnonCache(t.TempDir())
		readings, err := c.List()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(readings) != 0 {
			t.Errorf("expected empty cache, got %d entries", len(readings))
		}
	})

	t.Run("add prepends newest first", func(t *testing.T) {
		t.Parallel()
		c := NewAnonCache(t.TempDir())
		for _, id := range []string{"first", "second", "third"} {
			if err := c.Add(newTestReading(t, id)); err != nil {
				t.Fatalf("add failed: %v", err)
			}
		}

		readings, err := c.List()
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(readings) != 3 {
			t.Fatalf("expected 3 readings, got %d", len(readings))
		}
		if readings[0].ID != "third" {
			t.Errorf("expected newest first, got %q", readings[0].ID)
		}
		if readings[2].ID != "first" {
			t.Errorf("expected oldest last, got %q", readings[2].ID)
		}
	})

	t.Run("cap of 10 drops the oldest", func(t *testing.T) {
		t.Parallel()
		c := NewAnonCache(t.TempDir())
		for i := 0; i < AnonCacheCap+3; i++ {
			if err := c.Add(newTestReading(t, fmt.Sprintf("r-%d", i))); err != nil {
				t.Fatalf("add failed: %v", err)
			}
		}

		readings, err := c.List()
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(readings) != AnonCacheCap {
			t.Fatalf("expected %d readings, got %d", AnonCacheCap, len(readings))
		}
		if readings[0].ID != "r-12" {
			t.Errorf("expected newest reading r-12 first, got %q", readings[0].ID)
		}
		// r-0 through r-2 were evicted.
		if readings[len(readings)-1].ID != "r-3" {
			t.Errorf("expected oldest surviving reading r-3, got %q", readings[len(readings)-1].ID)
		}
	})

	t.Run("get by id", func(t *testing.T) {
		t.Parallel()
		c := NewAnonCache(t.TempDir())
		if err := c.Add(newTestReading(t, "wanted")); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		r, err := c.Get("wanted")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if r.ID != "wanted" {
			t.Errorf("expected 'wanted', got %q", r.ID)
		}

		if _, err := c.Get("missing"); !errors.Is(err, ErrReadingNotFound) {
			t.Errorf("expected ErrReadingNotFound, got %v", err)
		}
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		t.Parallel()
		c := NewAnonCache(t.TempDir())
		if err := c.Clear(); err != nil {
			t.Errorf("clear on empty cache should not error, got %v", err)
		}
		if err := c.Add(newTestReading(t, "r")); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := c.Clear(); err != nil {
			t.Fatalf("clear failed: %v", err)
		}
		readings, err := c.List()
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(readings) != 0 {
			t.Errorf("expected empty cache after clear, got %d", len(readings))
		}
	})
}
