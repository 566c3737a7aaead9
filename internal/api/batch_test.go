package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/btltech/astromeric-sub000/internal/model"
)

// TestBatchFetcher tests concurrent forecast fetching.
func TestBatchFetcher(t *testing.T) {
	t.Parallel()

	t.Run("results preserve input order", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Profile struct {
					Name string `json:"name"`
				} `json:"profile"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
			// Echo the profile name into the summary so the test can
			// check ordering.
			json.NewEncoder(w).Encode(model.Forecast{Summary: req.Profile.Name}) //nolint:errcheck // test server
		}))
		defer srv.Close()

		profiles := []*model.SavedProfile{
			testProfile("ana"),
			testProfile("bruno"),
			testProfile("carla"),
		}

		bf := NewBatchFetcher(NewClient(srv.URL), WithConcurrency(2))
		results, err := bf.FetchForecasts(context.Background(), profiles, model.ScopeDaily, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 3 {
			t.Fatalf("expected 3 results, got %d", len(results))
		}
		for i, want := range []string{"ana", "bruno", "carla"} {
			if results[i].Err != nil {
				t.Errorf("result %d: unexpected error %v", i, results[i].Err)
				continue
			}
			if results[i].Forecast.Summary != want {
				t.Errorf("result %d: expected %q, got %q", i, want, results[i].Forecast.Summary)
			}
		}
	})

	t.Run("individual failures do not abort the batch", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode(model.Forecast{Summary: "ok"}) //nolint:errcheck // test server
		}))
		defer srv.Close()

		profiles := []*model.SavedProfile{testProfile("ana"), testProfile("bruno")}

		// Concurrency 1 keeps the request order deterministic.
		bf := NewBatchFetcher(NewClient(srv.URL), WithConcurrency(1))
		results, err := bf.FetchForecasts(context.Background(), profiles, model.ScopeDaily, "")
		if err != nil {
			t.Fatalf("unexpected batch error: %v", err)
		}

		if results[0].Err == nil {
			t.Error("expected first result to carry an error")
		}
		if results[1].Err != nil {
			t.Errorf("expected second result to succeed, got %v", results[1].Err)
		}
	})

	t.Run("cancelled context stops the batch", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			json.NewEncoder(w).Encode(model.Forecast{}) //nolint:errcheck // test server
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		bf := NewBatchFetcher(NewClient(srv.URL))
		_, err := bf.FetchForecasts(ctx, []*model.SavedProfile{testProfile("ana")}, model.ScopeDaily, "")
		if err == nil {
			t.Error("expected error from cancelled context")
		}
	})
}
