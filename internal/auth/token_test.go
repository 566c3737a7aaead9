package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// TestTokenStore tests save/load/clear round trips.
func TestTokenStore(t *testing.T) {
	t.Parallel()

	t.Run("load without save returns ErrNotLoggedIn", func(t *testing.T) {
		t.Parallel()
		s := NewTokenStore(t.TempDir())
		if _, err := s.Load(); !errors.Is(err, ErrNotLoggedIn) {
			t.Errorf("expected ErrNotLoggedIn, got %v", err)
		}
	})

	t.Run("save then load round trips", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		s := NewTokenStore(dir)
		if err := s.Save("tok123"); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		token, err := s.Load()
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if token != "tok123" {
			t.Errorf("expected 'tok123', got %q", token)
		}

		// Token file must be owner-only.
		if runtime.GOOS != "windows" {
			info, err := os.Stat(filepath.Join(dir, "token"))
			if err != nil {
				t.Fatalf("stat failed: %v", err)
			}
			if perm := info.Mode().Perm(); perm != 0600 {
				t.Errorf("expected permissions 0600, got %o", perm)
			}
		}
	})

	t.Run("empty token is rejected", func(t *testing.T) {
		t.Parallel()
		s := NewTokenStore(t.TempDir())
		if err := s.Save("   "); err == nil {
			t.Error("expected error saving empty token")
		}
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		t.Parallel()
		s := NewTokenStore(t.TempDir())
		if err := s.Clear(); err != nil {
			t.Errorf("clear without token should not error, got %v", err)
		}
		if err := s.Save("tok"); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		if err := s.Clear(); err != nil {
			t.Errorf("clear failed: %v", err)
		}
		if _, err := s.Load(); !errors.Is(err, ErrNotLoggedIn) {
			t.Errorf("expected ErrNotLoggedIn after clear, got %v", err)
		}
	})
}

// unsignedJWT builds a JWT-shaped token with the given claims and an empty
// signature. Inspect never verifies signatures, so this is sufficient.
func unsignedJWT(t *testing.T, claims map[string]any) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("failed to marshal claims: %v", err)
	}
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + "."
}

// TestInspect tests unverified JWT inspection.
func TestInspect(t *testing.T) {
	t.Parallel()

	t.Run("JWT with subject and expiry", func(t *testing.T) {
		t.Parallel()
		exp := time.Now().Add(time.Hour).Unix()
		token := unsignedJWT(t, map[string]any{"sub": "ana@example.com", "exp": exp})

		info := Inspect(token)
		if info.Opaque {
			t.Fatal("expected JWT to be recognized")
		}
		if info.Subject != "ana@example.com" {
			t.Errorf("expected subject, got %q", info.Subject)
		}
		if info.Expired() {
			t.Error("token should not be expired")
		}
	})

	t.Run("expired JWT reports Expired", func(t *testing.T) {
		t.Parallel()
		token := unsignedJWT(t, map[string]any{"exp": time.Now().Add(-time.Hour).Unix()})
		info := Inspect(token)
		if !info.Expired() {
			t.Error("expected Expired to be true")
		}
	})

	t.Run("opaque token is accepted", func(t *testing.T) {
		t.Parallel()
		info := Inspect("not-a-jwt-at-all")
		if !info.Opaque {
			t.Error("expected Opaque to be true")
		}
		if info.Expired() {
			t.Error("opaque tokens never report expired")
		}
	})
}
