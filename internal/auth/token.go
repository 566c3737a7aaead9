package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenFileName is the file under the state directory holding the token.
const tokenFileName = "token"

// ErrNotLoggedIn is returned when no token is stored.
var ErrNotLoggedIn = errors.New("not logged in: run 'astromeric login'")

// TokenStore persists the bearer token in the state directory.
//
// Design decision: A plain 0600 file rather than an OS keyring keeps the
// CLI portable and scriptable; the token grants access to horoscope content,
// not payment data, so file permissions are a proportionate protection.
type TokenStore struct {
	// dir is the state directory holding the token file.
	dir string
}

// NewTokenStore creates a store rooted at the given state directory.
func NewTokenStore(dir string) *TokenStore {
	return &TokenStore{dir: dir}
}

// Save writes the token with owner-only permissions, creating the state
// directory if needed.
func (s *TokenStore) Save(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("refusing to save an empty token")
	}
	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	path := filepath.Join(s.dir, tokenFileName)
	if err := os.WriteFile(path, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Load returns the stored token, or ErrNotLoggedIn if none exists.
func (s *TokenStore) Load() (string, error) {
	path := filepath.Join(s.dir, tokenFileName)
	data, err := os.ReadFile(path) //nolint:gosec // path is under our state dir
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotLoggedIn
		}
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNotLoggedIn
	}
	return token, nil
}

// Clear removes the stored token. Clearing when not logged in is not an
// error; logout is idempotent.
func (s *TokenStore) Clear() error {
	path := filepath.Join(s.dir, tokenFileName)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// TokenInfo describes what could be read from a token without verifying it.
type TokenInfo struct {
	// Subject is the JWT "sub" claim, typically the account email or ID.
	// Empty for opaque (non-JWT) tokens.
	Subject string

	// ExpiresAt is the JWT "exp" claim. Zero for opaque tokens or JWTs
	// without an expiry.
	ExpiresAt time.Time

	// Opaque is true when the token is not a parseable JWT. Opaque tokens
	// are still sent to the backend as-is.
	Opaque bool
}

// Expired reports whether a known expiry has passed.
func (i TokenInfo) Expired() bool {
	return !i.ExpiresAt.IsZero() && time.Now().After(i.ExpiresAt)
}

// Inspect parses a token as a JWT without verifying its signature.
// Verification belongs to the backend; the CLI only surfaces the subject
// and warns the user when the token has already expired, which saves a
// doomed network round trip.
func Inspect(token string) TokenInfo {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return TokenInfo{Opaque: true}
	}

	var info TokenInfo
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info
}
