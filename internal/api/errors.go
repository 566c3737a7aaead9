package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for conditions callers branch on.
//
// Design decision: We define specific error values rather than wrapping all
// failures generically. This allows callers to handle different failure
// modes appropriately (e.g., prompt re-login on ErrUnauthorized, but print
// the backend message on other status errors).
var (
	// ErrUnauthorized is returned when the backend rejects the bearer
	// token. Callers should prompt the user to run `astromeric login`.
	ErrUnauthorized = errors.New("authentication required: run 'astromeric login'")

	// ErrRateLimited is returned when the backend answers 429.
	// The CLI has no retry policy; the user is told to try again later.
	ErrRateLimited = errors.New("rate limited by the Astromeric API: try again later")
)

// Error represents a non-2xx response from the Astromeric backend.
// It carries the HTTP status and the backend-supplied message when the
// response body contained one.
type Error struct {
	// StatusCode is the HTTP status of the failed request.
	StatusCode int

	// Message is the backend's error text, or empty if the body carried
	// none (the status text is used for display in that case).
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("astromeric api: %s (status %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("astromeric api: %s", http.StatusText(e.StatusCode))
}

// Unwrap maps well-known statuses onto sentinel errors so callers can use
// errors.Is without inspecting status codes themselves.
func (e *Error) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return nil
	}
}
