// Package api implements the HTTP client for the Astromeric backend.
// The backend owns all ephemeris, numerology, and AI explanation work;
// this package only exchanges JSON payloads with it, authenticated via a
// bearer token, and classifies failures into the small taxonomy the CLI
// surfaces (network failure, API status error, everything else).
package api
