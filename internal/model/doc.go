// Package model defines the data structures exchanged with the Astromeric
// backend and stored locally: birth profiles, forecasts, numerology profiles,
// compatibility results, and the reading envelope used by the history and
// anonymous cache.
package model
