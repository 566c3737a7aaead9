// Package state persists the small per-user application state the web app
// keeps in browser storage: the theme preference, default forecast
// scope, active profile, and the anonymous reading cache capped at 10
// entries. Everything lives as JSON files in the XDG state directory.
package state
