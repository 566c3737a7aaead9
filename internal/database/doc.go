// Package database provides SQLite-based local storage for the Astromeric
// CLI: saved birth profiles, the reading history for logged-in users,
// habits with their completion days, and journal entries.
package database
