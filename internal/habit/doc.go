// Package habit computes streaks over habit completion days.
package habit
