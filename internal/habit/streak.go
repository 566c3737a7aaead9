package habit

import "time"

// Streak returns the current run of consecutive completed calendar days.
//
// days must be sorted newest first, as returned by the database layer.
// A streak is alive if the most recent completion is today or yesterday:
// completing a habit at 23:50 and checking at 00:10 must not read as a
// broken streak. A live streak then extends backwards one calendar day at
// a time, stopping at the first gap.
func Streak(today time.Time, days []time.Time) int {
	if len(days) == 0 {
		return 0
	}

	today = truncateToDay(today)
	latest := truncateToDay(days[0])

	// Dead streak: the last completion is older than yesterday.
	if latest.Before(today.AddDate(0, 0, -1)) {
		return 0
	}

	streak := 1
	prev := latest
	for _, d := range days[1:] {
		d = truncateToDay(d)
		if d.Equal(prev) {
			continue // Duplicate day
		}
		if !d.Equal(prev.AddDate(0, 0, -1)) {
			break
		}
		streak++
		prev = d
	}

	return streak
}

// Longest returns the longest run of consecutive completed days anywhere
// in the history. days must be sorted newest first.
func Longest(days []time.Time) int {
	if len(days) == 0 {
		return 0
	}

	longest, run := 1, 1
	prev := truncateToDay(days[0])
	for _, d := range days[1:] {
		d = truncateToDay(d)
		switch {
		case d.Equal(prev):
			continue
		case d.Equal(prev.AddDate(0, 0, -1)):
			run++
		default:
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = d
	}

	return longest
}

// truncateToDay reduces a time to its calendar day, pinned to UTC.
// Completion days come back from the database as UTC midnights while
// "today" is a local wall-clock time; comparing the (year, month, day)
// triples in one location keeps the two comparable in any timezone.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
