package engine

import (
	"time"

	"drytodo/internal/model"
)

// Occurrence is one concrete instance of a task's scheduled window.
type Occurrence struct {
	Start time.Time
	End   time.Time
}

// step advances t by one unit of the pattern. Unknown patterns step by
// a day, same as DAILY. A monthly step clamps to the last day of the
// target month rather than overflowing into the one after, so a task
// anchored on the 31st lands on Feb 29, not Mar 2.
func step(t time.Time, pattern model.RecurrencePattern) time.Time {
	switch pattern {
	case model.PatternWeekly:
		return t.AddDate(0, 0, 7)
	case model.PatternMonthly:
		next := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 1, 0)
		day := t.Day()
		if max := daysInMonth(next.Month(), next.Year()); day > max {
			day = max
		}
		return time.Date(next.Year(), next.Month(), day,
			t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	default:
		return t.AddDate(0, 0, 1)
	}
}

func daysInMonth(month time.Month, year int) int {
	// Move to next month, roll back a day.
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lastOfMonth := firstOfMonth.AddDate(0, 1, 0).AddDate(0, 0, -1)
	return lastOfMonth.Day()
}

// NextStart computes the next scheduled start after now: the original
// start anchored to its clock time (seconds dropped), advanced by one
// pattern step, then stepped again while still at or before now. Each
// step strictly advances the candidate, so the loop terminates.
func NextStart(start time.Time, pattern model.RecurrencePattern, now time.Time) time.Time {
	candidate := time.Date(start.Year(), start.Month(), start.Day(),
		start.Hour(), start.Minute(), 0, 0, start.Location())
	candidate = step(candidate, pattern)
	for !candidate.After(now) {
		candidate = step(candidate, pattern)
	}
	return candidate
}

// Next returns the task's next occurrence. The window keeps its
// duration: the new end is the new start plus the original length.
// Non-recurring tasks roll by one day (Task.Pattern reports DAILY).
func Next(task *model.Task, now time.Time) Occurrence {
	start := NextStart(task.StartDate, task.Pattern(), now)
	return Occurrence{Start: start, End: start.Add(task.Duration())}
}
