// Package stats computes performance summaries over the task history.
package stats

import (
	"time"

	"drytodo/internal/model"
)

// Interval selects how far back the history view reaches.
type Interval int

const (
	IntervalAll Interval = iota
	IntervalToday
	IntervalLast7Days
	IntervalThisMonth
)

func (i Interval) String() string {
	switch i {
	case IntervalToday:
		return "Today"
	case IntervalLast7Days:
		return "Last 7 days"
	case IntervalThisMonth:
		return "This month"
	default:
		return "All time"
	}
}

// Cutoff returns the interval's inclusive lower bound relative to now.
// The second result is false when the interval is unbounded.
func (i Interval) Cutoff(now time.Time) (time.Time, bool) {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch i {
	case IntervalToday:
		return startOfToday, true
	case IntervalLast7Days:
		return startOfToday.AddDate(0, 0, -7), true
	case IntervalThisMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	default:
		return time.Time{}, false
	}
}

// Filter keeps the log entries dated inside the interval.
func Filter(logs []model.TaskLog, interval Interval, now time.Time) []model.TaskLog {
	cutoff, bounded := interval.Cutoff(now)
	if !bounded {
		return logs
	}
	var out []model.TaskLog
	for _, entry := range logs {
		if !entry.Date.Before(cutoff) {
			out = append(out, entry)
		}
	}
	return out
}

// Summary aggregates one history interval.
type Summary struct {
	TotalLogged       int
	Completed         int
	SuccessRate       int // percent of entries that were completed
	AverageCompletion int // mean completion percentage
}

// Summarize computes the summary over the given entries.
func Summarize(logs []model.TaskLog) Summary {
	s := Summary{TotalLogged: len(logs)}
	if s.TotalLogged == 0 {
		return s
	}
	sum := 0
	for _, entry := range logs {
		if entry.WasCompleted {
			s.Completed++
		}
		sum += entry.CompletionPercentage
	}
	s.AverageCompletion = sum / s.TotalLogged
	s.SuccessRate = int(float64(s.Completed) / float64(s.TotalLogged) * 100)
	return s
}
