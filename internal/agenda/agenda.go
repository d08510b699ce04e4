// Package agenda buckets tasks by calendar day for the agenda view.
package agenda

import (
	"time"

	"drytodo/internal/model"
)

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// TasksOn returns the tasks whose window starts on the given day,
// preserving input order.
func TasksOn(tasks []model.Task, day time.Time) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if sameDay(day, t.StartDate) {
			out = append(out, t)
		}
	}
	return out
}

// DaysWithTasks returns the days of month's calendar month that have
// at least one task starting on them.
func DaysWithTasks(tasks []model.Task, month time.Time) map[int]bool {
	days := make(map[int]bool)
	for _, t := range tasks {
		start := t.StartDate.In(month.Location())
		if start.Year() == month.Year() && start.Month() == month.Month() {
			days[start.Day()] = true
		}
	}
	return days
}
