// Package suggest produces canned task suggestions for the dashboard.
package suggest

import (
	"time"

	"drytodo/internal/engine"
	"drytodo/internal/model"
	"drytodo/internal/service"
)

// Suggestion is a habit the user may accept as a real task.
type Suggestion struct {
	Title             string
	Description       string
	StartDate         time.Time
	EndDate           time.Time
	IsRecurring       bool
	RecurrencePattern string
}

// WeeklyReview suggests the recurring weekly-review habit at 10:00,
// anchored today. A slot that already passed rolls a week forward so
// acceptance never creates a task dated in the past.
func WeeklyReview(now time.Time) Suggestion {
	start := time.Date(now.Year(), now.Month(), now.Day(), 10, 0, 0, 0, now.Location())
	if !start.After(now) {
		start = engine.NextStart(start, model.PatternWeekly, now)
	}
	return Suggestion{
		Title:             "Weekly Review",
		Description:       "Suggested habit",
		StartDate:         start,
		EndDate:           start.Add(time.Hour),
		IsRecurring:       true,
		RecurrencePattern: string(model.PatternWeekly),
	}
}

// Input converts the suggestion into task-creation input; acceptance
// is an ordinary create.
func (s Suggestion) Input() service.TaskInput {
	return service.TaskInput{
		Title:             s.Title,
		Description:       s.Description,
		StartDate:         s.StartDate,
		EndDate:           s.EndDate,
		IsRecurring:       s.IsRecurring,
		RecurrencePattern: s.RecurrencePattern,
	}
}
