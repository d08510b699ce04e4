package model

import (
	"strings"
	"time"
)

// RecurrencePattern names how often a recurring task repeats.
type RecurrencePattern string

const (
	PatternDaily   RecurrencePattern = "DAILY"
	PatternWeekly  RecurrencePattern = "WEEKLY"
	PatternMonthly RecurrencePattern = "MONTHLY"
)

// ParsePattern maps a stored pattern string to a known pattern.
// Anything unrecognized (including empty) falls back to DAILY.
func ParsePattern(raw string) RecurrencePattern {
	switch RecurrencePattern(strings.ToUpper(strings.TrimSpace(raw))) {
	case PatternWeekly:
		return PatternWeekly
	case PatternMonthly:
		return PatternMonthly
	default:
		return PatternDaily
	}
}

// Priority is the task's urgency bucket.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// ParsePriority normalizes a priority string, defaulting to NORMAL.
func ParsePriority(raw string) Priority {
	switch Priority(strings.ToUpper(strings.TrimSpace(raw))) {
	case PriorityLow:
		return PriorityLow
	case PriorityHigh:
		return PriorityHigh
	case PriorityUrgent:
		return PriorityUrgent
	default:
		return PriorityNormal
	}
}

// DefaultCategory labels tasks created without an explicit category.
const DefaultCategory = "Personal"

// Task represents a single schedulable item.
//
// The scheduled window is [StartDate, EndDate]; reminders fire around
// StartDate and a task counts as overdue only once EndDate has passed.
type Task struct {
	ID                   uint `gorm:"primaryKey"`
	Title                string
	Description          string
	StartDate            time.Time `gorm:"index"`
	EndDate              time.Time `gorm:"index"`
	IsCompleted          bool      `gorm:"default:false"`
	CompletionPercentage int       `gorm:"default:0"`
	IsRecurring          bool      `gorm:"default:false"`
	RecurrencePattern    string    // DAILY, WEEKLY, MONTHLY; empty when not recurring
	LastCompletedDate    *time.Time
	Priority             string `gorm:"default:NORMAL"`
	Category             string `gorm:"index"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Duration returns the length of the task's window.
func (t *Task) Duration() time.Duration {
	return t.EndDate.Sub(t.StartDate)
}

// Pattern returns the effective recurrence pattern for schedule advances.
// Non-recurring tasks roll by one day, so they report DAILY.
func (t *Task) Pattern() RecurrencePattern {
	if !t.IsRecurring {
		return PatternDaily
	}
	return ParsePattern(t.RecurrencePattern)
}
