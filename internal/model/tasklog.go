package model

import "time"

// TaskLog is one immutable history entry: a task either completed or
// missed its window at the recorded instant. Logs keep the task title
// denormalized so history survives task deletion, and are never updated
// or deleted by normal operation.
type TaskLog struct {
	ID                   uint `gorm:"primaryKey"`
	TaskID               uint `gorm:"index"`
	TaskTitle            string
	Date                 time.Time `gorm:"index"`
	CompletionPercentage int
	WasCompleted         bool
	CreatedAt            time.Time
}
