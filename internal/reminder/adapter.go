package reminder

import (
	"context"
	"fmt"
	"time"

	"drytodo/internal/clock"
)

// DefaultPreAlarmLead is how far ahead of a task's start the warning
// trigger fires when no lead is configured.
const DefaultPreAlarmLead = 10 * time.Minute

// Trigger is one scheduled reminder request handed to the firing
// facility. It carries everything the notification sink needs to
// render the alert.
type Trigger struct {
	TaskID     uint
	Title      string
	Message    string
	FireAt     time.Time
	IsPreAlarm bool
}

// TriggerScheduler is the external scheduling facility: it fires a
// trigger after a delay and retracts pending triggers by tag. Firing
// and rendering are outside the adapter's contract.
type TriggerScheduler interface {
	Enqueue(tag string, delay time.Duration, trigger Trigger) error
	CancelByTag(tag string)
}

// Adapter maps a task occurrence to its reminder trigger pair: one
// on-time trigger at the start instant (fired immediately when already
// past) and one pre-alarm a fixed lead earlier, requested only while
// that instant is still in the future.
type Adapter struct {
	scheduler TriggerScheduler
	clock     clock.Clock
	lead      time.Duration
}

func NewAdapter(scheduler TriggerScheduler, clk clock.Clock, lead time.Duration) *Adapter {
	if lead <= 0 {
		lead = DefaultPreAlarmLead
	}
	return &Adapter{scheduler: scheduler, clock: clk, lead: lead}
}

func onTimeTag(taskID uint) string { return fmt.Sprintf("task_%d", taskID) }
func preTag(taskID uint) string    { return fmt.Sprintf("task_pre_%d", taskID) }

// Schedule requests the trigger pair for one task occurrence.
func (a *Adapter) Schedule(ctx context.Context, taskID uint, title string, when time.Time) error {
	now := a.clock.Now()

	preAt := when.Add(-a.lead)
	if preAt.After(now) {
		pre := Trigger{
			TaskID:     taskID,
			Title:      title,
			Message:    fmt.Sprintf("🚨 Heads up: %q in %d minutes!", title, int(a.lead.Minutes())),
			FireAt:     preAt,
			IsPreAlarm: true,
		}
		if err := a.scheduler.Enqueue(preTag(taskID), preAt.Sub(now), pre); err != nil {
			return fmt.Errorf("enqueue pre-alarm: %w", err)
		}
	}

	delay := when.Sub(now)
	if delay < 0 {
		delay = 0
	}
	onTime := Trigger{
		TaskID:  taskID,
		Title:   title,
		Message: fmt.Sprintf("⏰ TIME FOR TASK: %s", title),
		FireAt:  now.Add(delay),
	}
	if err := a.scheduler.Enqueue(onTimeTag(taskID), delay, onTime); err != nil {
		return fmt.Errorf("enqueue on-time: %w", err)
	}
	return nil
}

// Cancel retracts both potential pending triggers for the task.
// Cancelling triggers that were never scheduled is not an error.
func (a *Adapter) Cancel(taskID uint) {
	a.scheduler.CancelByTag(onTimeTag(taskID))
	a.scheduler.CancelByTag(preTag(taskID))
}
