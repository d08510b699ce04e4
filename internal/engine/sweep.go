package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"drytodo/internal/clock"
	"drytodo/internal/model"
	"drytodo/internal/repository"
	"drytodo/internal/store"
)

// Reminders is the engine's view of the reminder scheduler adapter.
// Scheduling is best effort: a failure never rolls back task state.
type Reminders interface {
	Schedule(ctx context.Context, taskID uint, title string, when time.Time) error
	Cancel(taskID uint)
}

// Config carries the engine's policy knobs.
type Config struct {
	// Grace is how long past a window's end a task must be before the
	// sweep classifies it overdue.
	Grace time.Duration
	// ForceOnManual makes manual sweeps ignore Grace.
	ForceOnManual bool
}

// Engine owns the recurrence and overdue policy: it classifies overdue
// tasks, advances their windows, records history, and drives reminder
// rescheduling.
type Engine struct {
	store     *store.Store
	reminders Reminders
	clock     clock.Clock
	cfg       Config

	// sweepMu keeps at most one sweep in flight.
	sweepMu sync.Mutex
}

func New(st *store.Store, reminders Reminders, clk clock.Clock, cfg Config) *Engine {
	return &Engine{store: st, reminders: reminders, clock: clk, cfg: cfg}
}

// SweepResult summarizes one sweep invocation.
type SweepResult struct {
	Scanned    int
	RolledOver int
}

// Sweep scans all tasks, classifies overdue ones and rolls them over
// to their next occurrence. For each overdue task it appends a missed
// history entry and rewrites the window in one transaction, then
// re-issues reminders. Running the sweep twice back to back changes
// nothing the second time: rolled-over windows no longer satisfy the
// overdue predicate.
//
// manual marks a user-triggered "optimize overdue now" sweep, which
// bypasses the grace threshold when the engine is configured to force.
func (e *Engine) Sweep(ctx context.Context, manual bool) (SweepResult, error) {
	e.sweepMu.Lock()
	defer e.sweepMu.Unlock()

	var res SweepResult

	now := e.clock.Now()
	grace := e.cfg.Grace
	if manual && e.cfg.ForceOnManual {
		grace = 0
	}

	tasks, err := e.store.ListTasks(ctx)
	if err != nil {
		return res, err
	}
	res.Scanned = len(tasks)

	for i := range tasks {
		task := tasks[i]
		if task.IsCompleted || !now.After(task.EndDate.Add(grace)) {
			continue
		}

		entry := &model.TaskLog{
			TaskID:               task.ID,
			TaskTitle:            task.Title,
			Date:                 task.EndDate,
			CompletionPercentage: task.CompletionPercentage,
			WasCompleted:         false,
		}

		next := Next(&task, now)
		task.StartDate = next.Start
		task.EndDate = next.End
		task.IsCompleted = false
		task.CompletionPercentage = 0

		if err := e.store.Rollover(ctx, &task, entry); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Deleted mid-sweep; nothing to roll.
				log.WithField("task_id", task.ID).Warn("skipping vanished task")
				continue
			}
			return res, err
		}
		res.RolledOver++

		e.reschedule(ctx, &task)

		log.WithFields(log.Fields{
			"task_id":    task.ID,
			"next_start": task.StartDate,
		}).Info("rolled over overdue task")
	}

	return res, nil
}

// RestoreReminders re-issues reminder triggers for every pending task.
// Called on process start, since scheduled triggers do not survive a
// restart.
func (e *Engine) RestoreReminders(ctx context.Context) error {
	tasks, err := e.store.ListTasks(ctx)
	if err != nil {
		return err
	}
	for i := range tasks {
		if tasks[i].IsCompleted {
			continue
		}
		e.reschedule(ctx, &tasks[i])
	}
	return nil
}

func (e *Engine) reschedule(ctx context.Context, task *model.Task) {
	e.reminders.Cancel(task.ID)
	if err := e.reminders.Schedule(ctx, task.ID, task.Title, task.StartDate); err != nil {
		log.WithError(err).WithField("task_id", task.ID).
			Warn("reminder scheduling failed, will retry on next sweep or edit")
	}
}
