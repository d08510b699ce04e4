package engine

import (
	"context"
	"fmt"

	"drytodo/internal/model"
)

// SetCompletion records the task's completion percentage and applies
// the completion transition when it reaches 100: non-recurring tasks
// become terminal, recurring ones roll in place to their next
// occurrence with the percentage reset. Dropping a completed task
// below 100 re-opens it and re-issues its reminders.
func (e *Engine) SetCompletion(ctx context.Context, taskID uint, percentage int) (*model.Task, error) {
	if percentage < 0 || percentage > 100 {
		return nil, fmt.Errorf("completion percentage %d out of range", percentage)
	}

	task, err := e.store.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()

	if percentage < 100 {
		wasCompleted := task.IsCompleted
		task.IsCompleted = false
		task.CompletionPercentage = percentage
		if err := e.store.Update(ctx, task); err != nil {
			return nil, err
		}
		if wasCompleted {
			e.reschedule(ctx, task)
		}
		return task, nil
	}

	entry := &model.TaskLog{
		TaskID:               task.ID,
		TaskTitle:            task.Title,
		Date:                 now,
		CompletionPercentage: 100,
		WasCompleted:         true,
	}

	if task.IsRecurring {
		next := Next(task, now)
		task.StartDate = next.Start
		task.EndDate = next.End
		task.IsCompleted = false
		task.CompletionPercentage = 0
		task.LastCompletedDate = &now
		if err := e.store.Complete(ctx, task, entry); err != nil {
			return nil, err
		}
		e.reschedule(ctx, task)
		return task, nil
	}

	task.IsCompleted = true
	task.CompletionPercentage = 100
	if err := e.store.Complete(ctx, task, entry); err != nil {
		return nil, err
	}
	e.reminders.Cancel(task.ID)
	return task, nil
}

// ToggleCompletion flips a task between done and not started: completed
// tasks drop to 0%, everything else jumps to 100%.
func (e *Engine) ToggleCompletion(ctx context.Context, taskID uint) (*model.Task, error) {
	task, err := e.store.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.IsCompleted {
		return e.SetCompletion(ctx, taskID, 0)
	}
	return e.SetCompletion(ctx, taskID, 100)
}
