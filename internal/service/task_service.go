package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"drytodo/internal/engine"
	"drytodo/internal/model"
	"drytodo/internal/store"
)

// TaskInput represents data required to create or update a task.
type TaskInput struct {
	Title             string
	Description       string
	StartDate         time.Time
	EndDate           time.Time
	IsRecurring       bool
	RecurrencePattern string
	Priority          string
	Category          string
}

// TaskService wraps task-related business logic: validation, CRUD
// through the store, and keeping reminders in step with edits.
// Completion and sweep transitions are delegated to the engine.
type TaskService struct {
	store           *store.Store
	engine          *engine.Engine
	reminders       engine.Reminders
	defaultCategory string
}

func NewTaskService(st *store.Store, eng *engine.Engine, reminders engine.Reminders, defaultCategory string) *TaskService {
	if defaultCategory == "" {
		defaultCategory = model.DefaultCategory
	}
	return &TaskService{store: st, engine: eng, reminders: reminders, defaultCategory: defaultCategory}
}

// normalize validates input and fills defaults. The recurrence pattern
// is stored if and only if the task is recurring.
func (s *TaskService) normalize(input TaskInput) (TaskInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return input, fmt.Errorf("title is required")
	}
	if input.StartDate.IsZero() {
		return input, fmt.Errorf("start date is required")
	}
	if input.EndDate.IsZero() {
		input.EndDate = input.StartDate
	}
	if input.EndDate.Before(input.StartDate) {
		return input, fmt.Errorf("end date %s before start date %s",
			input.EndDate.Format(time.RFC3339), input.StartDate.Format(time.RFC3339))
	}
	if input.IsRecurring {
		input.RecurrencePattern = string(model.ParsePattern(input.RecurrencePattern))
	} else {
		input.RecurrencePattern = ""
	}
	input.Priority = string(model.ParsePriority(input.Priority))
	if strings.TrimSpace(input.Category) == "" {
		input.Category = s.defaultCategory
	}
	return input, nil
}

// Create validates and persists a new task, then issues its reminders.
func (s *TaskService) Create(ctx context.Context, input TaskInput) (*model.Task, error) {
	input, err := s.normalize(input)
	if err != nil {
		return nil, err
	}

	task := model.Task{
		Title:             input.Title,
		Description:       input.Description,
		StartDate:         input.StartDate,
		EndDate:           input.EndDate,
		IsRecurring:       input.IsRecurring,
		RecurrencePattern: input.RecurrencePattern,
		Priority:          input.Priority,
		Category:          input.Category,
	}

	if _, err := s.store.Insert(ctx, &task); err != nil {
		return nil, err
	}

	s.schedule(ctx, &task)
	return &task, nil
}

// Update replaces an existing task's fields and re-issues reminders
// unless the task is completed.
func (s *TaskService) Update(ctx context.Context, taskID uint, input TaskInput) (*model.Task, error) {
	input, err := s.normalize(input)
	if err != nil {
		return nil, err
	}

	task, err := s.store.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task.Title = input.Title
	task.Description = input.Description
	task.StartDate = input.StartDate
	task.EndDate = input.EndDate
	task.IsRecurring = input.IsRecurring
	task.RecurrencePattern = input.RecurrencePattern
	task.Priority = input.Priority
	task.Category = input.Category

	if err := s.store.Update(ctx, task); err != nil {
		return nil, err
	}

	s.reminders.Cancel(task.ID)
	if !task.IsCompleted {
		s.schedule(ctx, task)
	}
	return task, nil
}

// Delete removes a task and retracts its pending reminders. Deleting
// an unknown id succeeds.
func (s *TaskService) Delete(ctx context.Context, taskID uint) error {
	if err := s.store.Delete(ctx, taskID); err != nil {
		return err
	}
	s.reminders.Cancel(taskID)
	return nil
}

// Get fetches one task.
func (s *TaskService) Get(ctx context.Context, taskID uint) (*model.Task, error) {
	return s.store.GetByID(ctx, taskID)
}

// List returns a snapshot of all tasks.
func (s *TaskService) List(ctx context.Context) ([]model.Task, error) {
	return s.store.ListTasks(ctx)
}

// SetCompletion records progress on a task; 100 completes it.
func (s *TaskService) SetCompletion(ctx context.Context, taskID uint, percentage int) (*model.Task, error) {
	return s.engine.SetCompletion(ctx, taskID, percentage)
}

// ToggleCompletion flips a task between done and not started.
func (s *TaskService) ToggleCompletion(ctx context.Context, taskID uint) (*model.Task, error) {
	return s.engine.ToggleCompletion(ctx, taskID)
}

// OptimizeOverdue runs a user-triggered overdue sweep.
func (s *TaskService) OptimizeOverdue(ctx context.Context) (engine.SweepResult, error) {
	return s.engine.Sweep(ctx, true)
}

func (s *TaskService) schedule(ctx context.Context, task *model.Task) {
	if err := s.reminders.Schedule(ctx, task.ID, task.Title, task.StartDate); err != nil {
		log.WithError(err).WithField("task_id", task.ID).Warn("reminder scheduling failed")
	}
}
