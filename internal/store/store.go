package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"drytodo/internal/model"
	"drytodo/internal/repository"
)

// Store is the single source of truth for tasks and their history. It
// wraps the gorm repositories and publishes a full snapshot of each
// collection to its feed after every durable mutation.
type Store struct {
	db       *gorm.DB
	tasks    *repository.TaskRepository
	logs     *repository.LogRepository
	taskFeed *Feed[model.Task]
	logFeed  *Feed[model.TaskLog]
}

func New(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		tasks:    repository.NewTaskRepository(db),
		logs:     repository.NewLogRepository(db),
		taskFeed: NewFeed[model.Task](),
		logFeed:  NewFeed[model.TaskLog](),
	}
}

// Insert persists a new task and assigns its id.
func (s *Store) Insert(ctx context.Context, task *model.Task) (uint, error) {
	if err := s.tasks.Create(ctx, task); err != nil {
		return 0, err
	}
	s.publishTasks(ctx)
	return task.ID, nil
}

// Update replaces the stored task with the same id. Returns
// repository.ErrNotFound when the id is unknown.
func (s *Store) Update(ctx context.Context, task *model.Task) error {
	if err := s.tasks.Update(ctx, task); err != nil {
		return err
	}
	s.publishTasks(ctx)
	return nil
}

// Delete removes a task. Idempotent: deleting an unknown id succeeds.
func (s *Store) Delete(ctx context.Context, taskID uint) error {
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return err
	}
	s.publishTasks(ctx)
	return nil
}

// GetByID fetches one task.
func (s *Store) GetByID(ctx context.Context, taskID uint) (*model.Task, error) {
	return s.tasks.FindByID(ctx, taskID)
}

// ListTasks returns a snapshot of every task.
func (s *Store) ListTasks(ctx context.Context) ([]model.Task, error) {
	return s.tasks.List(ctx)
}

// InsertLog appends a history entry.
func (s *Store) InsertLog(ctx context.Context, entry *model.TaskLog) (uint, error) {
	if err := s.logs.Create(ctx, entry); err != nil {
		return 0, err
	}
	s.publishLogs(ctx)
	return entry.ID, nil
}

// ListLogs returns a snapshot of the full history, newest first.
func (s *Store) ListLogs(ctx context.Context) ([]model.TaskLog, error) {
	return s.logs.List(ctx)
}

// Rollover applies an overdue rollover atomically: the missed-history
// entry and the advanced task window either both commit or neither
// does. A task that vanished mid-sweep surfaces repository.ErrNotFound
// and writes nothing.
func (s *Store) Rollover(ctx context.Context, task *model.Task, entry *model.TaskLog) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewLogRepository(tx).Create(ctx, entry); err != nil {
			return err
		}
		return repository.NewTaskRepository(tx).Update(ctx, task)
	})
	if err != nil {
		return fmt.Errorf("rollover task %d: %w", task.ID, err)
	}
	s.publishTasks(ctx)
	s.publishLogs(ctx)
	return nil
}

// Complete applies a completion atomically: the completion log entry
// plus the task's new state (terminal or rolled to the next occurrence).
func (s *Store) Complete(ctx context.Context, task *model.Task, entry *model.TaskLog) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewLogRepository(tx).Create(ctx, entry); err != nil {
			return err
		}
		return repository.NewTaskRepository(tx).Update(ctx, task)
	})
	if err != nil {
		return fmt.Errorf("complete task %d: %w", task.ID, err)
	}
	s.publishTasks(ctx)
	s.publishLogs(ctx)
	return nil
}

// SubscribeTasks returns a feed of full task-list snapshots. The caller
// receives the current list immediately and a fresh list after every
// mutation. Release with UnsubscribeTasks.
func (s *Store) SubscribeTasks(ctx context.Context) (string, <-chan []model.Task) {
	if tasks, err := s.tasks.List(ctx); err == nil {
		s.taskFeed.Prime(tasks)
	}
	return s.taskFeed.Subscribe()
}

func (s *Store) UnsubscribeTasks(id string) {
	s.taskFeed.Unsubscribe(id)
}

// SubscribeLogs returns a feed of full history snapshots.
func (s *Store) SubscribeLogs(ctx context.Context) (string, <-chan []model.TaskLog) {
	if logs, err := s.logs.List(ctx); err == nil {
		s.logFeed.Prime(logs)
	}
	return s.logFeed.Subscribe()
}

func (s *Store) UnsubscribeLogs(id string) {
	s.logFeed.Unsubscribe(id)
}

func (s *Store) publishTasks(ctx context.Context) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return
	}
	s.taskFeed.Publish(tasks)
}

func (s *Store) publishLogs(ctx context.Context) {
	logs, err := s.logs.List(ctx)
	if err != nil {
		return
	}
	s.logFeed.Publish(logs)
}
