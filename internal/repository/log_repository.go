package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"drytodo/internal/model"
)

// LogRepository appends and reads task history entries. Logs are
// append-only; there is deliberately no update or delete here.
type LogRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

func (r *LogRepository) Create(ctx context.Context, entry *model.TaskLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create log: %w", err)
	}
	return nil
}

// List returns the full history, newest first.
func (r *LogRepository) List(ctx context.Context) ([]model.TaskLog, error) {
	var logs []model.TaskLog
	if err := r.db.WithContext(ctx).Order("date DESC, id DESC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return logs, nil
}
