package agenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"drytodo/internal/model"
)

func taskAt(title string, start time.Time) model.Task {
	return model.Task{Title: title, StartDate: start, EndDate: start.Add(time.Hour)}
}

func TestTasksOn(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		taskAt("morning", time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)),
		taskAt("evening", time.Date(2024, 3, 15, 22, 30, 0, 0, time.UTC)),
		taskAt("tomorrow", time.Date(2024, 3, 16, 8, 0, 0, 0, time.UTC)),
	}

	got := TasksOn(tasks, day)
	assert.Len(t, got, 2)
	assert.Equal(t, "morning", got[0].Title)
	assert.Equal(t, "evening", got[1].Title)
}

func TestTasksOn_Empty(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, TasksOn(nil, day))
}

func TestDaysWithTasks(t *testing.T) {
	month := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		taskAt("a", time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC)),
		taskAt("b", time.Date(2024, 3, 3, 15, 0, 0, 0, time.UTC)),
		taskAt("c", time.Date(2024, 3, 28, 9, 0, 0, 0, time.UTC)),
		taskAt("other month", time.Date(2024, 4, 3, 9, 0, 0, 0, time.UTC)),
	}

	days := DaysWithTasks(tasks, month)
	assert.Equal(t, map[int]bool{3: true, 28: true}, days)
}
