package ports

import (
	"context"
	"time"

	"github.com/freelancebill/invoicing-system/internal/core/domain"
)

// CreateTaskInput carries all data needed to create a new task.
type CreateTaskInput struct {
	UserID      string
	Name        string
	Rate        float64
	Description string
}

// UpdateTaskInput carries a full task update; zero values are written as-is.
type UpdateTaskInput struct {
	ID          string
	UserID      string
	Name        string
	Rate        float64
	Status      string
	Description string
}

// CreateTimeLogInput carries all data needed to record hours against a task.
type CreateTimeLogInput struct {
	UserID      string
	TaskID      string
	Hours       float64
	Date        time.Time
	Description string
}

// UpdateTimeLogInput carries a time log update.
type UpdateTimeLogInput struct {
	ID          string
	UserID      string
	Hours       float64
	Date        time.Time
	Description string
}

// TaskService defines use-case operations for tasks and time logs.
type TaskService interface {
	CreateTask(ctx context.Context, in CreateTaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, id, userID string) (*domain.Task, error)
	UpdateTask(ctx context.Context, in UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id, userID string) error
	ListTasks(ctx context.Context, userID string) ([]*domain.Task, error)

	CreateTimeLog(ctx context.Context, in CreateTimeLogInput) (*domain.TimeLog, error)
	UpdateTimeLog(ctx context.Context, in UpdateTimeLogInput) (*domain.TimeLog, error)
	DeleteTimeLog(ctx context.Context, id, userID string) error
	ListTimeLogs(ctx context.Context, userID string) ([]*domain.TimeLog, error)
}

// TimerService drives the elapsed-time tracker. Stop converts the tracked
// time into a time log against the timer's task.
type TimerService interface {
	Start(ctx context.Context, userID, taskID string) (*domain.TimerState, error)
	Pause(ctx context.Context, userID string) (*domain.TimerState, error)
	Stop(ctx context.Context, userID, description string) (*domain.TimeLog, error)
	Current(ctx context.Context, userID string) (*domain.TimerState, error)
}
