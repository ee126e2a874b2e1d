package domain

import (
	"errors"
	"time"
)

// TaskStatus marks a task as active or completed. Completed tasks remain
// billable; the flag only affects dashboards.
type TaskStatus string

const (
	TaskActive    TaskStatus = "active"
	TaskCompleted TaskStatus = "completed"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTimeLogNotFound = errors.New("time log not found")
	ErrNegativeRate    = errors.New("hourly rate must not be negative")
	ErrNonPositiveTime = errors.New("hours must be positive")
)

// Task is a billable unit of work with an hourly rate.
type Task struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	UserID      string     `json:"user_id" bson:"user_id"`
	Name        string     `json:"name" bson:"name"`
	Rate        float64    `json:"rate" bson:"rate"`
	Status      TaskStatus `json:"status" bson:"status"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
}

// TimeLog is a dated quantity of hours worked against a task. A log is
// "billed" once its task id appears in any invoice's task set.
type TimeLog struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	TaskID      string    `json:"task_id" bson:"task_id"`
	UserID      string    `json:"user_id" bson:"user_id"`
	Hours       float64   `json:"hours" bson:"hours"`
	Date        time.Time `json:"date" bson:"date"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
