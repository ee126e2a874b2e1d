package ports

import (
	"context"

	"github.com/freelancebill/invoicing-system/internal/core/domain"
)

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, id, userID string) (*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	// DeleteCascade removes the task and every time log referencing it in a
	// single transaction: both succeed or neither does.
	DeleteCascade(ctx context.Context, id, userID string) error
	List(ctx context.Context, userID string) ([]*domain.Task, error)
}

// TimeLogRepository defines persistence operations for time logs.
type TimeLogRepository interface {
	Create(ctx context.Context, l *domain.TimeLog) error
	FindByID(ctx context.Context, id, userID string) (*domain.TimeLog, error)
	Update(ctx context.Context, l *domain.TimeLog) error
	Delete(ctx context.Context, id, userID string) error
	List(ctx context.Context, userID string) ([]*domain.TimeLog, error)
	ListByTasks(ctx context.Context, userID string, taskIDs []string) ([]*domain.TimeLog, error)
}
