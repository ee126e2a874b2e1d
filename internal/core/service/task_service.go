package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/freelancebill/invoicing-system/internal/core/domain"
	"github.com/freelancebill/invoicing-system/internal/core/ports"
)

// TaskServiceImpl implements task and time-log use cases on top of the
// entity store. Persistence is authoritative: every mutation returns the
// stored entity, never an optimistic local copy.
type TaskServiceImpl struct {
	tasks    ports.TaskRepository
	timeLogs ports.TimeLogRepository
	logger   zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, timeLogs ports.TimeLogRepository, logger zerolog.Logger) *TaskServiceImpl {
	return &TaskServiceImpl{tasks: tasks, timeLogs: timeLogs, logger: logger}
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, in ports.CreateTaskInput) (*domain.Task, error) {
	if in.Rate < 0 {
		return nil, domain.ErrNegativeRate
	}

	task := &domain.Task{
		ID:          uuid.NewString(),
		UserID:      in.UserID,
		Name:        in.Name,
		Rate:        in.Rate,
		Status:      domain.TaskActive,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("name", in.Name).Msg("failed to create task")
		return nil, err
	}
	return task, nil
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, id, userID string) (*domain.Task, error) {
	return s.tasks.FindByID(ctx, id, userID)
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, in ports.UpdateTaskInput) (*domain.Task, error) {
	if in.Rate < 0 {
		return nil, domain.ErrNegativeRate
	}

	task, err := s.tasks.FindByID(ctx, in.ID, in.UserID)
	if err != nil {
		return nil, err
	}

	task.Name = in.Name
	task.Rate = in.Rate
	task.Description = in.Description
	if in.Status == string(domain.TaskActive) || in.Status == string(domain.TaskCompleted) {
		task.Status = domain.TaskStatus(in.Status)
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes the task and cascades to exactly its own time logs.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, id, userID string) error {
	if err := s.tasks.DeleteCascade(ctx, id, userID); err != nil {
		return err
	}
	s.logger.Info().Str("task_id", id).Msg("task deleted with its time logs")
	return nil
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context, userID string) ([]*domain.Task, error) {
	return s.tasks.List(ctx, userID)
}

func (s *TaskServiceImpl) CreateTimeLog(ctx context.Context, in ports.CreateTimeLogInput) (*domain.TimeLog, error) {
	if in.Hours <= 0 {
		return nil, domain.ErrNonPositiveTime
	}

	// The task must exist and belong to the caller.
	if _, err := s.tasks.FindByID(ctx, in.TaskID, in.UserID); err != nil {
		return nil, err
	}

	log := &domain.TimeLog{
		ID:          uuid.NewString(),
		TaskID:      in.TaskID,
		UserID:      in.UserID,
		Hours:       in.Hours,
		Date:        in.Date,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.timeLogs.Create(ctx, log); err != nil {
		s.logger.Error().Err(err).Str("task_id", in.TaskID).Msg("failed to create time log")
		return nil, err
	}
	return log, nil
}

func (s *TaskServiceImpl) UpdateTimeLog(ctx context.Context, in ports.UpdateTimeLogInput) (*domain.TimeLog, error) {
	if in.Hours <= 0 {
		return nil, domain.ErrNonPositiveTime
	}

	log, err := s.timeLogs.FindByID(ctx, in.ID, in.UserID)
	if err != nil {
		return nil, err
	}

	log.Hours = in.Hours
	log.Date = in.Date
	log.Description = in.Description

	if err := s.timeLogs.Update(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *TaskServiceImpl) DeleteTimeLog(ctx context.Context, id, userID string) error {
	return s.timeLogs.Delete(ctx, id, userID)
}

func (s *TaskServiceImpl) ListTimeLogs(ctx context.Context, userID string) ([]*domain.TimeLog, error) {
	return s.timeLogs.List(ctx, userID)
}
