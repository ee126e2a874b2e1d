package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/freelancebill/invoicing-system/internal/core/domain"
	"github.com/freelancebill/invoicing-system/internal/core/ports"
)

// TimerServiceImpl drives the elapsed-time tracker. Elapsed time is always
// recomputed from the persisted start timestamp, so a process restart loses
// nothing.
type TimerServiceImpl struct {
	store  ports.TimerStore
	tasks  ports.TaskService
	logger zerolog.Logger
}

func NewTimerService(store ports.TimerStore, tasks ports.TaskService, logger zerolog.Logger) *TimerServiceImpl {
	return &TimerServiceImpl{store: store, tasks: tasks, logger: logger}
}

// Start begins tracking against a task, or resumes a paused timer on the
// same task.
func (s *TimerServiceImpl) Start(ctx context.Context, userID, taskID string) (*domain.TimerState, error) {
	if _, err := s.tasks.GetTask(ctx, taskID, userID); err != nil {
		return nil, err
	}

	existing, err := s.store.Load(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrTimerNotRunning) {
		return nil, err
	}

	now := time.Now().UTC()
	state := &domain.TimerState{UserID: userID, TaskID: taskID, StartedAt: now, Running: true}
	if existing != nil {
		if existing.Running {
			return nil, domain.ErrTimerAlreadyRunning
		}
		if existing.TaskID == taskID {
			state.AccumulatedSeconds = existing.AccumulatedSeconds
		}
	}

	if err := s.store.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Pause freezes the timer, folding the running stretch into the accumulator.
func (s *TimerServiceImpl) Pause(ctx context.Context, userID string) (*domain.TimerState, error) {
	state, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !state.Running {
		return nil, domain.ErrTimerNotRunning
	}

	now := time.Now().UTC()
	state.AccumulatedSeconds = state.ElapsedSeconds(now)
	state.Running = false
	state.StartedAt = time.Time{}

	if err := s.store.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Stop ends the timer and converts the tracked time into a time log against
// the timer's task, rounded to two decimal hours.
func (s *TimerServiceImpl) Stop(ctx context.Context, userID, description string) (*domain.TimeLog, error) {
	state, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	seconds := state.ElapsedSeconds(now)
	if seconds <= 0 {
		// Clear the dangling state either way.
		_ = s.store.Clear(ctx, userID)
		return nil, domain.ErrTimerNotRunning
	}

	hours := math.Round(float64(seconds)/3600*100) / 100
	if hours < 0.01 {
		hours = 0.01
	}

	log, err := s.tasks.CreateTimeLog(ctx, ports.CreateTimeLogInput{
		UserID:      userID,
		TaskID:      state.TaskID,
		Hours:       hours,
		Date:        now,
		Description: description,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.Clear(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to clear timer state")
	}

	s.logger.Info().Str("task_id", state.TaskID).Float64("hours", hours).Msg("timer stopped")
	return log, nil
}

// Current returns the live timer state, if any.
func (s *TimerServiceImpl) Current(ctx context.Context, userID string) (*domain.TimerState, error) {
	return s.store.Load(ctx, userID)
}
