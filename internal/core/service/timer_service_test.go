package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/freelancebill/invoicing-system/internal/core/domain"
	"github.com/freelancebill/invoicing-system/internal/core/ports"
)

func newTimerFixture(t *testing.T) (*TimerServiceImpl, *stubTimerStore, *domain.Task) {
	t.Helper()
	logs := newStubTimeLogRepo()
	taskRepo := newStubTaskRepo(logs)
	tasks := NewTaskService(taskRepo, logs, discardLogger)
	store := newStubTimerStore()
	svc := NewTimerService(store, tasks, discardLogger)

	task, err := tasks.CreateTask(context.Background(), ports.CreateTaskInput{UserID: "u1", Name: "tracked", Rate: 50})
	if err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return svc, store, task
}

func TestTimerService_Start(t *testing.T) {
	svc, store, task := newTimerFixture(t)

	state, err := svc.Start(context.Background(), "u1", task.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if !state.Running || state.TaskID != task.ID {
		t.Errorf("unexpected state: %+v", state)
	}
	if _, ok := store.states["u1"]; !ok {
		t.Error("state not persisted")
	}
}

func TestTimerService_Start_UnknownTask(t *testing.T) {
	svc, _, _ := newTimerFixture(t)

	if _, err := svc.Start(context.Background(), "u1", "missing"); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("want ErrTaskNotFound, got %v", err)
	}
}

func TestTimerService_Start_AlreadyRunning(t *testing.T) {
	svc, _, task := newTimerFixture(t)

	if _, err := svc.Start(context.Background(), "u1", task.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.Start(context.Background(), "u1", task.ID); !errors.Is(err, domain.ErrTimerAlreadyRunning) {
		t.Errorf("want ErrTimerAlreadyRunning, got %v", err)
	}
}

func TestTimerService_Pause_FoldsElapsedTime(t *testing.T) {
	svc, store, task := newTimerFixture(t)

	// Simulate a timer that has been running for ten minutes.
	store.states["u1"] = &domain.TimerState{
		UserID:    "u1",
		TaskID:    task.ID,
		StartedAt: time.Now().UTC().Add(-10 * time.Minute),
		Running:   true,
	}

	state, err := svc.Pause(context.Background(), "u1")
	if err != nil {
		t.Fatalf("pause: %v", err)
	}
	if state.Running {
		t.Error("paused timer must not be running")
	}
	if state.AccumulatedSeconds < 600 || state.AccumulatedSeconds > 605 {
		t.Errorf("accumulated seconds: want ~600, got %d", state.AccumulatedSeconds)
	}
}

func TestTimerService_Pause_NotRunning(t *testing.T) {
	svc, store, task := newTimerFixture(t)

	if _, err := svc.Pause(context.Background(), "u1"); !errors.Is(err, domain.ErrTimerNotRunning) {
		t.Errorf("no state: want ErrTimerNotRunning, got %v", err)
	}

	store.states["u1"] = &domain.TimerState{UserID: "u1", TaskID: task.ID, AccumulatedSeconds: 300}
	if _, err := svc.Pause(context.Background(), "u1"); !errors.Is(err, domain.ErrTimerNotRunning) {
		t.Errorf("paused state: want ErrTimerNotRunning, got %v", err)
	}
}

func TestTimerService_Start_ResumesSameTask(t *testing.T) {
	svc, store, task := newTimerFixture(t)
	store.states["u1"] = &domain.TimerState{UserID: "u1", TaskID: task.ID, AccumulatedSeconds: 900}

	state, err := svc.Start(context.Background(), "u1", task.ID)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if state.AccumulatedSeconds != 900 {
		t.Errorf("resume must keep accumulated time, got %d", state.AccumulatedSeconds)
	}
}

func TestTimerService_Start_DifferentTaskResetsAccumulator(t *testing.T) {
	svc, store, task := newTimerFixture(t)
	store.states["u1"] = &domain.TimerState{UserID: "u1", TaskID: "other", AccumulatedSeconds: 900}

	state, err := svc.Start(context.Background(), "u1", task.ID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if state.AccumulatedSeconds != 0 {
		t.Errorf("switching task must reset accumulated time, got %d", state.AccumulatedSeconds)
	}
}

func TestTimerService_Stop_CreatesTimeLog(t *testing.T) {
	svc, store, task := newTimerFixture(t)
	store.states["u1"] = &domain.TimerState{
		UserID:    "u1",
		TaskID:    task.ID,
		StartedAt: time.Now().UTC().Add(-90 * time.Minute),
		Running:   true,
	}

	log, err := svc.Stop(context.Background(), "u1", "sprint work")
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if log.TaskID != task.ID {
		t.Errorf("log task: want %s, got %s", task.ID, log.TaskID)
	}
	if log.Hours != 1.5 {
		t.Errorf("hours: want 1.5, got %v", log.Hours)
	}
	if log.Description != "sprint work" {
		t.Errorf("description: %q", log.Description)
	}
	if _, ok := store.states["u1"]; ok {
		t.Error("state must be cleared after stop")
	}
}

func TestTimerService_Stop_ShortStretchBillsMinimum(t *testing.T) {
	svc, store, task := newTimerFixture(t)
	store.states["u1"] = &domain.TimerState{
		UserID:    "u1",
		TaskID:    task.ID,
		StartedAt: time.Now().UTC().Add(-2 * time.Second),
		Running:   true,
	}

	log, err := svc.Stop(context.Background(), "u1", "")
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if log.Hours != 0.01 {
		t.Errorf("hours floor: want 0.01, got %v", log.Hours)
	}
}

func TestTimerService_Stop_NothingTracked(t *testing.T) {
	svc, store, task := newTimerFixture(t)
	store.states["u1"] = &domain.TimerState{UserID: "u1", TaskID: task.ID}

	if _, err := svc.Stop(context.Background(), "u1", ""); !errors.Is(err, domain.ErrTimerNotRunning) {
		t.Errorf("want ErrTimerNotRunning, got %v", err)
	}
	if _, ok := store.states["u1"]; ok {
		t.Error("dangling state must be cleared")
	}
}

func TestTimerService_Current(t *testing.T) {
	svc, _, task := newTimerFixture(t)

	if _, err := svc.Current(context.Background(), "u1"); !errors.Is(err, domain.ErrTimerNotRunning) {
		t.Errorf("want ErrTimerNotRunning, got %v", err)
	}

	if _, err := svc.Start(context.Background(), "u1", task.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	state, err := svc.Current(context.Background(), "u1")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if state.TaskID != task.ID {
		t.Errorf("unexpected state: %+v", state)
	}
}
