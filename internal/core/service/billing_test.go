package service

import (
	"testing"
	"time"

	"github.com/freelancebill/invoicing-system/internal/core/domain"
)

func mkTask(id string, rate float64) *domain.Task {
	return &domain.Task{ID: id, UserID: "u1", Name: "Task " + id, Rate: rate, Status: domain.TaskActive}
}

func mkLog(id, taskID string, hours float64) *domain.TimeLog {
	return &domain.TimeLog{ID: id, TaskID: taskID, UserID: "u1", Hours: hours, Date: time.Now()}
}

func TestCalculateBilling_SumsUnbilledLogs(t *testing.T) {
	tasks := []*domain.Task{mkTask("a", 50)}
	logs := []*domain.TimeLog{mkLog("l1", "a", 2), mkLog("l2", "a", 3)}

	got := CalculateBilling([]string{"a"}, tasks, logs, nil)

	if got.TotalHours != 5 {
		t.Errorf("TotalHours: want 5, got %v", got.TotalHours)
	}
	if got.TotalAmount != 250 {
		t.Errorf("TotalAmount: want 250, got %v", got.TotalAmount)
	}
	if len(got.IncludedLogs) != 2 {
		t.Errorf("IncludedLogs: want 2, got %d", len(got.IncludedLogs))
	}
}

func TestCalculateBilling_UsesCurrentRate(t *testing.T) {
	tasks := []*domain.Task{mkTask("a", 80)} // rate changed after logging
	logs := []*domain.TimeLog{mkLog("l1", "a", 1.5)}

	got := CalculateBilling([]string{"a"}, tasks, logs, nil)

	if got.TotalAmount != 120 {
		t.Errorf("TotalAmount must use the task's current rate: want 120, got %v", got.TotalAmount)
	}
}

func TestCalculateBilling_ExcludesBilledTasks(t *testing.T) {
	tasks := []*domain.Task{mkTask("a", 50), mkTask("b", 60)}
	logs := []*domain.TimeLog{mkLog("l1", "a", 2), mkLog("l2", "b", 1)}
	billed := map[string]string{"a": "inv-1"}

	got := CalculateBilling([]string{"a", "b"}, tasks, logs, billed)

	if got.TotalHours != 1 {
		t.Errorf("TotalHours: want 1 (only task b), got %v", got.TotalHours)
	}
	if got.TotalAmount != 60 {
		t.Errorf("TotalAmount: want 60, got %v", got.TotalAmount)
	}
}

func TestCalculateBilling_ZeroLogTaskStillValidMember(t *testing.T) {
	tasks := []*domain.Task{mkTask("a", 50), mkTask("empty", 100)}
	logs := []*domain.TimeLog{mkLog("l1", "a", 4)}

	got := CalculateBilling([]string{"a", "empty"}, tasks, logs, nil)

	if got.TotalHours != 4 || got.TotalAmount != 200 {
		t.Errorf("zero-log task must contribute nothing: got hours=%v amount=%v", got.TotalHours, got.TotalAmount)
	}
}

func TestCalculateBilling_IgnoresLogsOutsideSelection(t *testing.T) {
	tasks := []*domain.Task{mkTask("a", 50), mkTask("b", 50)}
	logs := []*domain.TimeLog{mkLog("l1", "a", 2), mkLog("l2", "b", 9)}

	got := CalculateBilling([]string{"a"}, tasks, logs, nil)

	if got.TotalHours != 2 {
		t.Errorf("TotalHours: want 2, got %v", got.TotalHours)
	}
}

func TestCalculateBilling_Deterministic(t *testing.T) {
	tasks := []*domain.Task{mkTask("a", 25), mkTask("b", 75)}
	logs := []*domain.TimeLog{
		mkLog("l1", "a", 1), mkLog("l2", "b", 2), mkLog("l3", "a", 3),
	}

	first := CalculateBilling([]string{"a", "b"}, tasks, logs, nil)
	for i := 0; i < 10; i++ {
		again := CalculateBilling([]string{"b", "a"}, tasks, logs, nil)
		if again.TotalHours != first.TotalHours || again.TotalAmount != first.TotalAmount {
			t.Fatalf("calculator must be deterministic: run %d got hours=%v amount=%v, want hours=%v amount=%v",
				i, again.TotalHours, again.TotalAmount, first.TotalHours, first.TotalAmount)
		}
	}
}

func TestUnbilledTaskIDs(t *testing.T) {
	billed := map[string]string{"a": "inv-1"}
	got := UnbilledTaskIDs([]string{"a", "b", "c"}, billed)
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("want [b c], got %v", got)
	}
}
