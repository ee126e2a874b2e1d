package domain

import (
	"errors"
	"time"
)

var (
	ErrTimerNotRunning     = errors.New("no timer is running")
	ErrTimerAlreadyRunning = errors.New("a timer is already running")
)

// TimerState tracks elapsed work time for one user against one task. The
// state survives restarts because elapsed time is always reconstructed from
// StartedAt rather than accumulated ticks.
type TimerState struct {
	UserID             string    `json:"user_id"`
	TaskID             string    `json:"task_id"`
	StartedAt          time.Time `json:"started_at"`
	AccumulatedSeconds int64     `json:"accumulated_seconds"`
	Running            bool      `json:"running"`
}

// ElapsedSeconds returns total tracked seconds as of now.
func (t TimerState) ElapsedSeconds(now time.Time) int64 {
	if !t.Running {
		return t.AccumulatedSeconds
	}
	return t.AccumulatedSeconds + int64(now.Sub(t.StartedAt).Seconds())
}
