package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Task request types ---

type createTaskRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Rate        float64 `json:"rate"        validate:"gte=0"`
	Description string  `json:"description"`
}

type updateTaskRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Rate        float64 `json:"rate"        validate:"gte=0"`
	Status      string  `json:"status"      validate:"omitempty,oneof=active completed"`
	Description string  `json:"description"`
}

// --- Time log request types ---

type createTimeLogRequest struct {
	TaskID      string    `json:"task_id"     validate:"required"`
	Hours       float64   `json:"hours"       validate:"required,gt=0"`
	Date        time.Time `json:"date"        validate:"required"`
	Description string    `json:"description"`
}

type updateTimeLogRequest struct {
	Hours       float64   `json:"hours"       validate:"required,gt=0"`
	Date        time.Time `json:"date"        validate:"required"`
	Description string    `json:"description"`
}

// --- Timer request / response types ---

type timerStartRequest struct {
	TaskID string `json:"task_id" validate:"required"`
}

type timerStopRequest struct {
	Description string `json:"description"`
}

// timerStatusResponse reports the tracker state with server-computed elapsed
// seconds so clients never have to reconstruct them.
type timerStatusResponse struct {
	TaskID         string `json:"task_id"`
	Running        bool   `json:"running"`
	ElapsedSeconds int64  `json:"elapsed_seconds"`
	StartedAt      string `json:"started_at,omitempty"`
}
