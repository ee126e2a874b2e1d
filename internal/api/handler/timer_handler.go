package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/freelancebill/invoicing-system/internal/core/domain"
	"github.com/freelancebill/invoicing-system/internal/core/ports"
)

// TimerHandler handles HTTP requests for the elapsed-time tracker.
type TimerHandler struct {
	service ports.TimerService
}

func NewTimerHandler(service ports.TimerService) *TimerHandler {
	return &TimerHandler{service: service}
}

// Current handles GET /v1/timer.
//
// @Summary      Read the current timer state
// @Tags         timer
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  timerStatusResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/timer [get]
func (h *TimerHandler) Current(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	state, err := h.service.Current(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, timerStatus(state))
}

// Start handles POST /v1/timer/start.
//
// @Summary      Start or resume the timer against a task
// @Tags         timer
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      timerStartRequest  true  "Task to track"
// @Success      200   {object}  timerStatusResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/timer/start [post]
func (h *TimerHandler) Start(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req timerStartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	state, err := h.service.Start(c.Request().Context(), userID, req.TaskID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, timerStatus(state))
}

// Pause handles POST /v1/timer/pause.
//
// @Summary      Pause the running timer
// @Tags         timer
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  timerStatusResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/timer/pause [post]
func (h *TimerHandler) Pause(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	state, err := h.service.Pause(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, timerStatus(state))
}

// Stop handles POST /v1/timer/stop. The tracked stretch becomes a time log.
//
// @Summary      Stop the timer and record the hours
// @Tags         timer
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      timerStopRequest  true  "Optional description for the time log"
// @Success      201   {object}  domain.TimeLog
// @Failure      404   {object}  errorResponse
// @Router       /v1/timer/stop [post]
func (h *TimerHandler) Stop(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req timerStopRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	log, err := h.service.Stop(c.Request().Context(), userID, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, log)
}

func timerStatus(state *domain.TimerState) timerStatusResponse {
	resp := timerStatusResponse{
		TaskID:         state.TaskID,
		Running:        state.Running,
		ElapsedSeconds: state.ElapsedSeconds(time.Now().UTC()),
	}
	if !state.StartedAt.IsZero() {
		resp.StartedAt = state.StartedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
