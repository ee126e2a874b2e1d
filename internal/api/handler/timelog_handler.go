package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freelancebill/invoicing-system/internal/core/ports"
)

// TimeLogHandler handles HTTP requests for time log operations.
type TimeLogHandler struct {
	service ports.TaskService
}

func NewTimeLogHandler(service ports.TaskService) *TimeLogHandler {
	return &TimeLogHandler{service: service}
}

// List handles GET /v1/time-logs.
//
// @Summary      List the caller's time logs
// @Tags         time-logs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.TimeLog
// @Failure      401  {object}  errorResponse
// @Router       /v1/time-logs [get]
func (h *TimeLogHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	logs, err := h.service.ListTimeLogs(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}

// Create handles POST /v1/time-logs.
//
// @Summary      Record hours against a task
// @Tags         time-logs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTimeLogRequest  true  "Time log details"
// @Success      201   {object}  domain.TimeLog
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/time-logs [post]
func (h *TimeLogHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createTimeLogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	log, err := h.service.CreateTimeLog(c.Request().Context(), ports.CreateTimeLogInput{
		UserID:      userID,
		TaskID:      req.TaskID,
		Hours:       req.Hours,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, log)
}

// Update handles PUT /v1/time-logs/:id.
//
// @Summary      Update a time log
// @Tags         time-logs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Time log id"
// @Param        body  body      updateTimeLogRequest  true  "Time log details"
// @Success      200   {object}  domain.TimeLog
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/time-logs/{id} [put]
func (h *TimeLogHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateTimeLogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	log, err := h.service.UpdateTimeLog(c.Request().Context(), ports.UpdateTimeLogInput{
		ID:          c.Param("id"),
		UserID:      userID,
		Hours:       req.Hours,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, log)
}

// Delete handles DELETE /v1/time-logs/:id.
//
// @Summary      Delete a time log
// @Tags         time-logs
// @Security     BearerAuth
// @Param        id  path  string  true  "Time log id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/time-logs/{id} [delete]
func (h *TimeLogHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteTimeLog(c.Request().Context(), c.Param("id"), userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
