package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/freelancebill/invoicing-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrTimeLogNotFound),
		errors.Is(err, domain.ErrInvoiceNotFound),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrApprovalLinkNotFound),
		errors.Is(err, domain.ErrTimerNotRunning),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrAlreadyDecided),
		errors.Is(err, domain.ErrTimerAlreadyRunning),
		errors.Is(err, domain.ErrPaymentNotAllowed):
		return http.StatusConflict, err.Error()

	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"

	case errors.Is(err, domain.ErrMissingClientEmail),
		errors.Is(err, domain.ErrMissingSignature),
		errors.Is(err, domain.ErrMissingRejectReason),
		errors.Is(err, domain.ErrInvalidDecision),
		errors.Is(err, domain.ErrEmptyTaskSet),
		errors.Is(err, domain.ErrNegativeRate),
		errors.Is(err, domain.ErrNonPositiveTime),
		errors.Is(err, domain.ErrInvalidPaymentMethod):
		return http.StatusUnprocessableEntity, err.Error()

	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
