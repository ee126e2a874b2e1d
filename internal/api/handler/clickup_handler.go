package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/freelancebill/invoicing-system/internal/core/ports"
)

// ClickUpHandler proxies the read-only ClickUp pickers used by the task
// import flow. Picker calls carry the user's ClickUp token in the
// X-Clickup-Token header; the OAuth exchange obtains that token.
type ClickUpHandler struct {
	importer ports.TaskImporter
}

func NewClickUpHandler(importer ports.TaskImporter) *ClickUpHandler {
	return &ClickUpHandler{importer: importer}
}

type oauthTokenRequest struct {
	Code string `json:"code" validate:"required"`
}

type oauthTokenResponse struct {
	AccessToken string `json:"access_token"`
}

func clickupToken(c echo.Context) (string, error) {
	token := strings.TrimSpace(c.Request().Header.Get("X-Clickup-Token"))
	if token == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "missing X-Clickup-Token header")
	}
	return token, nil
}

// ExchangeToken handles POST /v1/clickup/oauth/token. The code exchange runs
// server-side so the ClickUp client secret never reaches the browser.
//
// @Summary      Exchange a ClickUp OAuth code for an access token
// @Tags         clickup
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      oauthTokenRequest  true  "Authorization code"
// @Success      200   {object}  oauthTokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/clickup/oauth/token [post]
func (h *ClickUpHandler) ExchangeToken(c echo.Context) error {
	var req oauthTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.importer.ExchangeCode(c.Request().Context(), req.Code)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "clickup token exchange failed")
	}
	return c.JSON(http.StatusOK, oauthTokenResponse{AccessToken: token})
}

// Workspaces handles GET /v1/clickup/workspaces.
//
// @Summary      List ClickUp workspaces
// @Tags         clickup
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.ImportWorkspace
// @Failure      400  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/clickup/workspaces [get]
func (h *ClickUpHandler) Workspaces(c echo.Context) error {
	token, err := clickupToken(c)
	if err != nil {
		return err
	}

	workspaces, err := h.importer.Workspaces(c.Request().Context(), token)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "clickup request failed")
	}
	return c.JSON(http.StatusOK, workspaces)
}

// Lists handles GET /v1/clickup/spaces/:id/lists.
//
// @Summary      List the task lists in a ClickUp space
// @Tags         clickup
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Space id"
// @Success      200  {array}   ports.ImportList
// @Failure      400  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/clickup/spaces/{id}/lists [get]
func (h *ClickUpHandler) Lists(c echo.Context) error {
	token, err := clickupToken(c)
	if err != nil {
		return err
	}

	lists, err := h.importer.Lists(c.Request().Context(), token, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "clickup request failed")
	}
	return c.JSON(http.StatusOK, lists)
}

// Tasks handles GET /v1/clickup/lists/:id/tasks.
//
// @Summary      List the tasks in a ClickUp list
// @Tags         clickup
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "List id"
// @Success      200  {array}   ports.ImportTask
// @Failure      400  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/clickup/lists/{id}/tasks [get]
func (h *ClickUpHandler) Tasks(c echo.Context) error {
	token, err := clickupToken(c)
	if err != nil {
		return err
	}

	tasks, err := h.importer.Tasks(c.Request().Context(), token, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "clickup request failed")
	}
	return c.JSON(http.StatusOK, tasks)
}
