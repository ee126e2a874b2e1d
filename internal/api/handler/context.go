package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUserID extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: a token without a
// user_id is structurally valid but operationally unusable, so reject with
// 401 rather than letting repositories run unscoped queries.
func ctxUserID(c echo.Context) (string, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}

	return userID, nil
}
