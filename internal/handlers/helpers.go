// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ruangtekno/backend/internal/auth"
)

// success writes the response envelope. When the request's access token was
// silently rotated, the new token rides along so clients can update their
// stored credential.
func success(c echo.Context, code int, message string, data any) error {
	body := map[string]any{
		"status":  "success",
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	if t := auth.NewAccessToken(c.Request().Context()); t != "" {
		body["newAccessToken"] = t
	}
	return c.JSON(code, body)
}

// fail writes the error envelope.
func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, map[string]string{
		"status":  "error",
		"message": message,
	})
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
