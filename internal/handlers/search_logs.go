// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ruangtekno/backend/internal/auth"
	"github.com/ruangtekno/backend/internal/repository"
)

// ListSearchHistory returns the caller's search log, newest first.
func (h *Handlers) ListSearchHistory(c echo.Context) error {
	claims := auth.GetClaims(c.Request().Context())

	logs, err := h.repo.ListSearchLogsByUser(c.Request().Context(), claims.UserID)
	if err != nil {
		slog.Error("failed to list search history", "error", err, "user_id", claims.UserID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "search history fetched successfully", logs)
}

// DeleteSearchLog removes one entry from the caller's search log.
func (h *Handlers) DeleteSearchLog(c echo.Context) error {
	logID, err := pathID(c, "logId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid log id")
	}

	claims := auth.GetClaims(c.Request().Context())

	entry, err := h.repo.GetSearchLogByID(c.Request().Context(), logID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "search log not found")
		}
		slog.Error("failed to get search log", "error", err, "log_id", logID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	if entry.UserID != claims.UserID {
		return fail(c, http.StatusForbidden, "you are not the owner of this search log")
	}

	if err := h.repo.DeleteSearchLog(c.Request().Context(), logID); err != nil {
		slog.Error("failed to delete search log", "error", err, "log_id", logID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "search log deleted successfully", nil)
}
