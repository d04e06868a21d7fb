// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/ruangtekno/backend/internal/auth"
	"github.com/ruangtekno/backend/internal/repository"
)

// ListUsers returns all users.
func (h *Handlers) ListUsers(c echo.Context) error {
	users, err := h.repo.ListUsers(c.Request().Context())
	if err != nil {
		slog.Error("failed to list users", "error", err)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	return success(c, http.StatusOK, "all users fetched successfully", users)
}

// GetUser returns one user by id.
func (h *Handlers) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}

	user, err := h.repo.GetUserByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "user not found")
		}
		slog.Error("failed to get user", "error", err, "user_id", id)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "user retrieved successfully", user)
}

// GetMe returns the authenticated user's record.
func (h *Handlers) GetMe(c echo.Context) error {
	claims := auth.GetClaims(c.Request().Context())

	user, err := h.repo.GetUserByID(c.Request().Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "user not found")
		}
		slog.Error("failed to get user", "error", err, "user_id", claims.UserID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "user retrieved successfully", user)
}

// UpdateUserRequest is the request body for a profile update.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUser updates the caller's own profile. The password is only changed
// when supplied.
func (h *Handlers) UpdateUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}

	claims := auth.GetClaims(c.Request().Context())
	if claims.UserID != id {
		return fail(c, http.StatusForbidden, "you are not allowed to update this user")
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Email == "" {
		return fail(c, http.StatusBadRequest, "name and email are required")
	}

	passwordHash := ""
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			slog.Error("failed to hash password", "error", err)
			return fail(c, http.StatusInternalServerError, "internal server error")
		}
		passwordHash = string(hashed)
	}

	if err := h.repo.UpdateUser(c.Request().Context(), id, req.Name, req.Email, passwordHash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "user not found")
		}
		slog.Error("failed to update user", "error", err, "user_id", id)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "user updated successfully", nil)
}

// DeleteUser deletes the caller's own account; owned content cascades.
func (h *Handlers) DeleteUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}

	claims := auth.GetClaims(c.Request().Context())
	if claims.UserID != id {
		return fail(c, http.StatusForbidden, "you are not allowed to delete this user")
	}

	if err := h.repo.DeleteUser(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "user not found")
		}
		slog.Error("failed to delete user", "error", err, "user_id", id)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "user deleted successfully", nil)
}
