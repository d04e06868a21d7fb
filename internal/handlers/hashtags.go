// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ruangtekno/backend/internal/repository"
)

// HashtagRequest is the request body for creating a hashtag.
type HashtagRequest struct {
	Name string `json:"name"`
}

// CreateHashtag creates a hashtag.
func (h *Handlers) CreateHashtag(c echo.Context) error {
	var req HashtagRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return fail(c, http.StatusBadRequest, "name is required")
	}

	hashtag, err := h.repo.CreateHashtag(c.Request().Context(), req.Name)
	if err != nil {
		slog.Error("failed to create hashtag", "error", err, "name", req.Name)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusCreated, "hashtag created successfully", hashtag)
}

// ListHashtags returns all hashtags.
func (h *Handlers) ListHashtags(c echo.Context) error {
	hashtags, err := h.repo.ListHashtags(c.Request().Context())
	if err != nil {
		slog.Error("failed to list hashtags", "error", err)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	return success(c, http.StatusOK, "hashtags fetched successfully", hashtags)
}

// GetHashtag returns one hashtag.
func (h *Handlers) GetHashtag(c echo.Context) error {
	hashtagID, err := pathID(c, "hashtagId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid hashtag id")
	}

	hashtag, err := h.repo.GetHashtagByID(c.Request().Context(), hashtagID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "hashtag not found")
		}
		slog.Error("failed to get hashtag", "error", err, "hashtag_id", hashtagID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "hashtag retrieved successfully", hashtag)
}

// ListPostHashtags returns the hashtags linked to a post.
func (h *Handlers) ListPostHashtags(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid post id")
	}

	hashtags, err := h.repo.ListHashtagsByPost(c.Request().Context(), postID)
	if err != nil {
		slog.Error("failed to list post hashtags", "error", err, "post_id", postID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "hashtags fetched successfully", hashtags)
}
