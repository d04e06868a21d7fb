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

// DiscussionRequest is the request body for creating or updating a
// discussion. AnswerTo is set when posting an answer to a question.
type DiscussionRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	AnswerTo *int64  `json:"answerTo"`
	Hashtags []int64 `json:"hashtags"`
}

// CreateDiscussion posts a new question, or an answer when AnswerTo is set.
func (h *Handlers) CreateDiscussion(c echo.Context) error {
	claims := auth.GetClaims(c.Request().Context())

	var req DiscussionRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" || req.Content == "" {
		return fail(c, http.StatusBadRequest, "all fields are required")
	}

	ctx := c.Request().Context()
	if req.AnswerTo != nil {
		if _, err := h.repo.GetDiscussionByID(ctx, *req.AnswerTo); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fail(c, http.StatusNotFound, "question not found")
			}
			slog.Error("failed to get question", "error", err, "discussion_id", *req.AnswerTo)
			return fail(c, http.StatusInternalServerError, "internal server error")
		}
	}

	disc, err := h.repo.CreateDiscussion(ctx, claims.UserID, req.AnswerTo, req.Title, req.Content)
	if err != nil {
		slog.Error("failed to create discussion", "error", err, "user_id", claims.UserID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	for _, hashtagID := range req.Hashtags {
		if err := h.repo.AddDiscussionHashtag(ctx, disc.DiscussionID, hashtagID); err != nil {
			slog.Error("failed to link hashtag", "error", err, "discussion_id", disc.DiscussionID, "hashtag_id", hashtagID)
			return fail(c, http.StatusInternalServerError, "internal server error")
		}
	}

	return success(c, http.StatusCreated, "discussion created successfully", map[string]int64{"discussionId": disc.DiscussionID})
}

// ListQuestions returns all top level discussions.
func (h *Handlers) ListQuestions(c echo.Context) error {
	questions, err := h.repo.ListQuestions(c.Request().Context())
	if err != nil {
		slog.Error("failed to list questions", "error", err)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	return success(c, http.StatusOK, "all questions fetched successfully", questions)
}

// ListQuestionsWithUserState returns questions joined with the caller's
// state rows.
func (h *Handlers) ListQuestionsWithUserState(c echo.Context) error {
	claims := auth.GetClaims(c.Request().Context())

	questions, err := h.repo.ListQuestionsWithUserState(c.Request().Context(), claims.UserID)
	if err != nil {
		slog.Error("failed to list questions with state", "error", err, "user_id", claims.UserID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "all questions fetched successfully", questions)
}

// GetDiscussion returns a single discussion with author and hashtags.
func (h *Handlers) GetDiscussion(c echo.Context) error {
	discussionID, err := pathID(c, "discussionId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid discussion id")
	}

	detail, err := h.repo.GetDiscussionDetail(c.Request().Context(), discussionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "discussion not found")
		}
		slog.Error("failed to get discussion", "error", err, "discussion_id", discussionID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "discussion retrieved successfully", detail)
}

// ListAnswers returns all answers to a question.
func (h *Handlers) ListAnswers(c echo.Context) error {
	discussionID, err := pathID(c, "discussionId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid discussion id")
	}

	answers, err := h.repo.ListAnswers(c.Request().Context(), discussionID)
	if err != nil {
		slog.Error("failed to list answers", "error", err, "discussion_id", discussionID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "answers fetched successfully", answers)
}

// ListMyDiscussions returns all discussions authored by the caller.
func (h *Handlers) ListMyDiscussions(c echo.Context) error {
	claims := auth.GetClaims(c.Request().Context())

	discussions, err := h.repo.ListDiscussionsByUser(c.Request().Context(), claims.UserID)
	if err != nil {
		slog.Error("failed to list discussions", "error", err, "user_id", claims.UserID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "discussions fetched successfully", discussions)
}

// UpdateDiscussion edits a discussion owned by the caller.
func (h *Handlers) UpdateDiscussion(c echo.Context) error {
	discussionID, err := pathID(c, "discussionId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid discussion id")
	}

	var req DiscussionRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" || req.Content == "" {
		return fail(c, http.StatusBadRequest, "all fields are required")
	}

	if err := h.requireDiscussionOwner(c, discussionID); err != nil {
		return err
	}

	if err := h.repo.UpdateDiscussion(c.Request().Context(), discussionID, req.Title, req.Content); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "discussion not found")
		}
		slog.Error("failed to update discussion", "error", err, "discussion_id", discussionID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "discussion updated successfully", nil)
}

// DeleteDiscussion deletes a discussion owned by the caller. Answers are
// removed with their question by the schema.
func (h *Handlers) DeleteDiscussion(c echo.Context) error {
	discussionID, err := pathID(c, "discussionId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid discussion id")
	}

	if err := h.requireDiscussionOwner(c, discussionID); err != nil {
		return err
	}

	if err := h.repo.DeleteDiscussion(c.Request().Context(), discussionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "discussion not found")
		}
		slog.Error("failed to delete discussion", "error", err, "discussion_id", discussionID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "discussion deleted successfully", nil)
}

// VoteDiscussion casts or changes the caller's vote on a discussion.
func (h *Handlers) VoteDiscussion(c echo.Context) error {
	discussionID, err := pathID(c, "discussionId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid discussion id")
	}

	var req VoteRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Vote != -1 && req.Vote != 0 && req.Vote != 1 {
		return fail(c, http.StatusBadRequest, "vote must be -1, 0 or 1")
	}

	claims := auth.GetClaims(c.Request().Context())

	if err := h.repo.VoteDiscussion(c.Request().Context(), claims.UserID, discussionID, req.Vote); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "discussion not found")
		}
		slog.Error("failed to vote discussion", "error", err, "discussion_id", discussionID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "vote recorded successfully", nil)
}

// AddDiscussionView increments the discussion's view counter.
func (h *Handlers) AddDiscussionView(c echo.Context) error {
	discussionID, err := pathID(c, "discussionId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid discussion id")
	}

	if err := h.repo.AddDiscussionView(c.Request().Context(), discussionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "discussion not found")
		}
		slog.Error("failed to add discussion view", "error", err, "discussion_id", discussionID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "view recorded successfully", nil)
}

// AddDiscussionHashtag links a hashtag to a discussion owned by the caller.
func (h *Handlers) AddDiscussionHashtag(c echo.Context) error {
	discussionID, err := pathID(c, "discussionId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid discussion id")
	}

	var req AddHashtagRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	if err := h.requireDiscussionOwner(c, discussionID); err != nil {
		return err
	}

	if err := h.repo.AddDiscussionHashtag(c.Request().Context(), discussionID, req.HashtagID); err != nil {
		slog.Error("failed to add hashtag", "error", err, "discussion_id", discussionID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "hashtag added to discussion", nil)
}

func (h *Handlers) requireDiscussionOwner(c echo.Context, discussionID int64) error {
	claims := auth.GetClaims(c.Request().Context())

	disc, err := h.repo.GetDiscussionByID(c.Request().Context(), discussionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "discussion not found")
		}
		slog.Error("failed to get discussion", "error", err, "discussion_id", discussionID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	if disc.UserID != claims.UserID {
		return fail(c, http.StatusForbidden, "you are not the owner of this discussion")
	}
	return nil
}
