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

// CommentRequest is the request body for posting a comment. ReplyTo is set
// when replying to another comment.
type CommentRequest struct {
	Content string `json:"content"`
	ReplyTo *int64 `json:"replyTo"`
}

// CreateComment posts a comment on a post, or a reply when ReplyTo is set.
func (h *Handlers) CreateComment(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid post id")
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Content == "" {
		return fail(c, http.StatusBadRequest, "content is required")
	}

	claims := auth.GetClaims(c.Request().Context())

	ctx := c.Request().Context()
	if _, err := h.repo.GetPostByID(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "post not found")
		}
		slog.Error("failed to get post", "error", err, "post_id", postID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	if req.ReplyTo != nil {
		parent, err := h.repo.GetCommentByID(ctx, *req.ReplyTo)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fail(c, http.StatusNotFound, "comment not found")
			}
			slog.Error("failed to get comment", "error", err, "comment_id", *req.ReplyTo)
			return fail(c, http.StatusInternalServerError, "internal server error")
		}
		if parent.PostID != postID {
			return fail(c, http.StatusBadRequest, "comment does not belong to this post")
		}
	}

	comment, err := h.repo.CreateComment(ctx, claims.UserID, postID, req.ReplyTo, req.Content)
	if err != nil {
		slog.Error("failed to create comment", "error", err, "post_id", postID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusCreated, "comment created successfully", map[string]int64{"commentId": comment.CommentID})
}

// ListComments returns the top level comments of a post.
func (h *Handlers) ListComments(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid post id")
	}

	comments, err := h.repo.ListTopLevelComments(c.Request().Context(), postID)
	if err != nil {
		slog.Error("failed to list comments", "error", err, "post_id", postID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "comments fetched successfully", comments)
}

// ListReplies returns the replies to a comment.
func (h *Handlers) ListReplies(c echo.Context) error {
	commentID, err := pathID(c, "commentId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid comment id")
	}

	replies, err := h.repo.ListReplies(c.Request().Context(), commentID)
	if err != nil {
		slog.Error("failed to list replies", "error", err, "comment_id", commentID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "replies fetched successfully", replies)
}

// DeleteComment deletes a comment owned by the caller. Replies are removed
// with their parent by the schema.
func (h *Handlers) DeleteComment(c echo.Context) error {
	commentID, err := pathID(c, "commentId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid comment id")
	}

	claims := auth.GetClaims(c.Request().Context())

	comment, err := h.repo.GetCommentByID(c.Request().Context(), commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "comment not found")
		}
		slog.Error("failed to get comment", "error", err, "comment_id", commentID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	if comment.UserID != claims.UserID {
		return fail(c, http.StatusForbidden, "you are not the owner of this comment")
	}

	if err := h.repo.DeleteComment(c.Request().Context(), commentID); err != nil {
		slog.Error("failed to delete comment", "error", err, "comment_id", commentID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "comment deleted successfully", nil)
}
