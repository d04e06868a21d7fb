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

// PostRequest is the request body for creating or updating a post.
type PostRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Hashtags []int64 `json:"hashtags"`
}

// CreatePost creates a post for the authenticated user.
func (h *Handlers) CreatePost(c echo.Context) error {
	claims := auth.GetClaims(c.Request().Context())

	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" || req.Content == "" {
		return fail(c, http.StatusBadRequest, "all fields are required")
	}

	post, err := h.repo.CreatePost(c.Request().Context(), claims.UserID, req.Title, req.Content)
	if err != nil {
		slog.Error("failed to create post", "error", err, "user_id", claims.UserID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusCreated, "post created successfully", map[string]int64{"postId": post.PostID})
}

// CreatePostWithHashtags creates a post and links the given hashtags.
func (h *Handlers) CreatePostWithHashtags(c echo.Context) error {
	claims := auth.GetClaims(c.Request().Context())

	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" || req.Content == "" {
		return fail(c, http.StatusBadRequest, "all fields are required")
	}

	ctx := c.Request().Context()
	post, err := h.repo.CreatePost(ctx, claims.UserID, req.Title, req.Content)
	if err != nil {
		slog.Error("failed to create post", "error", err, "user_id", claims.UserID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	for _, hashtagID := range req.Hashtags {
		if err := h.repo.AddPostHashtag(ctx, post.PostID, hashtagID); err != nil {
			slog.Error("failed to link hashtag", "error", err, "post_id", post.PostID, "hashtag_id", hashtagID)
			return fail(c, http.StatusInternalServerError, "internal server error")
		}
	}

	return success(c, http.StatusCreated, "post created successfully", map[string]int64{"postId": post.PostID})
}

// ListPosts returns all posts.
func (h *Handlers) ListPosts(c echo.Context) error {
	posts, err := h.repo.ListPosts(c.Request().Context())
	if err != nil {
		slog.Error("failed to list posts", "error", err)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	return success(c, http.StatusOK, "all posts fetched successfully", posts)
}

// GetPost returns one post.
func (h *Handlers) GetPost(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid post id")
	}

	post, err := h.repo.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "post not found")
		}
		slog.Error("failed to get post", "error", err, "post_id", postID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "post retrieved successfully", post)
}

// GetPostDetail returns a post with author and hashtag names.
func (h *Handlers) GetPostDetail(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid post id")
	}

	detail, err := h.repo.GetPostDetailByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "post not found")
		}
		slog.Error("failed to get post detail", "error", err, "post_id", postID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "post retrieved successfully", detail)
}

// ListPostsWithUserState returns all posts with the caller's state rows.
func (h *Handlers) ListPostsWithUserState(c echo.Context) error {
	claims := auth.GetClaims(c.Request().Context())

	posts, err := h.repo.ListPostsWithUserState(c.Request().Context(), claims.UserID)
	if err != nil {
		slog.Error("failed to list posts with state", "error", err, "user_id", claims.UserID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "all posts fetched successfully", posts)
}

// GetUserPostState returns the caller's state row for one post, creating it
// on first contact.
func (h *Handlers) GetUserPostState(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid post id")
	}
	claims := auth.GetClaims(c.Request().Context())

	ctx := c.Request().Context()
	if err := h.repo.EnsureUserPostRow(ctx, claims.UserID, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "post not found")
		}
		slog.Error("failed to ensure post state", "error", err, "post_id", postID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	up, err := h.repo.GetUserPost(ctx, claims.UserID, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "post not found")
		}
		slog.Error("failed to get post state", "error", err, "post_id", postID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "post state retrieved successfully", up)
}

// ListBookmarkedPosts returns the caller's bookmarked posts.
func (h *Handlers) ListBookmarkedPosts(c echo.Context) error {
	claims := auth.GetClaims(c.Request().Context())

	posts, err := h.repo.ListBookmarkedPosts(c.Request().Context(), claims.UserID)
	if err != nil {
		slog.Error("failed to list bookmarks", "error", err, "user_id", claims.UserID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "bookmarked posts fetched successfully", posts)
}

// UpdatePost edits a post owned by the caller.
func (h *Handlers) UpdatePost(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid post id")
	}

	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" || req.Content == "" {
		return fail(c, http.StatusBadRequest, "all fields are required")
	}

	if err := h.requirePostOwner(c, postID); err != nil {
		return err
	}

	if err := h.repo.UpdatePost(c.Request().Context(), postID, req.Title, req.Content); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "post not found")
		}
		slog.Error("failed to update post", "error", err, "post_id", postID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "post updated successfully", nil)
}

// UpdatePostWithHashtags edits a post and replaces its hashtag set.
func (h *Handlers) UpdatePostWithHashtags(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid post id")
	}

	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" || req.Content == "" {
		return fail(c, http.StatusBadRequest, "all fields are required")
	}

	if err := h.requirePostOwner(c, postID); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.repo.UpdatePost(ctx, postID, req.Title, req.Content); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "post not found")
		}
		slog.Error("failed to update post", "error", err, "post_id", postID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	if err := h.repo.ReplacePostHashtags(ctx, postID, req.Hashtags); err != nil {
		slog.Error("failed to replace hashtags", "error", err, "post_id", postID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "post updated successfully", nil)
}

// DeletePost deletes a post owned by the caller.
func (h *Handlers) DeletePost(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid post id")
	}

	if err := h.requirePostOwner(c, postID); err != nil {
		return err
	}

	if err := h.repo.DeletePost(c.Request().Context(), postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "post not found")
		}
		slog.Error("failed to delete post", "error", err, "post_id", postID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "post deleted successfully", nil)
}

// VoteRequest is the request body for casting a vote.
type VoteRequest struct {
	Vote int64 `json:"vote"`
}

// VotePost casts or changes the caller's vote on a post.
func (h *Handlers) VotePost(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid post id")
	}

	var req VoteRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Vote != -1 && req.Vote != 0 && req.Vote != 1 {
		return fail(c, http.StatusBadRequest, "vote must be -1, 0 or 1")
	}

	claims := auth.GetClaims(c.Request().Context())

	ctx := c.Request().Context()
	if err := h.repo.EnsureUserPostRow(ctx, claims.UserID, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "post not found")
		}
		slog.Error("failed to ensure post state", "error", err, "post_id", postID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	if err := h.repo.VotePost(ctx, claims.UserID, postID, req.Vote); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "post not found")
		}
		slog.Error("failed to vote post", "error", err, "post_id", postID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "vote recorded successfully", nil)
}

// AddPostView increments the post's view counter. Works anonymously; for
// authenticated callers the per-user counter is bumped too.
func (h *Handlers) AddPostView(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid post id")
	}

	var userID int64
	if claims := auth.GetClaims(c.Request().Context()); claims != nil {
		userID = claims.UserID
	}

	if err := h.repo.AddPostView(c.Request().Context(), postID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "post not found")
		}
		slog.Error("failed to add post view", "error", err, "post_id", postID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "view recorded successfully", nil)
}

// ToggleBookmark flips the caller's bookmark flag on a post.
func (h *Handlers) ToggleBookmark(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid post id")
	}
	claims := auth.GetClaims(c.Request().Context())

	if err := h.repo.ToggleBookmark(c.Request().Context(), claims.UserID, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "post not found")
		}
		slog.Error("failed to toggle bookmark", "error", err, "post_id", postID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "bookmark toggled successfully", nil)
}

// AddHashtagRequest is the request body for linking a hashtag to a post.
type AddHashtagRequest struct {
	HashtagID int64 `json:"hashtagId"`
}

// AddPostHashtag links a hashtag to a post owned by the caller.
func (h *Handlers) AddPostHashtag(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid post id")
	}

	var req AddHashtagRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	if err := h.requirePostOwner(c, postID); err != nil {
		return err
	}

	if err := h.repo.AddPostHashtag(c.Request().Context(), postID, req.HashtagID); err != nil {
		slog.Error("failed to add hashtag", "error", err, "post_id", postID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "hashtag added to post", nil)
}

// SearchPosts finds posts matching a keyword and records the query in the
// caller's search log when authenticated.
func (h *Handlers) SearchPosts(c echo.Context) error {
	keyword := c.QueryParam("keyword")
	if keyword == "" {
		return fail(c, http.StatusBadRequest, "keyword is required for searching posts")
	}

	ctx := c.Request().Context()
	posts, err := h.repo.SearchPosts(ctx, keyword)
	if err != nil {
		slog.Error("failed to search posts", "error", err, "keyword", keyword)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	if len(posts) == 0 {
		return fail(c, http.StatusNotFound, "no article found matching the keyword")
	}

	if claims := auth.GetClaims(ctx); claims != nil {
		if _, err := h.repo.CreateSearchLog(ctx, claims.UserID, keyword); err != nil {
			slog.Warn("failed to record search", "error", err, "user_id", claims.UserID)
		}
	}

	return success(c, http.StatusOK, "articles found", posts)
}

// RecommendPosts ranks posts against the caller's recent searches.
func (h *Handlers) RecommendPosts(c echo.Context) error {
	claims := auth.GetClaims(c.Request().Context())

	posts, err := h.recommender.RecommendPosts(c.Request().Context(), claims.UserID)
	if err != nil {
		slog.Error("failed to recommend posts", "error", err, "user_id", claims.UserID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "recommendations fetched successfully", posts)
}

// requirePostOwner fails the request unless the caller owns the post.
func (h *Handlers) requirePostOwner(c echo.Context, postID int64) error {
	claims := auth.GetClaims(c.Request().Context())

	post, err := h.repo.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fail(c, http.StatusNotFound, "post not found")
		}
		slog.Error("failed to get post", "error", err, "post_id", postID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	if post.UserID != claims.UserID {
		return fail(c, http.StatusForbidden, "you are not the owner of this post")
	}
	return nil
}
