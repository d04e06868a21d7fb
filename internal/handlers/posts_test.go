// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruangtekno/backend/internal/repository"
	"github.com/ruangtekno/backend/internal/testutil"
)

func TestCreatePostHandler(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")

	body := `{"title":"Hello","content":"First post."}`
	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/posts", strings.NewReader(body))
	authenticate(c, user)

	require.NoError(t, app.handlers.CreatePost(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	posts, err := app.repo.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, user.ID, posts[0].UserID)
}

func TestCreatePostHandlerMissingFields(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")

	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/posts", strings.NewReader(`{"title":"Hello"}`))
	authenticate(c, user)

	require.NoError(t, app.handlers.CreatePost(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePostWithHashtagsHandler(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")
	tag, err := app.repo.CreateHashtag(context.Background(), "golang")
	require.NoError(t, err)

	body := `{"title":"Hello","content":"First post.","hashtags":[` + strconv.FormatInt(tag.HashtagID, 10) + `]}`
	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/posts/with-hashtags", strings.NewReader(body))
	authenticate(c, user)

	require.NoError(t, app.handlers.CreatePostWithHashtags(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	posts, err := app.repo.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)

	tags, err := app.repo.ListHashtagsByPost(context.Background(), posts[0].PostID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "golang", tags[0].Name)
}

func TestGetPostHandlerNotFound(t *testing.T) {
	app := newTestApp(t)

	c, rec := testutil.NewEchoContext(app.echo, http.MethodGet, "/posts/9999", nil)
	c.SetParamNames("postId")
	c.SetParamValues("9999")

	require.NoError(t, app.handlers.GetPost(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdatePostHandlerOwnership(t *testing.T) {
	app := newTestApp(t)
	alice := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")
	mallory := testutil.NewVerifiedUser(t, app.repo, "mallory", "mallory@example.com")
	post := testutil.NewTestPost(t, app.repo, alice.ID, "Hello", "First post.")

	body := `{"title":"Defaced","content":"Gotcha."}`
	c, rec := testutil.NewEchoContext(app.echo, http.MethodPut, "/posts/1", strings.NewReader(body))
	c.SetParamNames("postId")
	c.SetParamValues(strconv.FormatInt(post.PostID, 10))
	authenticate(c, mallory)

	require.NoError(t, app.handlers.UpdatePost(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The owner can edit.
	c, rec = testutil.NewEchoContext(app.echo, http.MethodPut, "/posts/1", strings.NewReader(body))
	c.SetParamNames("postId")
	c.SetParamValues(strconv.FormatInt(post.PostID, 10))
	authenticate(c, alice)

	require.NoError(t, app.handlers.UpdatePost(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeletePostHandlerOwnership(t *testing.T) {
	app := newTestApp(t)
	alice := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")
	mallory := testutil.NewVerifiedUser(t, app.repo, "mallory", "mallory@example.com")
	post := testutil.NewTestPost(t, app.repo, alice.ID, "Hello", "First post.")

	c, rec := testutil.NewEchoContext(app.echo, http.MethodDelete, "/posts/1", nil)
	c.SetParamNames("postId")
	c.SetParamValues(strconv.FormatInt(post.PostID, 10))
	authenticate(c, mallory)

	require.NoError(t, app.handlers.DeletePost(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	_, err := app.repo.GetPostByID(context.Background(), post.PostID)
	require.NoError(t, err)
}

func TestVotePostHandler(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")
	post := testutil.NewTestPost(t, app.repo, user.ID, "Hello", "First post.")

	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/posts/1/vote", strings.NewReader(`{"vote":1}`))
	c.SetParamNames("postId")
	c.SetParamValues(strconv.FormatInt(post.PostID, 10))
	authenticate(c, user)

	require.NoError(t, app.handlers.VotePost(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	found, err := app.repo.GetPostByID(context.Background(), post.PostID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.Votes)
}

func TestVotePostHandlerUnknownPost(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")

	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/posts/9999/vote", strings.NewReader(`{"vote":1}`))
	c.SetParamNames("postId")
	c.SetParamValues("9999")
	authenticate(c, user)

	require.NoError(t, app.handlers.VotePost(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVotePostHandlerRejectsOutOfRange(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")
	post := testutil.NewTestPost(t, app.repo, user.ID, "Hello", "First post.")

	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/posts/1/vote", strings.NewReader(`{"vote":5}`))
	c.SetParamNames("postId")
	c.SetParamValues(strconv.FormatInt(post.PostID, 10))
	authenticate(c, user)

	require.NoError(t, app.handlers.VotePost(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddPostViewHandlerAnonymous(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")
	post := testutil.NewTestPost(t, app.repo, user.ID, "Hello", "First post.")

	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/posts/1/view", nil)
	c.SetParamNames("postId")
	c.SetParamValues(strconv.FormatInt(post.PostID, 10))

	require.NoError(t, app.handlers.AddPostView(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	found, err := app.repo.GetPostByID(context.Background(), post.PostID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.Views)
}

func TestToggleBookmarkHandler(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")
	post := testutil.NewTestPost(t, app.repo, user.ID, "Hello", "First post.")

	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/posts/1/bookmark", nil)
	c.SetParamNames("postId")
	c.SetParamValues(strconv.FormatInt(post.PostID, 10))
	authenticate(c, user)

	require.NoError(t, app.handlers.ToggleBookmark(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	up, err := app.repo.GetUserPost(context.Background(), user.ID, post.PostID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), up.IsBookmarked)
}

func TestSearchPostsHandler(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")
	testutil.NewTestPost(t, app.repo, user.ID, "Intro to Go", "Concurrency made simple.")

	c, rec := testutil.NewEchoContext(app.echo, http.MethodGet, "/posts/search?keyword=concurrency", nil)
	authenticate(c, user)

	require.NoError(t, app.handlers.SearchPosts(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// The search landed in the user's log.
	logs, err := app.repo.ListSearchLogsByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "concurrency", logs[0].Query)
}

func TestSearchPostsHandlerRequiresKeyword(t *testing.T) {
	app := newTestApp(t)

	c, rec := testutil.NewEchoContext(app.echo, http.MethodGet, "/posts/search", nil)
	require.NoError(t, app.handlers.SearchPosts(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchPostsHandlerNoMatch(t *testing.T) {
	app := newTestApp(t)

	c, rec := testutil.NewEchoContext(app.echo, http.MethodGet, "/posts/search?keyword=nonexistent", nil)
	require.NoError(t, app.handlers.SearchPosts(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Misses are not logged.
	_, err := app.repo.GetSearchLogByID(context.Background(), 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRecommendPostsHandler(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")
	testutil.NewTestPost(t, app.repo, user.ID, "Concurrency in Go", "Channels explained.")
	_, err := app.repo.CreateSearchLog(context.Background(), user.ID, "concurrency")
	require.NoError(t, err)

	c, rec := testutil.NewEchoContext(app.echo, http.MethodGet, "/posts/recommended", nil)
	authenticate(c, user)

	require.NoError(t, app.handlers.RecommendPosts(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data, ok := envelope["data"].([]any)
	require.True(t, ok)
	assert.Len(t, data, 1)
}

func TestGetUserPostStateHandler(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")
	post := testutil.NewTestPost(t, app.repo, user.ID, "Hello", "First post.")

	c, rec := testutil.NewEchoContext(app.echo, http.MethodGet, "/posts/1/state", nil)
	c.SetParamNames("postId")
	c.SetParamValues(strconv.FormatInt(post.PostID, 10))
	authenticate(c, user)

	require.NoError(t, app.handlers.GetUserPostState(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// The state row was created on first contact.
	_, err := app.repo.GetUserPost(context.Background(), user.ID, post.PostID)
	require.NoError(t, err)
}
