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

	"github.com/ruangtekno/backend/internal/testutil"
)

func TestCreateDiscussionHandler(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")

	body := `{"title":"How do I test SQLite?","content":"In-memory or on disk?"}`
	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/discussions", strings.NewReader(body))
	authenticate(c, user)

	require.NoError(t, app.handlers.CreateDiscussion(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	questions, err := app.repo.ListQuestions(context.Background())
	require.NoError(t, err)
	assert.Len(t, questions, 1)
}

func TestCreateAnswerHandler(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")
	question, err := app.repo.CreateDiscussion(context.Background(), user.ID, nil, "Q", "Question body.")
	require.NoError(t, err)

	body := `{"title":"A","content":"Answer body.","answerTo":` + strconv.FormatInt(question.DiscussionID, 10) + `}`
	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/discussions", strings.NewReader(body))
	authenticate(c, user)

	require.NoError(t, app.handlers.CreateDiscussion(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	answers, err := app.repo.ListAnswers(context.Background(), question.DiscussionID)
	require.NoError(t, err)
	assert.Len(t, answers, 1)
}

func TestCreateAnswerHandlerUnknownQuestion(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")

	body := `{"title":"A","content":"Answer body.","answerTo":9999}`
	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/discussions", strings.NewReader(body))
	authenticate(c, user)

	require.NoError(t, app.handlers.CreateDiscussion(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteDiscussionHandlerOwnership(t *testing.T) {
	app := newTestApp(t)
	alice := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")
	mallory := testutil.NewVerifiedUser(t, app.repo, "mallory", "mallory@example.com")
	question, err := app.repo.CreateDiscussion(context.Background(), alice.ID, nil, "Q", "Question body.")
	require.NoError(t, err)

	c, rec := testutil.NewEchoContext(app.echo, http.MethodDelete, "/discussions/1", nil)
	c.SetParamNames("discussionId")
	c.SetParamValues(strconv.FormatInt(question.DiscussionID, 10))
	authenticate(c, mallory)

	require.NoError(t, app.handlers.DeleteDiscussion(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestVoteDiscussionHandler(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")
	question, err := app.repo.CreateDiscussion(context.Background(), user.ID, nil, "Q", "Question body.")
	require.NoError(t, err)

	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/discussions/1/vote", strings.NewReader(`{"vote":1}`))
	c.SetParamNames("discussionId")
	c.SetParamValues(strconv.FormatInt(question.DiscussionID, 10))
	authenticate(c, user)

	require.NoError(t, app.handlers.VoteDiscussion(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	found, err := app.repo.GetDiscussionByID(context.Background(), question.DiscussionID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.Votes)
}

func TestCreateCommentHandlerChecksPostAndParent(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")
	post := testutil.NewTestPost(t, app.repo, user.ID, "Hello", "First post.")
	other := testutil.NewTestPost(t, app.repo, user.ID, "Other", "Second post.")

	// Comment on a missing post.
	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/posts/9999/comments", strings.NewReader(`{"content":"hi"}`))
	c.SetParamNames("postId")
	c.SetParamValues("9999")
	authenticate(c, user)
	require.NoError(t, app.handlers.CreateComment(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// A valid top-level comment.
	c, rec = testutil.NewEchoContext(app.echo, http.MethodPost, "/posts/1/comments", strings.NewReader(`{"content":"hi"}`))
	c.SetParamNames("postId")
	c.SetParamValues(strconv.FormatInt(post.PostID, 10))
	authenticate(c, user)
	require.NoError(t, app.handlers.CreateComment(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	comments, err := app.repo.ListTopLevelComments(context.Background(), post.PostID)
	require.NoError(t, err)
	require.Len(t, comments, 1)

	// A reply must target a comment on the same post.
	body := `{"content":"hi","replyTo":` + strconv.FormatInt(comments[0].CommentID, 10) + `}`
	c, rec = testutil.NewEchoContext(app.echo, http.MethodPost, "/posts/2/comments", strings.NewReader(body))
	c.SetParamNames("postId")
	c.SetParamValues(strconv.FormatInt(other.PostID, 10))
	authenticate(c, user)
	require.NoError(t, app.handlers.CreateComment(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
