// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruangtekno/backend/internal/repository"
	"github.com/ruangtekno/backend/internal/testutil"
)

func TestSetSessionTokensOverwrites(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "alice", "alice@example.com")

	require.NoError(t, repo.SetSessionTokens(ctx, user.ID, "access-1", "refresh-1"))
	require.NoError(t, repo.SetSessionTokens(ctx, user.ID, "access-2", "refresh-2"))

	session, err := repo.GetSession(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "access-2", session.AccessToken)
	assert.Equal(t, "refresh-2", session.RefreshToken)
}

func TestUpdateAccessToken(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "alice", "alice@example.com")

	require.NoError(t, repo.SetSessionTokens(ctx, user.ID, "access-1", "refresh-1"))
	require.NoError(t, repo.UpdateAccessToken(ctx, user.ID, "access-2"))

	session, err := repo.GetSession(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "access-2", session.AccessToken)
	assert.Equal(t, "refresh-1", session.RefreshToken)
}

func TestUpdateAccessTokenWithoutSession(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "alice", "alice@example.com")

	err := repo.UpdateAccessToken(ctx, user.ID, "access-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestClearSessionIsIdempotent(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "alice", "alice@example.com")

	require.NoError(t, repo.SetSessionTokens(ctx, user.ID, "access-1", "refresh-1"))
	require.NoError(t, repo.ClearSession(ctx, user.ID))
	require.NoError(t, repo.ClearSession(ctx, user.ID))

	_, err := repo.GetSession(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionCascadesWithUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "alice", "alice@example.com")

	require.NoError(t, repo.SetSessionTokens(ctx, user.ID, "access-1", "refresh-1"))
	require.NoError(t, repo.DeleteUser(ctx, user.ID))

	_, err := repo.GetSession(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
