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

func TestCreateAndListSearchLogs(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "alice", "alice@example.com")

	logID, err := repo.CreateSearchLog(ctx, user.ID, "golang testing")
	require.NoError(t, err)
	assert.NotZero(t, logID)

	_, err = repo.CreateSearchLog(ctx, user.ID, "sqlite pragmas")
	require.NoError(t, err)

	logs, err := repo.ListSearchLogsByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestListRecentSearchQueriesDeduplicates(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "alice", "alice@example.com")

	for _, q := range []string{"golang", "golang", "sqlite", "golang"} {
		_, err := repo.CreateSearchLog(ctx, user.ID, q)
		require.NoError(t, err)
	}

	queries, err := repo.ListRecentSearchQueries(ctx, user.ID, 6)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"golang", "sqlite"}, queries)
}

func TestListRecentSearchQueriesHonorsLimit(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "alice", "alice@example.com")

	for _, q := range []string{"one", "two", "three"} {
		_, err := repo.CreateSearchLog(ctx, user.ID, q)
		require.NoError(t, err)
	}

	queries, err := repo.ListRecentSearchQueries(ctx, user.ID, 2)
	require.NoError(t, err)
	assert.Len(t, queries, 2)
}

func TestSearchLogsAreScopedPerUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	alice := testutil.NewTestUser(t, repo, "alice", "alice@example.com")
	bob := testutil.NewTestUser(t, repo, "bob", "bob@example.com")

	_, err := repo.CreateSearchLog(ctx, alice.ID, "golang")
	require.NoError(t, err)

	queries, err := repo.ListRecentSearchQueries(ctx, bob.ID, 6)
	require.NoError(t, err)
	assert.Empty(t, queries)
}

func TestDeleteSearchLog(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "alice", "alice@example.com")

	logID, err := repo.CreateSearchLog(ctx, user.ID, "golang")
	require.NoError(t, err)

	entry, err := repo.GetSearchLogByID(ctx, logID)
	require.NoError(t, err)
	assert.Equal(t, "golang", entry.Query)

	require.NoError(t, repo.DeleteSearchLog(ctx, logID))
	_, err = repo.GetSearchLogByID(ctx, logID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
