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

func TestCreateAndGetHashtag(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	tag, err := repo.CreateHashtag(ctx, "golang")
	require.NoError(t, err)
	assert.NotZero(t, tag.HashtagID)

	found, err := repo.GetHashtagByID(ctx, tag.HashtagID)
	require.NoError(t, err)
	assert.Equal(t, "golang", found.Name)

	_, err = repo.GetHashtagByID(ctx, 9999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateHashtagDuplicateName(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	_, err := repo.CreateHashtag(ctx, "golang")
	require.NoError(t, err)
	_, err = repo.CreateHashtag(ctx, "golang")
	assert.Error(t, err)
}

func TestListHashtagsByPost(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "alice", "alice@example.com")
	post := testutil.NewTestPost(t, repo, user.ID, "Hello", "First post.")

	golang, err := repo.CreateHashtag(ctx, "golang")
	require.NoError(t, err)
	_, err = repo.CreateHashtag(ctx, "unrelated")
	require.NoError(t, err)

	require.NoError(t, repo.AddPostHashtag(ctx, post.PostID, golang.HashtagID))
	// Linking twice is a no-op.
	require.NoError(t, repo.AddPostHashtag(ctx, post.PostID, golang.HashtagID))

	tags, err := repo.ListHashtagsByPost(ctx, post.PostID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "golang", tags[0].Name)
}
