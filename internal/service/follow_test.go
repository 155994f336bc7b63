package service

import (
	"context"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) countFollows(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := e.db.Model(&models.Follow{}).Count(&count).Error; err != nil {
		t.Fatalf("count follows: %v", err)
	}
	return count
}

func TestFollowService_SelfFollowIsSilentNoop(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "loner")

	// Regardless of call count, no edge appears and no error surfaces.
	for i := 0; i < 3; i++ {
		author, err := env.follows.Follow(ctx, user.ID, "loner")
		require.NoError(t, err)
		assert.Equal(t, user.ID, author.ID)
	}
	assert.Zero(t, env.countFollows(t))
}

func TestFollowService_FollowIsIdempotent(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	reader := env.createUser(t, "fan")
	author := env.createUser(t, "star")

	_, err := env.follows.Follow(ctx, reader.ID, author.Username)
	require.NoError(t, err)
	_, err = env.follows.Follow(ctx, reader.ID, author.Username)
	require.NoError(t, err)

	assert.Equal(t, int64(1), env.countFollows(t))
}

func TestFollowService_FollowUnknownUsername(t *testing.T) {
	env := setupTestEnv(t)
	reader := env.createUser(t, "searching")

	_, err := env.follows.Follow(context.Background(), reader.ID, "ghost")
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}

func TestFollowService_UnfollowMissingEdge(t *testing.T) {
	env := setupTestEnv(t)
	reader := env.createUser(t, "detached")
	author := env.createUser(t, "unbothered")

	_, err := env.follows.Unfollow(context.Background(), reader.ID, author.Username)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
	assert.Zero(t, env.countFollows(t))
}

func TestFollowService_FollowThenUnfollow(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	reader := env.createUser(t, "fickle")
	author := env.createUser(t, "patient")

	_, err := env.follows.Follow(ctx, reader.ID, author.Username)
	require.NoError(t, err)
	assert.Equal(t, int64(1), env.countFollows(t))

	_, err = env.follows.Unfollow(ctx, reader.ID, author.Username)
	require.NoError(t, err)
	assert.Zero(t, env.countFollows(t))
}
