package service

import (
	"context"
	"testing"
	"time"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_AddComment(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	author := env.createUser(t, "posting")
	reader := env.createUser(t, "reading")
	post := env.createPost(t, author, "open thread", time.Now().UTC(), nil)

	comment, err := env.comments.AddComment(ctx, AddCommentInput{
		ActorID: reader.ID,
		PostID:  post.ID,
		Text:    "well said",
	})
	require.NoError(t, err)

	// The author is always the acting user.
	assert.Equal(t, reader.ID, comment.AuthorID)
	assert.Equal(t, post.ID, comment.PostID)
	assert.False(t, comment.CreatedAt.IsZero())
}

func TestCommentService_AddCommentRequiresText(t *testing.T) {
	env := setupTestEnv(t)
	author := env.createUser(t, "terse")
	post := env.createPost(t, author, "say something", time.Now().UTC(), nil)

	_, err := env.comments.AddComment(context.Background(), AddCommentInput{
		ActorID: author.ID,
		PostID:  post.ID,
		Text:    "",
	})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeValidation))

	var count int64
	require.NoError(t, env.db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCommentService_AddCommentUnknownPost(t *testing.T) {
	env := setupTestEnv(t)
	reader := env.createUser(t, "confused")

	_, err := env.comments.AddComment(context.Background(), AddCommentInput{
		ActorID: reader.ID,
		PostID:  777,
		Text:    "where am I",
	})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	var count int64
	require.NoError(t, env.db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count, "no orphan comment rows")
}
