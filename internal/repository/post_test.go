package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"quill/internal/models"
	"quill/internal/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_GlobalFeedOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "orderer")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	createTestPost(t, db, author, "oldest", base, nil)
	createTestPost(t, db, author, "middle", base.Add(time.Hour), nil)
	createTestPost(t, db, author, "newest", base.Add(2*time.Hour), nil)

	posts, err := repo.ListGlobal(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "newest", posts[0].Text)
	assert.Equal(t, "middle", posts[1].Text)
	assert.Equal(t, "oldest", posts[2].Text)
}

func TestPostRepository_PagesPartitionTheFeed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "prolific")

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		createTestPost(t, db, author, fmt.Sprintf("post %02d", i), base.Add(time.Duration(i)*time.Minute), nil)
	}

	total, err := repo.CountGlobal(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(12), total)

	p1 := pagination.Paginate(1, total)
	p2 := pagination.Paginate(2, total)

	page1, err := repo.ListGlobal(ctx, p1.Limit, p1.Offset)
	require.NoError(t, err)
	page2, err := repo.ListGlobal(ctx, p2.Limit, p2.Offset)
	require.NoError(t, err)

	assert.Len(t, page1, 10)
	assert.Len(t, page2, 2)

	// No overlap, no gap.
	seen := map[uint]bool{}
	for _, p := range append(page1, page2...) {
		assert.False(t, seen[p.ID], "post %d served twice", p.ID)
		seen[p.ID] = true
	}
	assert.Len(t, seen, 12)
}

func TestPostRepository_GroupFeedsAreDisjoint(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "grouped")

	groupA := &models.Group{Title: "Go", Slug: "go", Description: "gophers"}
	groupB := &models.Group{Title: "Rust", Slug: "rust", Description: "crustaceans"}
	require.NoError(t, db.Create(groupA).Error)
	require.NoError(t, db.Create(groupB).Error)

	now := time.Now().UTC()
	inA := createTestPost(t, db, author, "belongs to A", now, &groupA.ID)
	createTestPost(t, db, author, "belongs to B", now.Add(time.Second), &groupB.ID)
	createTestPost(t, db, author, "ungrouped", now.Add(2*time.Second), nil)

	postsA, err := repo.ListByGroup(ctx, groupA.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, postsA, 1)
	assert.Equal(t, inA.ID, postsA[0].ID)

	postsB, err := repo.ListByGroup(ctx, groupB.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, postsB, 1)
	assert.NotEqual(t, inA.ID, postsB[0].ID)
}

func TestPostRepository_ListFollowed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	reader := createTestUser(t, db, "reader")
	followed := createTestUser(t, db, "followed")
	stranger := createTestUser(t, db, "stranger")

	now := time.Now().UTC()
	createTestPost(t, db, followed, "from followed", now, nil)
	createTestPost(t, db, stranger, "from stranger", now.Add(time.Second), nil)

	// Following no one is an empty feed, not an error.
	posts, err := repo.ListFollowed(ctx, reader.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, posts)

	require.NoError(t, follows.Follow(ctx, reader.ID, followed.ID))

	posts, err = repo.ListFollowed(ctx, reader.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "from followed", posts[0].Text)

	count, err := repo.CountFollowed(ctx, reader.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPostRepository_UpdateNeverTouchesCreatedAt(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := createTestUser(t, db, "editor")

	createdAt := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	post := createTestPost(t, db, author, "original", createdAt, nil)

	post.Text = "edited"
	require.NoError(t, repo.Update(ctx, post))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Text)
	assert.True(t, got.CreatedAt.Equal(createdAt), "created_at must be immutable, got %v", got.CreatedAt)
}

func TestPostRepository_GetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(context.Background(), 9999)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}
