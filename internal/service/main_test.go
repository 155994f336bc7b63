package service

import (
	"fmt"
	"testing"
	"time"

	"quill/internal/database"
	"quill/internal/models"
	"quill/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv bundles a fresh database with all repositories and services wired
// the way the server wires them.
type testEnv struct {
	db       *gorm.DB
	posts    *PostService
	comments *CommentService
	follows  *FollowService
	feeds    *FeedService

	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	postRepo := repository.NewPostRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	userRepo := repository.NewUserRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	return &testEnv{
		db:         db,
		posts:      NewPostService(db, postRepo, groupRepo, commentRepo),
		comments:   NewCommentService(db, commentRepo, postRepo),
		follows:    NewFollowService(followRepo, userRepo),
		feeds:      NewFeedService(postRepo, groupRepo, userRepo, followRepo),
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

func (e *testEnv) createUser(t *testing.T, name string) *models.User {
	t.Helper()
	user := &models.User{
		Username: name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hashed",
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

func (e *testEnv) createGroup(t *testing.T, title, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: title, Slug: slug}
	if err := e.db.Create(group).Error; err != nil {
		t.Fatalf("create group %s: %v", slug, err)
	}
	return group
}

func (e *testEnv) createPost(t *testing.T, author *models.User, text string, createdAt time.Time, groupID *uint) *models.Post {
	t.Helper()
	post := &models.Post{
		Text:      text,
		AuthorID:  author.ID,
		GroupID:   groupID,
		CreatedAt: createdAt,
	}
	if err := e.db.Create(post).Error; err != nil {
		t.Fatalf("create post %q: %v", text, err)
	}
	return post
}

func (e *testEnv) countPosts(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := e.db.Model(&models.Post{}).Count(&count).Error; err != nil {
		t.Fatalf("count posts: %v", err)
	}
	return count
}
