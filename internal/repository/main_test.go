package repository

import (
	"fmt"
	"testing"
	"time"

	"quill/internal/database"
	"quill/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory sqlite database with the full schema.
// Each test gets its own database, so fixtures never leak between tests.
func setupTestDB(t *testing.T) *gorm.DB {
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
	return db
}

// createTestUser persists a user with a unique username.
func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		Username: name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hashed",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

// createTestPost persists a post with an explicit creation time so ordering
// assertions are deterministic.
func createTestPost(t *testing.T, db *gorm.DB, author *models.User, text string, createdAt time.Time, groupID *uint) *models.Post {
	t.Helper()
	post := &models.Post{
		Text:      text,
		AuthorID:  author.ID,
		GroupID:   groupID,
		CreatedAt: createdAt,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post %q: %v", text, err)
	}
	return post
}
