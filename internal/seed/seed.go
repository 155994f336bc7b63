// Package seed populates the database with realistic development fixtures.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPassword is the plaintext password every seeded user gets.
const DefaultPassword = "password123"

// groups every seeded database starts with. Slugs are stable so bookmarked
// group URLs keep working across reseeds.
var builtinGroups = []models.Group{
	{Slug: "golang", Title: "Go", Description: "Everything about the Go programming language"},
	{Slug: "databases", Title: "Databases", Description: "Storage engines, query tuning and data modeling"},
	{Slug: "web", Title: "Web Development", Description: "Frontend, backend and everything between"},
	{Slug: "devops", Title: "DevOps", Description: "Shipping, observing and running software"},
	{Slug: "writing", Title: "Writing", Description: "Essays, fiction and the craft of writing itself"},
}

// Seeder generates fixtures against a live database connection.
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a seeder bound to the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// ClearAll removes all seeded data. Deletion order follows foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("🧹 Clearing existing data...")
	for _, table := range []string{"follows", "comments", "posts", "groups", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// SeedGroups inserts the built-in groups, skipping any slug that exists.
func (s *Seeder) SeedGroups() ([]models.Group, error) {
	groups := make([]models.Group, len(builtinGroups))
	copy(groups, builtinGroups)

	for i := range groups {
		err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).Create(&groups[i]).Error
		if err != nil {
			return nil, fmt.Errorf("seed group %s: %w", groups[i].Slug, err)
		}
	}
	log.Printf("✓ Seeded %d groups", len(groups))
	return groups, nil
}

// SeedUsers creates n users with faked identities and a shared password.
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		username := strings.ToLower(fmt.Sprintf("%s_%s%d", first, last, i))

		user := models.User{
			Username:  username,
			Email:     fmt.Sprintf("%s@example.com", username),
			Password:  string(hash),
			FirstName: first,
			LastName:  last,
			Bio:       gofakeit.Sentence(10),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("seed user %s: %w", username, err)
		}
		users = append(users, user)
	}
	log.Printf("✓ Seeded %d users", len(users))
	return users, nil
}

// SeedPosts creates n posts spread over the last 30 days. Roughly two thirds
// land in a group, the rest stay ungrouped, so both feed shapes have data.
func (s *Seeder) SeedPosts(users []models.User, groups []models.Group, n int) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("seed posts: no users to author them")
	}

	posts := make([]models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[rand.Intn(len(users))]

		var groupID *uint
		if len(groups) > 0 && rand.Intn(3) != 0 {
			groupID = &groups[rand.Intn(len(groups))].ID
		}

		post := models.Post{
			Text:      gofakeit.Paragraph(1, 3, 12, " "),
			AuthorID:  author.ID,
			GroupID:   groupID,
			CreatedAt: time.Now().Add(-time.Duration(rand.Intn(30*24)) * time.Hour),
		}
		if err := s.db.Create(&post).Error; err != nil {
			return nil, fmt.Errorf("seed post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("✓ Seeded %d posts", len(posts))
	return posts, nil
}

// SeedComments adds up to maxPerPost comments to each post.
func (s *Seeder) SeedComments(users []models.User, posts []models.Post, maxPerPost int) (int, error) {
	total := 0
	for _, post := range posts {
		for i := 0; i < rand.Intn(maxPerPost+1); i++ {
			comment := models.Comment{
				PostID:   post.ID,
				AuthorID: users[rand.Intn(len(users))].ID,
				Text:     gofakeit.Sentence(rand.Intn(15) + 3),
			}
			if err := s.db.Create(&comment).Error; err != nil {
				return total, fmt.Errorf("seed comment: %w", err)
			}
			total++
		}
	}
	log.Printf("✓ Seeded %d comments", total)
	return total, nil
}

// SeedFollowMesh gives every user a handful of authors to follow. Self-follow
// pairs and duplicates are skipped rather than failing the run.
func (s *Seeder) SeedFollowMesh(users []models.User, followsPerUser int) (int, error) {
	total := 0
	for _, user := range users {
		for i := 0; i < followsPerUser; i++ {
			author := users[rand.Intn(len(users))]
			if author.ID == user.ID {
				continue
			}

			res := s.db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "author_id"}},
				DoNothing: true,
			}).Create(&models.Follow{UserID: user.ID, AuthorID: author.ID})
			if res.Error != nil {
				return total, fmt.Errorf("seed follow edge: %w", res.Error)
			}
			total += int(res.RowsAffected)
		}
	}
	log.Printf("✓ Seeded %d follow edges", total)
	return total, nil
}
