// Command main runs the database seeder for Quill.
package main

import (
	"flag"
	"log"

	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numPosts := flag.Int("posts", 150, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Printf("Target: %d users, %d posts, clean=%v\n", *numUsers, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("❌ Cleanup failed: %v", err)
		}
	}

	groups, err := s.SeedGroups()
	if err != nil {
		log.Fatalf("❌ Group seeding failed: %v", err)
	}
	users, err := s.SeedUsers(*numUsers)
	if err != nil {
		log.Fatalf("❌ User seeding failed: %v", err)
	}
	posts, err := s.SeedPosts(users, groups, *numPosts)
	if err != nil {
		log.Fatalf("❌ Post seeding failed: %v", err)
	}
	if _, err := s.SeedComments(users, posts, 4); err != nil {
		log.Fatalf("❌ Comment seeding failed: %v", err)
	}
	if _, err := s.SeedFollowMesh(users, 5); err != nil {
		log.Fatalf("❌ Follow seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Printf("📧 All test users have the password: %s", seed.DefaultPassword)
}
