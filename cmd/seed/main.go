// Command main runs the database seeder for the Sensei community.
package main

import (
	"flag"
	"log"

	"sensei/internal/config"
	"sensei/internal/database"
	"sensei/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	manifest := flag.String("manifest", "", "Seed from a YAML manifest instead of random data")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *manifest != "" {
		m, err := seed.LoadManifest(*manifest)
		if err != nil {
			log.Fatalf("Manifest load failed: %v", err)
		}
		if err := m.Apply(db); err != nil {
			log.Fatalf("Manifest seeding failed: %v", err)
		}
		log.Printf("Seeded from manifest %s", *manifest)
		return
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! The database is populated with test data.")
	log.Printf("All seeded users share the password: %s", seed.DefaultPassword)
}
