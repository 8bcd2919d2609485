// Command main runs the database seeder.
package main

import (
	"context"
	"flag"
	"log"

	"socialfeed/internal/config"
	"socialfeed/internal/database"
	"socialfeed/internal/seed"
)

func main() {
	numPosts := flag.Int("posts", 50, "Number of fake posts to create")
	maxComments := flag.Int("comments", 5, "Maximum fake comments per post")
	fixtures := flag.String("fixtures", "", "YAML fixture file to load instead of fake data")
	shouldClean := flag.Bool("clear", false, "Delete existing posts and comments before seeding")
	fakerSeed := flag.Int64("seed", 0, "Fake data seed (0 = random)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	opts := seed.Options{
		NumPosts:    *numPosts,
		MaxComments: *maxComments,
		ShouldClean: *shouldClean,
	}
	if *fixtures != "" {
		fx, err := seed.LoadFixtures(*fixtures)
		if err != nil {
			log.Fatalf("Failed to load fixtures: %v", err)
		}
		opts.Fixtures = fx
	}

	res, err := seed.NewSeeder(db, seed.NewFactory(*fakerSeed)).Run(context.Background(), opts)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Seeded %d posts and %d comments", res.Posts, res.Comments)
}
