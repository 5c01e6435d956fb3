// Command main runs the database seeder for the church vlog backend.
package main

import (
	"flag"
	"log"

	"churchvlog/internal/config"
	"churchvlog/internal/database"
	"churchvlog/internal/seed"
)

func main() {
	// Parse command line flags
	numVideos := flag.Int("videos", 12, "Number of videos to create")
	commentsPerVid := flag.Int("comments", 8, "Maximum comments per video")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d videos, up to %d comments each, clean=%v\n", *numVideos, *commentsPerVid, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)
	if err := s.Run(seed.Options{
		NumVideos:      *numVideos,
		CommentsPerVid: *commentsPerVid,
		ShouldClean:    *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
