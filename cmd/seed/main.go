// Command seed populates a development database with fake data.
package main

import (
	"flag"
	"log"

	"bookclub/internal/config"
	"bookclub/internal/database"
	"bookclub/internal/middleware"
	"bookclub/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	middleware.InitMiddleware(cfg)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, *numUsers); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Done. All seeded users have the password: password123")
}
