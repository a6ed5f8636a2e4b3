package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"lapor/internal/config"
	"lapor/internal/model"
	"lapor/internal/store"
)

func main() {
	log.Println("Starting seed script...")

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}
	cfg := config.Load()

	feed := store.NewFeed(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	client, err := store.NewPostgres(cfg.PostgresDSN, feed)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer client.Close()
	log.Println("Connected to database")

	ctx := context.Background()

	existing, err := client.SelectProfiles(ctx)
	if err != nil {
		log.Fatalf("Failed to read profiles: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Profiles table already has %d rows, nothing to do", len(existing))
		return
	}

	users := model.FallbackUsers()
	for i := range users {
		if err := client.InsertProfile(ctx, &users[i]); err != nil {
			log.Fatalf("Failed to seed profile %s: %v", users[i].PJLPNumber, err)
		}
	}
	log.Printf("Seeded %d profiles", len(users))

	reports := model.FallbackReports()
	for i := range reports {
		if err := client.InsertReport(ctx, &reports[i]); err != nil {
			log.Fatalf("Failed to seed report %s: %v", reports[i].ID, err)
		}
	}
	log.Printf("Seeded %d reports", len(reports))

	log.Println("Seed completed successfully!")
}
