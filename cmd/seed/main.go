package main

// Loads the embedded mock dataset into Postgres so the gorm backend
// starts with the same wines, ratings, and user the in-memory backend
// serves.

import (
	"log"
	"log/slog"
	"os"

	"gorm.io/gorm"

	"winecellar/database"
	"winecellar/internal/config"
	"winecellar/internal/httpapi/models"
	"winecellar/internal/httpapi/repository/memory"
)

func main() {
	log.Println("Starting database seed...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required to seed Postgres")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)
	log.Println("✓ Successfully connected to database")

	wines, err := memory.SeedWines()
	if err != nil {
		log.Fatalf("Failed to load wine seed data: %v", err)
	}
	ratings, err := memory.SeedRatings()
	if err != nil {
		log.Fatalf("Failed to load rating seed data: %v", err)
	}
	users, err := memory.SeedUsers()
	if err != nil {
		log.Fatalf("Failed to load user seed data: %v", err)
	}
	log.Printf("✓ Loaded %d wines, %d ratings, %d users from embedded data", len(wines), len(ratings), len(users))

	err = db.Transaction(func(tx *gorm.DB) error {
		for i := range users {
			if err := tx.Save(&users[i]).Error; err != nil {
				return err
			}
		}
		for i := range wines {
			if err := tx.Save(&wines[i]).Error; err != nil {
				return err
			}
		}
		for i := range ratings {
			ratings[i].Wine = nil
			if err := tx.Save(&ratings[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Seed transaction failed: %v", err)
	}

	log.Printf("✓ Import complete: %d wines, %d ratings, %d users", len(wines), len(ratings), len(users))

	var count int64
	if err := db.Model(&models.Wine{}).Count(&count).Error; err == nil {
		log.Printf("Wines now in database: %d", count)
	}
}
