package main

import (
	"log"
	"os"

	"github.com/habitown/habitown-backend/internal/config"
	"github.com/habitown/habitown-backend/internal/database"
	"github.com/habitown/habitown-backend/internal/models"
	"github.com/habitown/habitown-backend/internal/seeds"
	"github.com/habitown/habitown-backend/pkg/logger"
)

func main() {
	config.LoadConfig()
	logger.Init("development")
	database.Connect()

	log.Println("Running migrations (just in case)...")
	if err := database.DB.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	if err := seeds.SeedMallCatalog(); err != nil {
		log.Fatalf("Failed to seed mall catalog: %v", err)
	}

	// Demo data only outside production.
	if os.Getenv("GO_ENV") != "production" {
		if err := seeds.SeedDemoGroup(); err != nil {
			log.Fatalf("Failed to seed demo group: %v", err)
		}
	}

	log.Println("Seeding complete")
}
