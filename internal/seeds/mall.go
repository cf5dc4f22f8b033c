package seeds

import (
	"log"

	"github.com/habitown/habitown-backend/internal/database"
	"github.com/habitown/habitown-backend/internal/models"
)

// SeedMallCatalog installs the starter Town Mall catalog. Idempotent:
// items are matched by name and never duplicated.
func SeedMallCatalog() error {
	log.Println("Seeding Town Mall catalog...")

	items := []models.MallItem{
		{Name: "Movie night pick", Price: 5, Stock: models.UnlimitedStock, IsActive: true},
		{Name: "Skip one chore", Price: 8, Stock: models.UnlimitedStock, IsActive: true},
		{Name: "Group dinner out", Price: 25, Stock: models.UnlimitedStock, IsActive: true},
		{Name: "Weekend trip vote", Price: 50, Stock: 2, IsActive: true},
	}

	for _, item := range items {
		var existing models.MallItem
		err := database.DB.Where("name = ?", item.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err := database.DB.Create(&item).Error; err != nil {
			return err
		}
		log.Printf("   created mall item %q (price %d)", item.Name, item.Price)
	}
	return nil
}
