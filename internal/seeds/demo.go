package seeds

import (
	"log"

	"github.com/habitown/habitown-backend/internal/database"
	"github.com/habitown/habitown-backend/internal/models"
)

// SeedDemoGroup creates a small group with users and habits for local
// development. Skips itself entirely if the group already exists.
func SeedDemoGroup() error {
	log.Println("Seeding demo group...")

	var existing models.Group
	if err := database.DB.Where("name = ?", "Demo Town").First(&existing).Error; err == nil {
		log.Println("   demo group already present, skipping")
		return nil
	}

	chatID := int64(-1000001)
	group := models.Group{Name: "Demo Town", ChatID: &chatID}
	if err := database.DB.Create(&group).Error; err != nil {
		return err
	}

	users := []models.User{
		{ID: 1001, Username: "alice_demo", FirstName: "Alice", GroupID: &group.ID},
		{ID: 1002, Username: "bob_demo", FirstName: "Bob", GroupID: &group.ID},
		{ID: 1003, Username: "carol_demo", FirstName: "Carol", GroupID: &group.ID},
	}
	for i := range users {
		if err := database.DB.Create(&users[i]).Error; err != nil {
			return err
		}
	}

	habits := []models.Habit{
		{GroupID: group.ID, Name: "Morning run", PointType: models.PointPhysical},
		{GroupID: group.ID, Name: "Sketch practice", PointType: models.PointArts},
		{GroupID: group.ID, Name: "Cook dinner", PointType: models.PointFood},
		{GroupID: group.ID, Name: "Read 20 pages", PointType: models.PointEducational},
		{GroupID: group.ID, Name: "Inbox zero", PointType: models.PointOther},
	}
	for i := range habits {
		if err := database.DB.Create(&habits[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("   created group %q with %d users and %d habits", group.Name, len(users), len(habits))
	return nil
}
