package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/habitown/habitown-backend/internal/config"
	"github.com/habitown/habitown-backend/internal/database"
	"github.com/habitown/habitown-backend/internal/models"
	"github.com/habitown/habitown-backend/pkg/logger"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB points the global DB at a fresh in-memory SQLite database
// named after the test, so tests never share state.
func setupTestDB(t *testing.T) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTSecret:       "test-secret",
		GatewaySecret:   "gateway-secret",
		StreakMedalDays: 30,
		GroupBonusCoins: 10,
		ConversionFloor: 2,
	}
	logger.Init("development")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	database.DB = db
	database.Redis = nil
}

// newGroup creates a group with n members and one habit of the given
// type. Users get ids 1..n.
func newGroup(t *testing.T, n int, pointType models.PointType) (*models.Group, []*models.User, *models.Habit) {
	t.Helper()

	chatID := int64(-100)
	group := &models.Group{Name: "Test Town", ChatID: &chatID}
	require.NoError(t, database.DB.Create(group).Error)

	users := make([]*models.User, 0, n)
	for i := 1; i <= n; i++ {
		u := &models.User{
			ID:        int64(i),
			Username:  fmt.Sprintf("user%d", i),
			FirstName: fmt.Sprintf("User %d", i),
			GroupID:   &group.ID,
		}
		require.NoError(t, database.DB.Create(u).Error)
		users = append(users, u)
	}

	habit := &models.Habit{GroupID: group.ID, Name: "Test Habit", PointType: pointType}
	require.NoError(t, database.DB.Create(habit).Error)

	return group, users, habit
}

// daysAgo formats the date n days before today.
func daysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format(models.DateLayout)
}

// reloadUser fetches the current row for a user id.
func reloadUser(t *testing.T, id int64) *models.User {
	t.Helper()
	var user models.User
	require.NoError(t, database.DB.First(&user, "id = ?", id).Error)
	return &user
}
