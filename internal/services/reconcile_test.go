package services

import (
	"testing"

	"github.com/habitown/habitown-backend/internal/database"
	"github.com/habitown/habitown-backend/internal/models"
	"github.com/habitown/habitown-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculateCorrectsDrift(t *testing.T) {
	setupTestDB(t)
	_, users, habit := newGroup(t, 1, models.PointPhysical)

	completeDays(t, users[0].ID, habit.ID, 5)
	// Stored balance drifted away from the facts.
	require.NoError(t, database.DB.Model(users[0]).Update("points_physical", 11).Error)

	diff, err := RecalculateUser(users[0].ID)
	require.NoError(t, err)
	assert.True(t, diff.Changed)
	assert.Equal(t, 11, diff.Before.Physical)
	assert.Equal(t, 5, diff.After.Physical)
	assert.Equal(t, 5, reloadUser(t, users[0].ID).PointsPhysical)

	// A second pass finds nothing to fix.
	diff, err = RecalculateUser(users[0].ID)
	require.NoError(t, err)
	assert.False(t, diff.Changed)
}

func TestRecalculateCountsTrades(t *testing.T) {
	setupTestDB(t)
	_, users, habit := newGroup(t, 2, models.PointPhysical)
	buyer, seller := users[0], users[1]

	completeDays(t, buyer.ID, habit.ID, 4)
	require.NoError(t, database.DB.Model(buyer).Update("points_physical", 4).Error)
	reward := listReward(t, seller.ID, 3, models.PointPhysical)
	_, err := BuyReward(buyer.ID, reward.ID, nil)
	require.NoError(t, err)

	diffs, err := RecalculateAll()
	require.NoError(t, err)
	for _, d := range diffs {
		assert.False(t, d.Changed, "user %d drifted", d.UserID)
	}

	assert.Equal(t, 1, reloadUser(t, buyer.ID).PointsPhysical)
	assert.Equal(t, 3, reloadUser(t, seller.ID).PointsPhysical)
}

func TestRecalculateCoinsFromFacts(t *testing.T) {
	setupTestDB(t)
	_, users, _ := newGroup(t, 1, models.PointPhysical)

	require.NoError(t, database.DB.Create(&models.CoinGrant{
		UserID: users[0].ID, Amount: 10, Reason: "group_achievement",
	}).Error)
	item := models.MallItem{Name: "Pizza night", Price: 4, Stock: models.UnlimitedStock, IsActive: true}
	require.NoError(t, database.DB.Create(&item).Error)
	require.NoError(t, database.DB.Create(&models.MallPurchase{
		Ref: "test-ref", ItemID: item.ID, BuyerID: users[0].ID, Price: 4,
	}).Error)

	diff, err := RecalculateUser(users[0].ID)
	require.NoError(t, err)
	assert.True(t, diff.Changed)
	assert.Equal(t, 6, diff.After.Coins)
}

func TestRecalculateKeepsConversions(t *testing.T) {
	setupTestDB(t)
	_, users, habit := newGroup(t, 1, models.PointPhysical)

	completeDays(t, users[0].ID, habit.ID, 10)
	require.NoError(t, database.DB.Model(users[0]).Update("points_physical", 10).Error)

	_, err := ConvertPoints(users[0].ID, models.PointPhysical, models.PointEducational, 10)
	require.NoError(t, err)
	_, err = ConvertPoints(users[0].ID, models.PointEducational, models.PointCoins, 4)
	require.NoError(t, err)

	user := reloadUser(t, users[0].ID)
	require.Equal(t, 0, user.PointsPhysical)
	require.Equal(t, 1, user.PointsEducational)
	require.Equal(t, 2, user.Coins)

	// The conversions are facts, not drift.
	diff, err := RecalculateUser(users[0].ID)
	require.NoError(t, err)
	assert.False(t, diff.Changed)

	user = reloadUser(t, users[0].ID)
	assert.Equal(t, 0, user.PointsPhysical)
	assert.Equal(t, 1, user.PointsEducational)
	assert.Equal(t, 2, user.Coins)
}

func TestDeleteHabitKeepsConversionsOfOtherTypes(t *testing.T) {
	setupTestDB(t)
	group, users, habit := newGroup(t, 1, models.PointPhysical)

	arts := models.Habit{GroupID: group.ID, Name: "Sketch", PointType: models.PointArts}
	require.NoError(t, database.DB.Create(&arts).Error)

	for i := 0; i < 3; i++ {
		_, err := ToggleCompletion(users[0].ID, habit.ID, daysAgo(i))
		require.NoError(t, err)
	}
	for i := 0; i < 4; i++ {
		_, err := ToggleCompletion(users[0].ID, arts.ID, daysAgo(i))
		require.NoError(t, err)
	}

	_, err := ConvertPoints(users[0].ID, models.PointArts, models.PointOther, 4)
	require.NoError(t, err)

	require.NoError(t, DeleteHabit(users[0].ID, habit.ID))

	// Only the deleted habit's units disappear.
	user := reloadUser(t, users[0].ID)
	assert.Equal(t, 0, user.PointsPhysical)
	assert.Equal(t, 0, user.PointsArts)
	assert.Equal(t, 2, user.PointsOther)
}

func TestRecalculateUnknownUser(t *testing.T) {
	setupTestDB(t)

	_, err := RecalculateUser(404)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}

func TestDeleteHabitClawsBackPoints(t *testing.T) {
	setupTestDB(t)
	_, users, habit := newGroup(t, 1, models.PointPhysical)

	for i := 0; i < 3; i++ {
		_, err := ToggleCompletion(users[0].ID, habit.ID, daysAgo(i))
		require.NoError(t, err)
	}
	assert.Equal(t, 3, reloadUser(t, users[0].ID).PointsPhysical)

	// A medal earned through this habit outlives it.
	medal := models.Medal{UserID: users[0].ID, HabitID: habit.ID, HabitName: habit.Name}
	require.NoError(t, database.DB.Create(&medal).Error)

	require.NoError(t, DeleteHabit(users[0].ID, habit.ID))

	assert.Equal(t, 0, reloadUser(t, users[0].ID).PointsPhysical)

	var habits, completions, streaks, medals int64
	require.NoError(t, database.DB.Model(&models.Habit{}).Count(&habits).Error)
	require.NoError(t, database.DB.Model(&models.Completion{}).Count(&completions).Error)
	require.NoError(t, database.DB.Model(&models.Streak{}).Count(&streaks).Error)
	require.NoError(t, database.DB.Model(&models.Medal{}).Count(&medals).Error)
	assert.Equal(t, int64(0), habits)
	assert.Equal(t, int64(0), completions)
	assert.Equal(t, int64(0), streaks)
	assert.Equal(t, int64(1), medals)
}

func TestUpdateHabitTypeChangeMovesPoints(t *testing.T) {
	setupTestDB(t)
	_, users, habit := newGroup(t, 1, models.PointPhysical)

	for i := 0; i < 3; i++ {
		_, err := ToggleCompletion(users[0].ID, habit.ID, daysAgo(i))
		require.NoError(t, err)
	}

	updated, err := UpdateHabit(users[0].ID, habit.ID, "", models.PointArts)
	require.NoError(t, err)
	assert.Equal(t, models.PointArts, updated.PointType)

	user := reloadUser(t, users[0].ID)
	assert.Equal(t, 0, user.PointsPhysical)
	assert.Equal(t, 3, user.PointsArts)
}
