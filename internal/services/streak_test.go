package services

import (
	"testing"
	"time"

	"github.com/habitown/habitown-backend/internal/database"
	"github.com/habitown/habitown-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// completeDays inserts completion facts for the n consecutive days
// ending today, bypassing the toggle path.
func completeDays(t *testing.T, userID int64, habitID uint, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		c := models.Completion{UserID: userID, HabitID: habitID, Date: daysAgo(i)}
		require.NoError(t, database.DB.Create(&c).Error)
	}
}

func TestStreakCountsConsecutiveDays(t *testing.T) {
	setupTestDB(t)
	_, users, habit := newGroup(t, 1, models.PointPhysical)

	completeDays(t, users[0].ID, habit.ID, 5)

	var length int
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		l, _, _, err := RecomputeStreak(tx, users[0], habit)
		length = l
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 5, length)
}

func TestStreakGapResets(t *testing.T) {
	setupTestDB(t)
	_, users, habit := newGroup(t, 1, models.PointPhysical)

	// Today, yesterday, then a hole, then three older days.
	for _, i := range []int{0, 1, 3, 4, 5} {
		c := models.Completion{UserID: users[0].ID, HabitID: habit.ID, Date: daysAgo(i)}
		require.NoError(t, database.DB.Create(&c).Error)
	}

	var length int
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		l, _, _, err := RecomputeStreak(tx, users[0], habit)
		length = l
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 2, length)
}

func TestThirtyDayStreakMintsOneMedal(t *testing.T) {
	setupTestDB(t)
	_, users, habit := newGroup(t, 2, models.PointPhysical)

	completeDays(t, users[0].ID, habit.ID, 29)

	// The 30th day goes through the toggle so the award path runs.
	result, err := ToggleCompletion(users[0].ID, habit.ID, daysAgo(29))
	require.NoError(t, err)
	assert.Equal(t, 30, result.Streak)
	assert.True(t, result.MedalAwarded)
	// Second member has no medal yet, so no group payout.
	assert.False(t, result.GroupBonusAwarded)

	// Extending the streak must not mint another medal.
	c := models.Completion{UserID: users[0].ID, HabitID: habit.ID, Date: daysAgo(30)}
	require.NoError(t, database.DB.Create(&c).Error)
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		_, medal, _, err := RecomputeStreak(tx, users[0], habit)
		assert.False(t, medal)
		return err
	})
	require.NoError(t, err)

	medals, err := MedalCount(database.DB, users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, medals)
}

func TestHistoricalStreakStillMintsMedal(t *testing.T) {
	setupTestDB(t)
	_, users, habit := newGroup(t, 1, models.PointPhysical)

	// A 30-day run that ended two months ago; a later recompute (for
	// example after deleting an unrelated completion) still mints.
	base := time.Now().AddDate(0, -2, 0)
	for i := 0; i < 30; i++ {
		c := models.Completion{
			UserID:  users[0].ID,
			HabitID: habit.ID,
			Date:    base.AddDate(0, 0, -i).Format(models.DateLayout),
		}
		require.NoError(t, database.DB.Create(&c).Error)
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		length, medal, _, err := RecomputeStreak(tx, users[0], habit)
		assert.Equal(t, 30, length)
		assert.True(t, medal)
		return err
	})
	require.NoError(t, err)
}

func TestGroupAchievementPaysEveryMember(t *testing.T) {
	setupTestDB(t)
	_, users, habit := newGroup(t, 2, models.PointPhysical)

	completeDays(t, users[0].ID, habit.ID, 30)
	completeDays(t, users[1].ID, habit.ID, 29)

	// First member earns their medal; the group is not complete yet.
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		_, medal, bonus, err := RecomputeStreak(tx, users[0], habit)
		assert.True(t, medal)
		assert.False(t, bonus)
		return err
	})
	require.NoError(t, err)

	// Second member completes day 30 and closes the achievement.
	result, err := ToggleCompletion(users[1].ID, habit.ID, daysAgo(29))
	require.NoError(t, err)
	assert.True(t, result.MedalAwarded)
	assert.True(t, result.GroupBonusAwarded)
	assert.Equal(t, 10, result.Balances.Coins)

	for _, u := range users {
		user := reloadUser(t, u.ID)
		assert.Equal(t, 10, user.Coins)

		var grants int64
		require.NoError(t, database.DB.Model(&models.CoinGrant{}).
			Where("user_id = ?", u.ID).Count(&grants).Error)
		assert.Equal(t, int64(1), grants)
	}

	// The payout happens once per (group, habit).
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		_, _, bonus, err := RecomputeStreak(tx, users[0], habit)
		assert.False(t, bonus)
		return err
	})
	require.NoError(t, err)

	user := reloadUser(t, users[0].ID)
	assert.Equal(t, 10, user.Coins)
}
