package services

import (
	"testing"
	"time"

	"github.com/habitown/habitown-backend/internal/database"
	"github.com/habitown/habitown-backend/internal/models"
	"github.com/habitown/habitown-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListHabitsShowsCompletionState(t *testing.T) {
	setupTestDB(t)
	_, users, habit := newGroup(t, 1, models.PointPhysical)

	today := time.Now().Format(models.DateLayout)
	_, err := ToggleCompletion(users[0].ID, habit.ID, today)
	require.NoError(t, err)

	habits, err := ListHabits(users[0].ID, today)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.True(t, habits[0].CompletedToday)
	assert.Equal(t, 1, habits[0].Streak)

	habits, err = ListHabits(users[0].ID, daysAgo(1))
	require.NoError(t, err)
	assert.False(t, habits[0].CompletedToday)
}

func TestCreateHabitValidation(t *testing.T) {
	setupTestDB(t)
	_, users, _ := newGroup(t, 1, models.PointPhysical)

	_, err := CreateHabit(users[0].ID, "  ", models.PointArts)
	assert.True(t, errors.IsKind(err, errors.KindInvalidAmount))

	_, err = CreateHabit(users[0].ID, "Stretch", "bogus")
	assert.True(t, errors.IsKind(err, errors.KindInvalidAmount))

	// "any" prices rewards, it does not type habits.
	_, err = CreateHabit(users[0].ID, "Stretch", models.PointAny)
	assert.True(t, errors.IsKind(err, errors.KindInvalidAmount))

	habit, err := CreateHabit(users[0].ID, "Stretch", models.PointArts)
	require.NoError(t, err)
	assert.Equal(t, models.PointArts, habit.PointType)
}

func TestCreateHabitRequiresGroup(t *testing.T) {
	setupTestDB(t)

	loner := models.User{ID: 55, Username: "loner"}
	require.NoError(t, database.DB.Create(&loner).Error)

	_, err := CreateHabit(loner.ID, "Stretch", models.PointArts)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}
