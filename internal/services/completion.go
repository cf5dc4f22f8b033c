package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/habitown/habitown-backend/internal/database"
	"github.com/habitown/habitown-backend/internal/models"
	"github.com/habitown/habitown-backend/pkg/errors"
	"github.com/habitown/habitown-backend/pkg/logger"
	"gorm.io/gorm"
)

// ToggleResult is returned to the presentation layer after a completion
// toggle. Completed reflects the state after the call.
type ToggleResult struct {
	Completed         bool            `json:"completed"`
	Streak            int             `json:"streak"`
	MedalAwarded      bool            `json:"medalAwarded"`
	GroupBonusAwarded bool            `json:"groupBonusAwarded"`
	Balances          models.Balances `json:"balances"`
}

// ToggleCompletion flips the (user, habit, date) completion fact and
// adjusts the user's typed balance by one unit, then recomputes the
// streak. The mutation is a single transaction; a validation failure
// commits nothing.
func ToggleCompletion(userID int64, habitID uint, date string) (*ToggleResult, error) {
	if date == "" {
		date = time.Now().Format(models.DateLayout)
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, errors.BadRequest("date must be formatted YYYY-MM-DD")
	}

	var result ToggleResult
	var groupID uint
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		user, habit, err := loadUserHabit(tx, userID, habitID)
		if err != nil {
			return err
		}
		groupID = habit.GroupID

		var existing models.Completion
		found := tx.Where("user_id = ? AND habit_id = ? AND date = ?", userID, habitID, date).
			First(&existing).Error == nil

		if found {
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if user.Balance(habit.PointType) <= 0 {
				// Stored balance already disagrees with the facts; do not
				// go negative, leave correction to reconciliation.
				logger.Warn().
					Int64("user_id", userID).
					Str("point_type", string(habit.PointType)).
					Msg("completion removed with zero balance, skipping debit")
			} else {
				user.AddBalance(habit.PointType, -1)
			}
			result.Completed = false
		} else {
			completion := models.Completion{UserID: userID, HabitID: habitID, Date: date}
			if err := tx.Create(&completion).Error; err != nil {
				// A unique violation aborts the whole transaction on
				// Postgres, so the race is resolved outside it.
				return err
			}
			user.AddBalance(habit.PointType, 1)
			result.Completed = true
		}

		if err := tx.Save(user).Error; err != nil {
			return err
		}

		streak, medal, bonus, err := RecomputeStreak(tx, user, habit)
		if err != nil {
			return err
		}
		result.Streak = streak
		result.MedalAwarded = medal
		result.GroupBonusAwarded = bonus

		// Coin grants from a group bonus may have touched our row.
		if bonus {
			if err := tx.First(user, "id = ?", userID).Error; err != nil {
				return err
			}
		}
		result.Balances = user.Snapshot()
		return nil
	})
	if err != nil {
		if isDuplicateErr(err) {
			// A racing toggle created the same completion first. The
			// winner already credited the point, so answer from a fresh
			// read instead of surfacing the conflict.
			return resolveRacingToggle(userID, habitID)
		}
		return nil, err
	}

	// The board for this month just moved.
	go database.CacheInvalidate(fmt.Sprintf("leaderboard:%d:*", groupID))

	return &result, nil
}

// resolveRacingToggle reports the committed state after a lost toggle
// race: the completion exists and the point was credited by the winner.
func resolveRacingToggle(userID int64, habitID uint) (*ToggleResult, error) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	var streak models.Streak
	length := 0
	if err := database.DB.First(&streak, "user_id = ? AND habit_id = ?", userID, habitID).Error; err == nil {
		length = streak.CurrentLength
	}

	return &ToggleResult{
		Completed: true,
		Streak:    length,
		Balances:  user.Snapshot(),
	}, nil
}

// loadUserHabit resolves the caller and a habit, enforcing that the habit
// belongs to a group the user is in.
func loadUserHabit(tx *gorm.DB, userID int64, habitID uint) (*models.User, *models.Habit, error) {
	var user models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		return nil, nil, errors.NotFound("user not found")
	}
	if user.GroupID == nil {
		return nil, nil, errors.NotFound("user has not joined a group")
	}

	var habit models.Habit
	if err := tx.First(&habit, "id = ?", habitID).Error; err != nil {
		return nil, nil, errors.NotFound("habit not found")
	}
	if habit.GroupID != *user.GroupID {
		return nil, nil, errors.NotFound("habit not found in your group")
	}
	return &user, &habit, nil
}

func isDuplicateErr(err error) bool {
	if err == gorm.ErrDuplicatedKey {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
