package services

import (
	"strings"

	"github.com/habitown/habitown-backend/internal/database"
	"github.com/habitown/habitown-backend/internal/models"
	"github.com/habitown/habitown-backend/pkg/errors"
	"github.com/habitown/habitown-backend/pkg/logger"
	"gorm.io/gorm"
)

// HabitWithState is a habit row decorated with the caller's completion
// state for one date and their current streak.
type HabitWithState struct {
	models.Habit
	CompletedToday bool `json:"completedToday"`
	Streak         int  `json:"streak"`
}

// ListHabits returns the habits of the caller's group with completion
// state for the given date.
func ListHabits(userID int64, date string) ([]HabitWithState, error) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, errors.NotFound("user not found")
	}
	if user.GroupID == nil {
		return nil, errors.NotFound("user has not joined a group")
	}

	var habits []models.Habit
	if err := database.DB.Where("group_id = ?", *user.GroupID).
		Order("id").Find(&habits).Error; err != nil {
		return nil, err
	}

	out := make([]HabitWithState, 0, len(habits))
	for _, h := range habits {
		var done int64
		if err := database.DB.Model(&models.Completion{}).
			Where("user_id = ? AND habit_id = ? AND date = ?", userID, h.ID, date).
			Count(&done).Error; err != nil {
			return nil, err
		}
		var streak models.Streak
		length := 0
		if err := database.DB.First(&streak, "user_id = ? AND habit_id = ?", userID, h.ID).Error; err == nil {
			length = streak.CurrentLength
		}
		out = append(out, HabitWithState{Habit: h, CompletedToday: done > 0, Streak: length})
	}
	return out, nil
}

// CreateHabit adds a habit to the caller's group.
func CreateHabit(userID int64, name string, pointType models.PointType) (*models.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.BadRequest("habit name is required")
	}
	if !pointType.Valid() {
		return nil, errors.BadRequest("unknown point type")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, errors.NotFound("user not found")
	}
	if user.GroupID == nil {
		return nil, errors.NotFound("user has not joined a group")
	}

	habit := models.Habit{GroupID: *user.GroupID, Name: name, PointType: pointType}
	if err := database.DB.Create(&habit).Error; err != nil {
		return nil, err
	}

	logger.Info().
		Uint("habit_id", habit.ID).
		Uint("group_id", habit.GroupID).
		Str("point_type", string(pointType)).
		Msg("habit created")
	return &habit, nil
}

// UpdateHabit renames a habit or changes its point type. Changing the
// type moves every unit already earned through this habit to the new
// type, so all affected members are reconciled in the same transaction.
func UpdateHabit(userID int64, habitID uint, name string, pointType models.PointType) (*models.Habit, error) {
	var updated models.Habit
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		_, habit, err := loadUserHabit(tx, userID, habitID)
		if err != nil {
			return err
		}

		typeChanged := false
		if name = strings.TrimSpace(name); name != "" {
			habit.Name = name
		}
		if pointType != "" {
			if !pointType.Valid() {
				return errors.BadRequest("unknown point type")
			}
			typeChanged = habit.PointType != pointType
			habit.PointType = pointType
		}
		if err := tx.Save(habit).Error; err != nil {
			return err
		}

		if typeChanged {
			if err := reconcileHabitUsers(tx, habitID); err != nil {
				return err
			}
		}
		updated = *habit
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteHabit removes a habit with its completions and streaks, then
// reconciles everyone who had completed it so the earned units come
// back off their balances. Medals already won through it are kept.
func DeleteHabit(userID int64, habitID uint) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		_, habit, err := loadUserHabit(tx, userID, habitID)
		if err != nil {
			return err
		}

		var affected []int64
		if err := tx.Model(&models.Completion{}).
			Where("habit_id = ?", habitID).
			Distinct().Pluck("user_id", &affected).Error; err != nil {
			return err
		}

		if err := tx.Where("habit_id = ?", habitID).Delete(&models.Completion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("habit_id = ?", habitID).Delete(&models.Streak{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(habit).Error; err != nil {
			return err
		}

		for _, id := range affected {
			if _, err := reconcileUser(tx, id); err != nil {
				return err
			}
		}

		logger.Info().
			Uint("habit_id", habitID).
			Int("affected_users", len(affected)).
			Msg("habit deleted")
		return nil
	})
}

// reconcileHabitUsers repairs everyone who ever completed the habit.
func reconcileHabitUsers(tx *gorm.DB, habitID uint) error {
	var affected []int64
	if err := tx.Model(&models.Completion{}).
		Where("habit_id = ?", habitID).
		Distinct().Pluck("user_id", &affected).Error; err != nil {
		return err
	}
	for _, id := range affected {
		if _, err := reconcileUser(tx, id); err != nil {
			return err
		}
	}
	return nil
}
