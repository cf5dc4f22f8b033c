package services

import (
	"time"

	"github.com/habitown/habitown-backend/internal/config"
	"github.com/habitown/habitown-backend/internal/models"
	"github.com/habitown/habitown-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecomputeStreak rebuilds the consecutive-day streak for (user, habit)
// from the completion facts and persists it. Returns the new length,
// whether a medal was awarded by this call, and whether the award
// completed a group achievement (paying the coin bonus).
//
// The walk starts at the most recent completion and steps backward one
// calendar day at a time; any gap ends the streak.
func RecomputeStreak(tx *gorm.DB, user *models.User, habit *models.Habit) (int, bool, bool, error) {
	var dates []string
	if err := tx.Model(&models.Completion{}).
		Where("user_id = ? AND habit_id = ?", user.ID, habit.ID).
		Order("date desc").
		Pluck("date", &dates).Error; err != nil {
		return 0, false, false, err
	}

	length, lastDate := walkStreak(dates)

	streak := models.Streak{
		UserID:        user.ID,
		HabitID:       habit.ID,
		CurrentLength: length,
		LastDate:      lastDate,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "habit_id"}},
		UpdateAll: true,
	}).Create(&streak).Error; err != nil {
		return 0, false, false, err
	}

	medalDays := config.AppConfig.StreakMedalDays
	if medalDays <= 0 {
		medalDays = 30
	}
	if length < medalDays {
		return length, false, false, nil
	}

	// The streak ends at the most recent completion, not today, so a
	// recompute over purely historical facts still mints the medal the
	// run earned. awardMedal is idempotent either way.
	awarded, err := awardMedal(tx, user, habit)
	if err != nil {
		return length, false, false, err
	}
	if !awarded {
		return length, false, false, nil
	}

	bonus, err := checkGroupAchievement(tx, habit)
	return length, true, bonus, err
}

// walkStreak counts consecutive days backward from the newest completion.
// dates must be sorted descending.
func walkStreak(dates []string) (int, string) {
	if len(dates) == 0 {
		return 0, ""
	}

	last, err := time.Parse(models.DateLayout, dates[0])
	if err != nil {
		return 0, ""
	}

	length := 1
	expected := last.AddDate(0, 0, -1)
	for _, d := range dates[1:] {
		day, err := time.Parse(models.DateLayout, d)
		if err != nil {
			break
		}
		if !day.Equal(expected) {
			break
		}
		length++
		expected = expected.AddDate(0, 0, -1)
	}
	return length, dates[0]
}

// awardMedal grants the (user, habit) medal exactly once. Returns whether
// this call created it.
func awardMedal(tx *gorm.DB, user *models.User, habit *models.Habit) (bool, error) {
	var count int64
	if err := tx.Model(&models.Medal{}).
		Where("user_id = ? AND habit_id = ?", user.ID, habit.ID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	medal := models.Medal{
		UserID:    user.ID,
		HabitID:   habit.ID,
		HabitName: habit.Name,
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&medal).Error; err != nil {
		return false, err
	}

	logger.Info().
		Int64("user_id", user.ID).
		Uint("habit_id", habit.ID).
		Str("habit", habit.Name).
		Msg("medal awarded")
	return true, nil
}

// checkGroupAchievement awards the flat coin bonus to every group member
// once all of them hold the medal for this habit. Idempotent per
// (group, habit); the payout is recorded as CoinGrant facts.
func checkGroupAchievement(tx *gorm.DB, habit *models.Habit) (bool, error) {
	var memberIDs []int64
	if err := tx.Model(&models.User{}).
		Where("group_id = ?", habit.GroupID).
		Pluck("id", &memberIDs).Error; err != nil {
		return false, err
	}
	if len(memberIDs) == 0 {
		return false, nil
	}

	var medaled int64
	if err := tx.Model(&models.Medal{}).
		Where("habit_id = ? AND user_id IN ?", habit.ID, memberIDs).
		Count(&medaled).Error; err != nil {
		return false, err
	}
	if medaled < int64(len(memberIDs)) {
		return false, nil
	}

	var existing int64
	if err := tx.Model(&models.GroupAchievement{}).
		Where("group_id = ? AND habit_id = ?", habit.GroupID, habit.ID).
		Count(&existing).Error; err != nil {
		return false, err
	}
	if existing > 0 {
		return false, nil
	}

	achievement := models.GroupAchievement{GroupID: habit.GroupID, HabitID: habit.ID}
	if err := tx.Create(&achievement).Error; err != nil {
		return false, err
	}

	bonus := config.AppConfig.GroupBonusCoins
	if bonus <= 0 {
		bonus = 10
	}
	for _, memberID := range memberIDs {
		grant := models.CoinGrant{
			UserID:             memberID,
			Amount:             bonus,
			Reason:             "group_achievement",
			GroupAchievementID: &achievement.ID,
		}
		if err := tx.Create(&grant).Error; err != nil {
			return false, err
		}
		coins := models.BalanceColumn(models.PointCoins)
		if err := tx.Model(&models.User{}).
			Where("id = ?", memberID).
			Update(coins, gorm.Expr(coins+" + ?", bonus)).Error; err != nil {
			return false, err
		}
	}

	logger.Info().
		Uint("group_id", habit.GroupID).
		Uint("habit_id", habit.ID).
		Int("bonus", bonus).
		Int("members", len(memberIDs)).
		Msg("group achievement awarded")
	return true, nil
}

// MedalCount returns how many medals a user holds.
func MedalCount(tx *gorm.DB, userID int64) (int, error) {
	var count int64
	err := tx.Model(&models.Medal{}).Where("user_id = ?", userID).Count(&count).Error
	return int(count), err
}
