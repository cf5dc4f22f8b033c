package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/habitown/habitown-backend/internal/database"
	"github.com/habitown/habitown-backend/internal/models"
	"github.com/habitown/habitown-backend/pkg/errors"
	"github.com/habitown/habitown-backend/pkg/logger"
)

// MonthlyStats summarizes one user's month.
type MonthlyStats struct {
	Month       string          `json:"month"`
	Completions int             `json:"completions"`
	ActiveDays  int             `json:"activeDays"`
	BestStreak  int             `json:"bestStreak"`
	Medals      int             `json:"medals"`
	Balances    models.Balances `json:"balances"`
}

// LeaderboardEntry is one row of the group's monthly ranking.
type LeaderboardEntry struct {
	UserID      int64  `json:"userId"`
	Username    string `json:"username"`
	FirstName   string `json:"firstName"`
	Completions int    `json:"completions"`
	Medals      int    `json:"medals"`
}

const leaderboardTTL = 60 * time.Second

// UserMonthlyStats computes the caller's figures for a month given as
// YYYY-MM (defaults to the current month).
func UserMonthlyStats(userID int64, month string) (*MonthlyStats, error) {
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, errors.BadRequest("month must be formatted YYYY-MM")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, errors.NotFound("user not found")
	}

	prefix := month + "-%"

	var completions int64
	if err := database.DB.Model(&models.Completion{}).
		Where("user_id = ? AND date LIKE ?", userID, prefix).
		Count(&completions).Error; err != nil {
		return nil, err
	}

	var activeDays int64
	if err := database.DB.Model(&models.Completion{}).
		Where("user_id = ? AND date LIKE ?", userID, prefix).
		Distinct("date").
		Count(&activeDays).Error; err != nil {
		return nil, err
	}

	var bestStreak int
	if err := database.DB.Model(&models.Streak{}).
		Where("user_id = ?", userID).
		Select("COALESCE(MAX(current_length), 0)").
		Scan(&bestStreak).Error; err != nil {
		return nil, err
	}

	medals, err := MedalCount(database.DB, userID)
	if err != nil {
		return nil, err
	}

	return &MonthlyStats{
		Month:       month,
		Completions: int(completions),
		ActiveDays:  int(activeDays),
		BestStreak:  bestStreak,
		Medals:      medals,
		Balances:    user.Snapshot(),
	}, nil
}

// GroupLeaderboard ranks the caller's group by completions this month.
// Results are cached briefly since every member pulls the same board.
func GroupLeaderboard(userID int64, month string) ([]LeaderboardEntry, error) {
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, errors.BadRequest("month must be formatted YYYY-MM")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, errors.NotFound("user not found")
	}
	if user.GroupID == nil {
		return nil, errors.NotFound("user has not joined a group")
	}
	groupID := *user.GroupID

	cacheKey := fmt.Sprintf("leaderboard:%d:%s", groupID, month)
	var cached []LeaderboardEntry
	if err := database.CacheGet(cacheKey, &cached); err == nil {
		return cached, nil
	}

	var members []models.User
	if err := database.DB.Where("group_id = ?", groupID).Find(&members).Error; err != nil {
		return nil, err
	}

	prefix := month + "-%"
	entries := make([]LeaderboardEntry, 0, len(members))
	for _, m := range members {
		var completions int64
		if err := database.DB.Model(&models.Completion{}).
			Where("user_id = ? AND date LIKE ?", m.ID, prefix).
			Count(&completions).Error; err != nil {
			return nil, err
		}
		medals, err := MedalCount(database.DB, m.ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, LeaderboardEntry{
			UserID:      m.ID,
			Username:    m.Username,
			FirstName:   m.FirstName,
			Completions: int(completions),
			Medals:      medals,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Completions != entries[j].Completions {
			return entries[i].Completions > entries[j].Completions
		}
		return entries[i].Medals > entries[j].Medals
	})

	if err := database.CacheSet(cacheKey, entries, leaderboardTTL); err != nil {
		logger.Debug().Err(err).Msg("leaderboard cache write failed")
	}
	return entries, nil
}
