package services

import (
	"github.com/habitown/habitown-backend/internal/database"
	"github.com/habitown/habitown-backend/internal/models"
	"github.com/habitown/habitown-backend/pkg/errors"
	"github.com/habitown/habitown-backend/pkg/logger"
	"gorm.io/gorm"
)

// BalanceDiff is the before/after report for one reconciled user.
type BalanceDiff struct {
	UserID  int64           `json:"userId"`
	Before  models.Balances `json:"before"`
	After   models.Balances `json:"after"`
	Changed bool            `json:"changed"`
}

// computeBalances rebuilds a user's balance sheet from source facts:
// completions of each type, plus sale credits, minus purchase debits,
// shifted by the conversion audit rows; coins are grants plus
// conversions into coins, minus mall spend.
func computeBalances(tx *gorm.DB, userID int64) (models.Balances, error) {
	var computed models.Balances

	counts := map[models.PointType]int{}
	for _, t := range models.AllPointTypes {
		var n int64
		if err := tx.Model(&models.Completion{}).
			Joins("JOIN habits ON habits.id = completions.habit_id").
			Where("completions.user_id = ? AND habits.point_type = ?", userID, t).
			Count(&n).Error; err != nil {
			return computed, err
		}
		counts[t] = int(n)
	}

	var purchases []models.Purchase
	if err := tx.Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Find(&purchases).Error; err != nil {
		return computed, err
	}
	for _, p := range purchases {
		breakdown, err := p.GetBreakdown()
		if err != nil {
			return computed, err
		}
		for t, amount := range breakdown {
			if p.SellerID == userID {
				counts[t] += amount
			}
			if p.BuyerID == userID {
				counts[t] -= amount
			}
		}
	}

	convertedCoins := 0
	var conversions []models.Conversion
	if err := tx.Where("user_id = ?", userID).Find(&conversions).Error; err != nil {
		return computed, err
	}
	for _, c := range conversions {
		counts[c.FromType] -= c.AmountFrom
		if c.ToType == models.PointCoins {
			convertedCoins += c.AmountTo
		} else {
			counts[c.ToType] += c.AmountTo
		}
	}

	var granted, spent int64
	if err := tx.Model(&models.CoinGrant{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&granted).Error; err != nil {
		return computed, err
	}
	if err := tx.Model(&models.MallPurchase{}).
		Where("buyer_id = ?", userID).
		Select("COALESCE(SUM(price), 0)").
		Scan(&spent).Error; err != nil {
		return computed, err
	}

	// Deleting a habit whose points were already converted or spent can
	// make the facts undershoot; balances still never go negative.
	coins := int(granted-spent) + convertedCoins
	if coins < 0 {
		coins = 0
	}
	for t, n := range counts {
		if n < 0 {
			counts[t] = 0
		}
	}

	computed = models.Balances{
		Physical:    counts[models.PointPhysical],
		Arts:        counts[models.PointArts],
		FoodRelated: counts[models.PointFood],
		Educational: counts[models.PointEducational],
		Other:       counts[models.PointOther],
		Coins:       coins,
	}
	return computed, nil
}

// reconcileUser recomputes one user's balances inside tx and corrects
// any drift. A mismatch is logged, never silently ignored.
func reconcileUser(tx *gorm.DB, userID int64) (*BalanceDiff, error) {
	var user models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("user not found")
		}
		return nil, err
	}

	before := user.Snapshot()
	after, err := computeBalances(tx, userID)
	if err != nil {
		return nil, err
	}

	diff := BalanceDiff{UserID: userID, Before: before, After: after, Changed: before != after}
	if !diff.Changed {
		return &diff, nil
	}

	logger.Warn().
		Int64("user_id", userID).
		Interface("stored", before).
		Interface("computed", after).
		Msg("balance drift corrected")

	user.PointsPhysical = after.Physical
	user.PointsArts = after.Arts
	user.PointsFoodRelated = after.FoodRelated
	user.PointsEducational = after.Educational
	user.PointsOther = after.Other
	user.Coins = after.Coins
	if err := tx.Save(&user).Error; err != nil {
		return nil, err
	}
	return &diff, nil
}

// RecalculateUser runs the reconciliation for a single user as its own
// transaction and returns the before/after diff.
func RecalculateUser(userID int64) (*BalanceDiff, error) {
	var diff *BalanceDiff
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		d, err := reconcileUser(tx, userID)
		if err != nil {
			return err
		}
		diff = d
		return nil
	})
	return diff, err
}

// RecalculateAll repairs every user's balances from source facts. A
// failure for one user is logged and skipped rather than aborting the
// pass. Running it twice in a row yields identical balances.
func RecalculateAll() ([]BalanceDiff, error) {
	var userIDs []int64
	if err := database.DB.Model(&models.User{}).Pluck("id", &userIDs).Error; err != nil {
		return nil, err
	}

	diffs := make([]BalanceDiff, 0, len(userIDs))
	for _, id := range userIDs {
		diff, err := RecalculateUser(id)
		if err != nil {
			logger.Error().Err(err).Int64("user_id", id).Msg("reconciliation failed, skipping user")
			continue
		}
		diffs = append(diffs, *diff)
	}
	return diffs, nil
}
