package services

import (
	"strings"

	"github.com/habitown/habitown-backend/internal/database"
	"github.com/habitown/habitown-backend/internal/models"
	"github.com/habitown/habitown-backend/pkg/errors"
)

// ListGroupRewards returns the active rewards offered by the caller's
// group mates. The caller's own listings are excluded; a shop only
// shows what you can actually buy.
func ListGroupRewards(userID int64) ([]models.Reward, error) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return nil, errors.NotFound("user not found")
	}
	if user.GroupID == nil {
		return nil, errors.NotFound("user has not joined a group")
	}

	var rewards []models.Reward
	err := database.DB.
		Joins("JOIN users ON users.id = rewards.owner_id").
		Where("users.group_id = ? AND rewards.owner_id != ? AND rewards.is_active = ?",
			*user.GroupID, userID, true).
		Order("rewards.id").
		Find(&rewards).Error
	return rewards, err
}

// ListOwnRewards returns the caller's active listings.
func ListOwnRewards(userID int64) ([]models.Reward, error) {
	var rewards []models.Reward
	err := database.DB.Where("owner_id = ? AND is_active = ?", userID, true).
		Order("id").Find(&rewards).Error
	return rewards, err
}

// CreateReward lists a new reward offered by the caller. PointType may
// be a concrete type or "any".
func CreateReward(ownerID int64, name string, price int, pointType models.PointType) (*models.Reward, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.BadRequest("reward name is required")
	}
	if price <= 0 {
		return nil, errors.InvalidAmount("price must be positive")
	}
	if !pointType.ValidForReward() {
		return nil, errors.BadRequest("unknown point type")
	}

	var owner models.User
	if err := database.DB.First(&owner, "id = ?", ownerID).Error; err != nil {
		return nil, errors.NotFound("user not found")
	}
	if owner.GroupID == nil {
		return nil, errors.NotFound("user has not joined a group")
	}

	reward := models.Reward{
		OwnerID:   ownerID,
		Name:      name,
		Price:     price,
		PointType: pointType,
		IsActive:  true,
	}
	if err := database.DB.Create(&reward).Error; err != nil {
		return nil, err
	}
	return &reward, nil
}

// DeactivateReward takes the caller's listing off the shop. Past
// purchases of it stay on record, so the row is kept inactive rather
// than deleted.
func DeactivateReward(ownerID int64, rewardID uint) error {
	var reward models.Reward
	if err := database.DB.First(&reward, "id = ? AND is_active = ?", rewardID, true).Error; err != nil {
		return errors.NotFound("reward not found")
	}
	if reward.OwnerID != ownerID {
		return errors.NotFound("reward not found")
	}
	return database.DB.Model(&reward).Update("is_active", false).Error
}
