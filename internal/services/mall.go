package services

import (
	"strings"

	"github.com/habitown/habitown-backend/internal/database"
	"github.com/habitown/habitown-backend/internal/models"
	"github.com/habitown/habitown-backend/pkg/errors"
)

// ListMallItems returns the active Town Mall catalog. Sold-out finite
// items stay visible so the catalog reads the same for everyone.
func ListMallItems() ([]models.MallItem, error) {
	var items []models.MallItem
	err := database.DB.Where("is_active = ?", true).Order("price, id").Find(&items).Error
	return items, err
}

// MallHistory returns the caller's coin purchases, newest first.
func MallHistory(userID int64, limit int) ([]models.MallPurchase, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var history []models.MallPurchase
	err := database.DB.Where("buyer_id = ?", userID).
		Order("created_at desc").Limit(limit).Find(&history).Error
	return history, err
}

// CreateMallItem adds a catalog entry. Stock -1 means unlimited.
func CreateMallItem(name string, price, stock int, sponsorID *int64) (*models.MallItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.BadRequest("item name is required")
	}
	if price <= 0 {
		return nil, errors.InvalidAmount("price must be positive")
	}
	if stock < models.UnlimitedStock {
		return nil, errors.InvalidAmount("stock must be -1 (unlimited) or non-negative")
	}

	item := models.MallItem{
		Name:      name,
		Price:     price,
		Stock:     stock,
		SponsorID: sponsorID,
		IsActive:  true,
	}
	if err := database.DB.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateMallItem edits price or stock of a catalog entry.
func UpdateMallItem(itemID uint, price, stock *int) (*models.MallItem, error) {
	var item models.MallItem
	if err := database.DB.First(&item, "id = ? AND is_active = ?", itemID, true).Error; err != nil {
		return nil, errors.NotFound("item not found")
	}

	if price != nil {
		if *price <= 0 {
			return nil, errors.InvalidAmount("price must be positive")
		}
		item.Price = *price
	}
	if stock != nil {
		if *stock < models.UnlimitedStock {
			return nil, errors.InvalidAmount("stock must be -1 (unlimited) or non-negative")
		}
		item.Stock = *stock
	}
	if err := database.DB.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RetireMallItem hides a catalog entry without touching its purchase
// history.
func RetireMallItem(itemID uint) error {
	var item models.MallItem
	if err := database.DB.First(&item, "id = ? AND is_active = ?", itemID, true).Error; err != nil {
		return errors.NotFound("item not found")
	}
	return database.DB.Model(&item).Update("is_active", false).Error
}
