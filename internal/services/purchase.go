package services

import (
	"github.com/habitown/habitown-backend/internal/database"
	"github.com/habitown/habitown-backend/internal/models"
	"github.com/habitown/habitown-backend/pkg/errors"
	"github.com/habitown/habitown-backend/pkg/utils"
	"gorm.io/gorm"
)

// PurchaseResult confirms a peer reward purchase.
type PurchaseResult struct {
	Ref       string                  `json:"ref"`
	RewardID  uint                    `json:"rewardId"`
	SellerID  int64                   `json:"sellerId"`
	Price     int                     `json:"price"`
	Breakdown models.PaymentBreakdown `json:"breakdown"`
	Balances  models.Balances         `json:"balances"`
}

// BuyReward transfers points from the buyer to the reward's owner. A
// typed reward is paid entirely from its point type; an "any" reward is
// paid per the caller-supplied breakdown, which must sum to the price.
// Debit and credit commit together or not at all.
func BuyReward(buyerID int64, rewardID uint, breakdown models.PaymentBreakdown) (*PurchaseResult, error) {
	var result PurchaseResult
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var reward models.Reward
		if err := tx.First(&reward, "id = ? AND is_active = ?", rewardID, true).Error; err != nil {
			return errors.NotFound("reward not found")
		}
		if reward.OwnerID == buyerID {
			return errors.Conflict("cannot buy your own reward")
		}

		var buyer, seller models.User
		if err := tx.First(&buyer, "id = ?", buyerID).Error; err != nil {
			return errors.NotFound("buyer not found")
		}
		if err := tx.First(&seller, "id = ?", reward.OwnerID).Error; err != nil {
			return errors.NotFound("reward owner not found")
		}
		if buyer.GroupID == nil || seller.GroupID == nil || *buyer.GroupID != *seller.GroupID {
			return errors.NotFound("reward not found in your group")
		}

		pay, err := resolveBreakdown(&buyer, &reward, breakdown)
		if err != nil {
			return err
		}

		for t, amount := range pay {
			buyer.AddBalance(t, -amount)
			seller.AddBalance(t, amount)
		}
		if err := tx.Save(&buyer).Error; err != nil {
			return err
		}
		if err := tx.Save(&seller).Error; err != nil {
			return err
		}

		record := models.Purchase{
			Ref:      utils.NewRef(),
			BuyerID:  buyerID,
			SellerID: reward.OwnerID,
			RewardID: reward.ID,
			Price:    reward.Price,
		}
		if err := record.SetBreakdown(pay); err != nil {
			return err
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		result = PurchaseResult{
			Ref:       record.Ref,
			RewardID:  reward.ID,
			SellerID:  reward.OwnerID,
			Price:     reward.Price,
			Breakdown: pay,
			Balances:  buyer.Snapshot(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// resolveBreakdown validates the payment against the reward's required
// type and the buyer's balances, returning the exact per-type debits.
func resolveBreakdown(buyer *models.User, reward *models.Reward, breakdown models.PaymentBreakdown) (models.PaymentBreakdown, error) {
	if reward.PointType != models.PointAny {
		if len(breakdown) > 0 {
			if len(breakdown) != 1 || breakdown[reward.PointType] != reward.Price {
				return nil, errors.BadRequest("reward must be paid entirely in its point type")
			}
		}
		if buyer.Balance(reward.PointType) < reward.Price {
			return nil, errors.InsufficientBalance("not enough points of the required type")
		}
		return models.PaymentBreakdown{reward.PointType: reward.Price}, nil
	}

	if len(breakdown) == 0 {
		return nil, errors.BadRequest("payment breakdown required for this reward")
	}
	total := 0
	for t, amount := range breakdown {
		if !t.Valid() {
			return nil, errors.BadRequest("unknown point type in payment breakdown")
		}
		if amount <= 0 {
			return nil, errors.InvalidAmount("breakdown amounts must be positive")
		}
		if buyer.Balance(t) < amount {
			return nil, errors.InsufficientBalance("not enough points of type " + string(t))
		}
		total += amount
	}
	if total != reward.Price {
		return nil, errors.InvalidAmount("payment breakdown must sum to the reward price")
	}
	return breakdown, nil
}

// MallPurchaseResult confirms a communal Town Mall purchase.
type MallPurchaseResult struct {
	Ref            string `json:"ref"`
	ItemID         uint   `json:"itemId"`
	Price          int    `json:"price"`
	RemainingStock int    `json:"remainingStock"`
	Coins          int    `json:"coins"`
}

// BuyMallItem spends coins on a communal catalog item. Nobody is
// credited; finite stock is decremented instead.
func BuyMallItem(buyerID int64, itemID uint) (*MallPurchaseResult, error) {
	var result MallPurchaseResult
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var item models.MallItem
		if err := tx.First(&item, "id = ? AND is_active = ?", itemID, true).Error; err != nil {
			return errors.NotFound("item not found")
		}
		if item.Stock != models.UnlimitedStock && item.Stock <= 0 {
			return errors.NotFound("item out of stock")
		}

		var buyer models.User
		if err := tx.First(&buyer, "id = ?", buyerID).Error; err != nil {
			return errors.NotFound("buyer not found")
		}
		if buyer.Coins < item.Price {
			return errors.InsufficientBalance("not enough coins")
		}

		buyer.Coins -= item.Price
		if err := tx.Save(&buyer).Error; err != nil {
			return err
		}

		if item.Stock != models.UnlimitedStock {
			item.Stock--
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
		}

		record := models.MallPurchase{
			Ref:     utils.NewRef(),
			ItemID:  item.ID,
			BuyerID: buyerID,
			Price:   item.Price,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		result = MallPurchaseResult{
			Ref:            record.Ref,
			ItemID:         item.ID,
			Price:          item.Price,
			RemainingStock: item.Stock,
			Coins:          buyer.Coins,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
