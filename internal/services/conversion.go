package services

import (
	"github.com/habitown/habitown-backend/internal/config"
	"github.com/habitown/habitown-backend/internal/database"
	"github.com/habitown/habitown-backend/internal/models"
	"github.com/habitown/habitown-backend/pkg/errors"
	"github.com/habitown/habitown-backend/pkg/utils"
	"gorm.io/gorm"
)

// ConversionResult reports the executed exchange and the updated
// balances of both sides.
type ConversionResult struct {
	Ref      string           `json:"ref"`
	FromType models.PointType `json:"fromType"`
	ToType   models.PointType `json:"toType"`
	Debited  int              `json:"debited"`
	Credited int              `json:"credited"`
	Medals   int              `json:"medals"`
	Balances models.Balances  `json:"balances"`
}

// ConvertPoints exchanges amount of one point type for another (or for
// coins) at the base 2:1 ratio, improved by the user's medal multiplier.
// The debit and credit are applied in one transaction and an audit row
// is appended with the actual amounts.
func ConvertPoints(userID int64, from, to models.PointType, amount int) (*ConversionResult, error) {
	if !from.Valid() {
		return nil, errors.BadRequest("unknown source point type")
	}
	if !to.ValidConversionTarget() {
		return nil, errors.BadRequest("unknown destination point type")
	}
	if from == to {
		return nil, errors.BadRequest("source and destination types must differ")
	}

	floor := config.AppConfig.ConversionFloor
	if floor < 2 {
		floor = 2
	}
	if amount < floor || amount%2 != 0 {
		return nil, errors.InvalidAmount("amount must be an even number of at least 2")
	}

	var result ConversionResult
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return errors.NotFound("user not found")
		}
		if user.Balance(from) < amount {
			return errors.InsufficientBalance("not enough points of the source type")
		}

		medals, err := MedalCount(tx, userID)
		if err != nil {
			return err
		}

		credited := CreditedAmount(amount, medals)

		user.AddBalance(from, -amount)
		user.AddBalance(to, credited)
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		record := models.Conversion{
			Ref:        utils.NewRef(),
			UserID:     userID,
			FromType:   from,
			ToType:     to,
			AmountFrom: amount,
			AmountTo:   credited,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		result = ConversionResult{
			Ref:      record.Ref,
			FromType: from,
			ToType:   to,
			Debited:  amount,
			Credited: credited,
			Medals:   medals,
			Balances: user.Snapshot(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CreditedAmount computes the destination credit for a conversion:
// floor of (amount / 2) scaled by the medal-tier multiplier.
func CreditedAmount(amount, medals int) int {
	base := float64(amount) / 2
	return int(base * config.MultiplierFor(medals))
}
