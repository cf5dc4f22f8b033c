package models

import "time"

// UnlimitedStock marks a mall item without a stock counter.
const UnlimitedStock = -1

// MallItem is a communal catalog entry bought with coins. Nobody is
// credited on purchase; finite stock is decremented instead.
type MallItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Price     int       `gorm:"not null" json:"price"` // coins
	Stock     int       `gorm:"default:-1" json:"stock"`
	SponsorID *int64    `gorm:"index" json:"sponsorId"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// MallPurchase is the immutable audit entry for a mall purchase.
type MallPurchase struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Ref       string    `gorm:"uniqueIndex" json:"ref"`
	ItemID    uint      `gorm:"index;not null" json:"itemId"`
	BuyerID   int64     `gorm:"index;not null" json:"buyerId"`
	Price     int       `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}
