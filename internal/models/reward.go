package models

import (
	"encoding/json"
	"time"
)

// Reward is an entry in a user's personal shop, purchasable by group
// peers. PointType "any" rewards accept payment from a mix of types.
type Reward struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   int64     `gorm:"index;not null" json:"ownerId"`
	Owner     *User     `gorm:"foreignKey:OwnerID" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	Price     int       `gorm:"not null" json:"price"`
	PointType PointType `gorm:"type:text;not null" json:"pointType"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// PaymentBreakdown maps point types to the amount debited from each.
type PaymentBreakdown map[PointType]int

// Total sums all components.
func (b PaymentBreakdown) Total() int {
	total := 0
	for _, amount := range b {
		total += amount
	}
	return total
}

// Purchase is the immutable audit entry for a peer reward purchase.
// Breakdown is stored as JSON text so the same code path works on
// Postgres and the sqlite test databases.
type Purchase struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Ref       string    `gorm:"uniqueIndex" json:"ref"`
	BuyerID   int64     `gorm:"index;not null" json:"buyerId"`
	SellerID  int64     `gorm:"index;not null" json:"sellerId"`
	RewardID  uint      `gorm:"not null" json:"rewardId"`
	Price     int       `gorm:"not null" json:"price"`
	Breakdown string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// SetBreakdown serializes the payment breakdown onto the record.
func (p *Purchase) SetBreakdown(b PaymentBreakdown) error {
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	p.Breakdown = string(data)
	return nil
}

// GetBreakdown parses the stored payment breakdown.
func (p *Purchase) GetBreakdown() (PaymentBreakdown, error) {
	b := PaymentBreakdown{}
	if p.Breakdown == "" {
		return b, nil
	}
	err := json.Unmarshal([]byte(p.Breakdown), &b)
	return b, err
}
