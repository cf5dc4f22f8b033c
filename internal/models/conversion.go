package models

import "time"

// Conversion is the immutable audit entry for a point-type exchange.
// AmountTo carries the actually credited amount (after any medal bonus).
type Conversion struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Ref        string    `gorm:"uniqueIndex" json:"ref"`
	UserID     int64     `gorm:"index;not null" json:"userId"`
	FromType   PointType `gorm:"type:text;not null" json:"fromType"`
	ToType     PointType `gorm:"type:text;not null" json:"toType"`
	AmountFrom int       `gorm:"not null" json:"amountFrom"`
	AmountTo   int       `gorm:"not null" json:"amountTo"`
	CreatedAt  time.Time `json:"createdAt"`
}
