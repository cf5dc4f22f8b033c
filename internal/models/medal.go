package models

import "time"

// Medal is awarded the first time a (user, habit) streak reaches the
// threshold. Persists once earned; improves the conversion multiplier.
type Medal struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"uniqueIndex:idx_medal_once;index;not null" json:"userId"`
	HabitID   uint      `gorm:"uniqueIndex:idx_medal_once;not null" json:"habitId"`
	HabitName string    `json:"habitName"`
	AwardedAt time.Time `gorm:"autoCreateTime" json:"awardedAt"`
}

// CoinGrant is an append-only coin credit fact (currently only group
// achievement bonuses). Coin reconciliation sums these minus mall spend.
type CoinGrant struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             int64     `gorm:"index;not null" json:"userId"`
	Amount             int       `gorm:"not null" json:"amount"`
	Reason             string    `json:"reason"`
	GroupAchievementID *uint     `json:"groupAchievementId"`
	CreatedAt          time.Time `json:"createdAt"`
}
