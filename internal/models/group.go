package models

import "time"

// Group owns a shared habit list and is the join target for users.
type Group struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	ChatID    *int64    `json:"chatId"` // linked broadcast channel, optional
	CreatedAt time.Time `json:"createdAt"`
}

// GroupAchievement records that every member of a group earned the medal
// for the same habit. Awarded once per (group, habit); the coin bonus it
// pays out is recorded as CoinGrant facts.
type GroupAchievement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GroupID   uint      `gorm:"uniqueIndex:idx_group_achievement;not null" json:"groupId"`
	HabitID   uint      `gorm:"uniqueIndex:idx_group_achievement;not null" json:"habitId"`
	AwardedAt time.Time `gorm:"autoCreateTime" json:"awardedAt"`
}
