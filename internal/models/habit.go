package models

import "time"

// Habit belongs to exactly one group and carries a fixed point type.
type Habit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GroupID   uint      `gorm:"index;not null" json:"groupId"`
	Group     *Group    `gorm:"foreignKey:GroupID" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	PointType PointType `gorm:"type:text;not null" json:"pointType"`
	CreatedAt time.Time `json:"createdAt"`
}

// Completion is a (user, habit, calendar date) fact; at most one per
// triple. Its presence implies one unit of the habit's point type was
// credited on that date. Dates are stored as "YYYY-MM-DD".
type Completion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"uniqueIndex:idx_completion_once;index;not null" json:"userId"`
	HabitID   uint      `gorm:"uniqueIndex:idx_completion_once;index;not null" json:"habitId"`
	Date      string    `gorm:"uniqueIndex:idx_completion_once;not null" json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// DateLayout is the calendar-date format used for completions and streaks.
const DateLayout = "2006-01-02"

// Streak is the derived consecutive-day aggregate per (user, habit).
type Streak struct {
	UserID        int64  `gorm:"primaryKey" json:"userId"`
	HabitID       uint   `gorm:"primaryKey" json:"habitId"`
	CurrentLength int    `gorm:"default:0" json:"currentLength"`
	LastDate      string `json:"lastDate"`
}
