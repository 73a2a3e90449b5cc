package entity

import "time"

// DailyStreak tracks consecutive login days, counted on UTC day boundaries.
type DailyStreak struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	CurrentStreak int
	LongestStreak int
	LastLoginDate string

	CreatedAt time.Time
	UpdatedAt time.Time
}
