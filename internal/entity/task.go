package entity

import (
	"database/sql"
	"time"

	"github.com/battlezone-labs/backend/pkg/enum"
)

type ResetType string

var (
	ResetDaily  = enum.New(ResetType("daily"))
	ResetWeekly = enum.New(ResetType("weekly"))
	ResetNever  = enum.New(ResetType("never"))
)

type Task struct {
	Base

	Title         string
	Description   string
	TaskURL       string
	RewardCredits float64
	ResetType     ResetType
	MaxClaims     int
	CooldownHours int
	IsActive      bool
}

type TaskStep struct {
	Base

	TaskID string `gorm:"index"`
	Task   Task   `gorm:"foreignKey:TaskID"`

	Position      int
	Title         string
	RewardCredits float64
}

// UserTask is created lazily on the first claim attempt. The composite
// primary key doubles as the uniqueness guard for concurrent lazy creation.
type UserTask struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	TaskID string `gorm:"primaryKey"`
	Task   Task   `gorm:"foreignKey:TaskID"`

	IsCompleted   bool
	IsClaimed     bool
	LastClaimedAt sql.NullTime
	ClaimsToday   int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserTaskClaim pins a claim to its reset period. The composite primary key
// refuses a second claim of the same period at the storage level, so two
// concurrent claims reading the same UserTask snapshot cannot both pay.
type UserTaskClaim struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	TaskID string `gorm:"primaryKey"`
	Task   Task   `gorm:"foreignKey:TaskID"`

	// PeriodKey identifies the reset period: "once" for never-resetting
	// tasks, day plus claim ordinal for daily ones, ISO week for weekly.
	PeriodKey string `gorm:"primaryKey"`

	CreatedAt time.Time
}

// UserTaskStep records a one-time step claim. The composite primary key
// makes a second claim fail with a uniqueness violation.
type UserTaskStep struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	TaskStepID string   `gorm:"primaryKey"`
	TaskStep   TaskStep `gorm:"foreignKey:TaskStepID"`

	CreditsEarned float64
	CreatedAt     time.Time
}
