package entity

// SpinHistory holds one row per account per UTC calendar day. The unique
// index is what actually enforces the one-spin-per-day rule; the application
// level check only exists for a friendly error message.
type SpinHistory struct {
	Base

	UserID string `gorm:"uniqueIndex:idx_spins_user_date,priority:1"`
	User   User   `gorm:"foreignKey:UserID"`

	SpinDate   string `gorm:"uniqueIndex:idx_spins_user_date,priority:2"`
	CreditsWon float64
}
