package entity

// Wallet is 1:1 with User. Credits and Cash never go below zero;
// TotalEarned only grows. All mutation goes through
// WalletRepository.ApplyDelta so the transaction log stays consistent.
type Wallet struct {
	Base

	UserID string `gorm:"uniqueIndex"`
	User   User   `gorm:"foreignKey:UserID"`

	Credits     float64
	Cash        float64
	TotalEarned float64
}
