package entity

// Referral links a referrer to a referred account. Each bonus flag fires at
// most once; the flag flip and the credit happen in one transactional scope.
type Referral struct {
	Base

	ReferrerID string `gorm:"index"`
	Referrer   User   `gorm:"foreignKey:ReferrerID"`

	ReferredID string `gorm:"uniqueIndex"`
	Referred   User   `gorm:"foreignKey:ReferredID"`

	BonusCredited        bool
	DepositBonusCredited bool
	TotalCommission      float64
}
