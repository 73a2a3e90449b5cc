package entity

import (
	"database/sql"

	"github.com/battlezone-labs/backend/pkg/enum"
)

type DepositStatus string

var (
	DepositPending  = enum.New(DepositStatus("pending"))
	DepositApproved = enum.New(DepositStatus("approved"))
	DepositRejected = enum.New(DepositStatus("rejected"))
)

type WithdrawalStatus string

var (
	WithdrawalPending   = enum.New(WithdrawalStatus("pending"))
	WithdrawalCompleted = enum.New(WithdrawalStatus("completed"))
	WithdrawalRejected  = enum.New(WithdrawalStatus("rejected"))
)

type Deposit struct {
	Base

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Amount         float64
	PaymentMethod  string
	TransactionRef string
	Status         DepositStatus
	AdminNote      string
	ReviewedBy     sql.NullString
	ReviewedAt     sql.NullTime
}

// Withdrawal follows the reservation model: the amount is deducted from the
// wallet at request time and refunded only on rejection.
type Withdrawal struct {
	Base

	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`

	Amount        float64
	PaymentMethod string
	AccountNumber string
	Status        WithdrawalStatus
	AdminNote     string
	ProcessedBy   sql.NullString
	ProcessedAt   sql.NullTime
}

type PaymentSetting struct {
	Base

	PaymentMethod string `gorm:"unique"`
	AccountNumber string
	AccountName   string
	MinDeposit    float64
	MinWithdrawal float64
	IsActive      bool
}
