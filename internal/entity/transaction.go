package entity

import (
	"database/sql"

	"github.com/battlezone-labs/backend/pkg/enum"
)

type TransactionType string

var (
	TxCreditEarn       = enum.New(TransactionType("credit_earn"))
	TxCashDeposit      = enum.New(TransactionType("cash_deposit"))
	TxCashWithdraw     = enum.New(TransactionType("cash_withdraw"))
	TxMatchEntryCredit = enum.New(TransactionType("match_entry_credit"))
	TxMatchEntryCash   = enum.New(TransactionType("match_entry_cash"))
	TxPrizeWon         = enum.New(TransactionType("prize_won"))
	TxReferralBonus    = enum.New(TransactionType("referral_bonus"))
	TxSpinWin          = enum.New(TransactionType("spin_win"))
	TxQuizWin          = enum.New(TransactionType("quiz_win"))
)

// ClaimTransactionTypes are the types counted by the hourly claim-rate limit.
var ClaimTransactionTypes = []TransactionType{TxCreditEarn, TxSpinWin, TxQuizWin}

// Transaction is the append-only ledger record. Replaying the records of an
// account in creation order must reproduce its wallet balances exactly.
type Transaction struct {
	Base

	UserID string `gorm:"index:idx_transactions_user_created,priority:1"`
	User   User   `gorm:"foreignKey:UserID"`

	Type          TransactionType
	Amount        float64
	BalanceBefore float64
	BalanceAfter  float64
	Description   string
	ReferenceID   sql.NullString
}
