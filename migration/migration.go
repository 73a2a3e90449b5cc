package migration

import (
	"context"

	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/pkg/xcontext"
)

// Migrate creates or updates every table of the schema.
func Migrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.UserRole{},
		&entity.Wallet{},
		&entity.Transaction{},
		&entity.Task{},
		&entity.TaskStep{},
		&entity.UserTask{},
		&entity.UserTaskClaim{},
		&entity.UserTaskStep{},
		&entity.Tournament{},
		&entity.TournamentEntry{},
		&entity.Deposit{},
		&entity.Withdrawal{},
		&entity.PaymentSetting{},
		&entity.Referral{},
		&entity.SpinHistory{},
		&entity.DailyStreak{},
	)
}
