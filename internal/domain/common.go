package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/battlezone-labs/backend/internal/common"
	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/internal/repository"
	"github.com/battlezone-labs/backend/pkg/errorx"
	"github.com/battlezone-labs/backend/pkg/xcontext"
	"github.com/battlezone-labs/backend/pkg/xredis"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// walletChange is one balance adjustment plus its ledger record. Exactly one
// transaction row is written per change; operations touching both balances
// apply two changes.
type walletChange struct {
	creditsDelta     float64
	cashDelta        float64
	totalEarnedDelta float64

	txType      entity.TransactionType
	description string
	referenceID string
}

// applyWalletChange adjusts the wallet and appends the matching ledger
// record. The recorded before/after balances are derived from the returned
// wallet, so they stay exact under concurrent changes. Callers must run this
// inside a transactional scope.
func applyWalletChange(
	ctx context.Context,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	userID string,
	change walletChange,
) (*entity.Wallet, error) {
	wallet, err := walletRepo.ApplyDelta(
		ctx, userID, change.creditsDelta, change.cashDelta, change.totalEarnedDelta)
	if err != nil {
		if errors.Is(err, repository.ErrNegativeBalance) {
			if change.creditsDelta < 0 {
				return nil, errorx.New(errorx.InsufficientBalance, "Insufficient credits")
			}

			return nil, errorx.New(errorx.InsufficientBalance, "Insufficient cash")
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found wallet")
		}

		xcontext.Logger(ctx).Errorf("Cannot apply wallet delta: %v", err)
		return nil, errorx.Unknown
	}

	amount := change.creditsDelta
	balanceAfter := wallet.Credits
	if change.creditsDelta == 0 && change.cashDelta != 0 {
		amount = change.cashDelta
		balanceAfter = wallet.Cash
	}

	record := &entity.Transaction{
		Base:          entity.Base{ID: uuid.NewString()},
		UserID:        userID,
		Type:          change.txType,
		Amount:        amount,
		BalanceBefore: balanceAfter - amount,
		BalanceAfter:  balanceAfter,
		Description:   change.description,
	}
	if change.referenceID != "" {
		record.ReferenceID = sql.NullString{Valid: true, String: change.referenceID}
	}

	if err := transactionRepo.Create(ctx, record); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create transaction: %v", err)
		return nil, errorx.Unknown
	}

	return wallet, nil
}

// requireActiveUser loads the requesting account and refuses banned or
// anonymous callers.
func requireActiveUser(
	ctx context.Context, userRepo repository.UserRepository,
) (*entity.User, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not authenticated")
	}

	user, err := userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Not authenticated")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	if user.IsBanned {
		return nil, errorx.New(errorx.PermissionDenied, "Account is suspended")
	}

	return user, nil
}

// bumpLeaderboard is best effort. The hourly rebuild corrects any increment
// lost to a redis hiccup.
func bumpLeaderboard(ctx context.Context, redisClient xredis.Client, userID string, amount float64) {
	if redisClient == nil || amount <= 0 {
		return
	}

	if err := redisClient.ZIncrBy(ctx, common.RedisKeyLeaderboard(), amount, userID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot update leaderboard of user %s: %v", userID, err)
	}
}
