package repository

import (
	"context"
	"errors"

	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type WalletRepository interface {
	Create(ctx context.Context, data *entity.Wallet) error
	GetByUserID(ctx context.Context, userID string) (*entity.Wallet, error)

	// ApplyDelta adjusts the balances of one wallet as a single conditional
	// relative update, so concurrent deltas on the same account can never
	// lose each other. It returns the wallet after the update, or
	// ErrNegativeBalance if the delta would drive credits or cash below
	// zero.
	ApplyDelta(ctx context.Context, userID string, creditsDelta, cashDelta, totalEarnedDelta float64) (*entity.Wallet, error)

	GetTopEarners(ctx context.Context, offset, limit int) ([]entity.Wallet, error)
	CountHigherEarners(ctx context.Context, totalEarned float64) (int64, error)
}

type walletRepository struct{}

func NewWalletRepository() WalletRepository {
	return &walletRepository{}
}

func (r *walletRepository) Create(ctx context.Context, data *entity.Wallet) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *walletRepository) GetByUserID(ctx context.Context, userID string) (*entity.Wallet, error) {
	var record entity.Wallet
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *walletRepository) ApplyDelta(
	ctx context.Context, userID string, creditsDelta, cashDelta, totalEarnedDelta float64,
) (*entity.Wallet, error) {
	ret := xcontext.DB(ctx).
		Model(&entity.Wallet{}).
		Where("user_id=? AND credits + ? >= 0 AND cash + ? >= 0", userID, creditsDelta, cashDelta).
		Updates(map[string]any{
			"credits":      gorm.Expr("credits + ?", creditsDelta),
			"cash":         gorm.Expr("cash + ?", cashDelta),
			"total_earned": gorm.Expr("total_earned + ?", totalEarnedDelta),
		})
	if ret.Error != nil {
		return nil, ret.Error
	}

	if ret.RowsAffected == 0 {
		// Either the wallet does not exist or the guard refused the delta.
		var record entity.Wallet
		err := xcontext.DB(ctx).Where("user_id=?", userID).Take(&record).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, gorm.ErrRecordNotFound
			}

			return nil, err
		}

		return nil, ErrNegativeBalance
	}

	return r.GetByUserID(ctx, userID)
}

func (r *walletRepository) GetTopEarners(
	ctx context.Context, offset, limit int,
) ([]entity.Wallet, error) {
	var records []entity.Wallet
	err := xcontext.DB(ctx).
		Order("total_earned DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *walletRepository) CountHigherEarners(
	ctx context.Context, totalEarned float64,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Wallet{}).
		Where("total_earned > ?", totalEarned).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
