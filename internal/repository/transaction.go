package repository

import (
	"context"
	"time"

	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/pkg/xcontext"
)

type TransactionRepository interface {
	Create(ctx context.Context, data *entity.Transaction) error
	GetListByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.Transaction, error)
	GetAllByUserID(ctx context.Context, userID string) ([]entity.Transaction, error)

	// SumEarnedCreditsSince sums positive credit_earn amounts recorded at or
	// after since. This is the daily-cap window.
	SumEarnedCreditsSince(ctx context.Context, userID string, since time.Time) (float64, error)

	// CountClaimsSince counts claim-type transactions recorded at or after
	// since. This is the hourly rate-limit window.
	CountClaimsSince(ctx context.Context, userID string, since time.Time) (int64, error)
}

type transactionRepository struct{}

func NewTransactionRepository() TransactionRepository {
	return &transactionRepository{}
}

func (r *transactionRepository) Create(ctx context.Context, data *entity.Transaction) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *transactionRepository) GetListByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.Transaction, error) {
	var records []entity.Transaction
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *transactionRepository) GetAllByUserID(
	ctx context.Context, userID string,
) ([]entity.Transaction, error) {
	var records []entity.Transaction
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *transactionRepository) SumEarnedCreditsSince(
	ctx context.Context, userID string, since time.Time,
) (float64, error) {
	var sum float64
	err := xcontext.DB(ctx).
		Model(&entity.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id=? AND type=? AND amount > 0 AND created_at >= ?",
			userID, entity.TxCreditEarn, since).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}

	return sum, nil
}

func (r *transactionRepository) CountClaimsSince(
	ctx context.Context, userID string, since time.Time,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Transaction{}).
		Where("user_id=? AND type IN (?) AND created_at >= ?",
			userID, entity.ClaimTransactionTypes, since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
