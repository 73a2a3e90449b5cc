package repository

import (
	"context"
	"time"

	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/pkg/xcontext"
)

type WithdrawalRepository interface {
	Create(ctx context.Context, data *entity.Withdrawal) error
	GetByID(ctx context.Context, id string) (*entity.Withdrawal, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.Withdrawal, error)
	GetListByStatus(ctx context.Context, status entity.WithdrawalStatus) ([]entity.Withdrawal, error)

	// Process flips a pending withdrawal to status; reports false when the
	// withdrawal was not pending.
	Process(ctx context.Context, id string, status entity.WithdrawalStatus, processorID, note string) (bool, error)
}

type withdrawalRepository struct{}

func NewWithdrawalRepository() WithdrawalRepository {
	return &withdrawalRepository{}
}

func (r *withdrawalRepository) Create(ctx context.Context, data *entity.Withdrawal) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *withdrawalRepository) GetByID(ctx context.Context, id string) (*entity.Withdrawal, error) {
	var record entity.Withdrawal
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *withdrawalRepository) GetListByUserID(
	ctx context.Context, userID string,
) ([]entity.Withdrawal, error) {
	var records []entity.Withdrawal
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *withdrawalRepository) GetListByStatus(
	ctx context.Context, status entity.WithdrawalStatus,
) ([]entity.Withdrawal, error) {
	var records []entity.Withdrawal
	err := xcontext.DB(ctx).
		Where("status=?", status).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *withdrawalRepository) Process(
	ctx context.Context, id string, status entity.WithdrawalStatus, processorID, note string,
) (bool, error) {
	ret := xcontext.DB(ctx).
		Model(&entity.Withdrawal{}).
		Where("id=? AND status=?", id, entity.WithdrawalPending).
		Updates(map[string]any{
			"status":       status,
			"admin_note":   note,
			"processed_by": processorID,
			"processed_at": time.Now(),
		})
	if ret.Error != nil {
		return false, ret.Error
	}

	return ret.RowsAffected == 1, nil
}
