package repository

import (
	"context"
	"time"

	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/pkg/xcontext"
)

type DepositRepository interface {
	Create(ctx context.Context, data *entity.Deposit) error
	GetByID(ctx context.Context, id string) (*entity.Deposit, error)
	GetListByUserID(ctx context.Context, userID string) ([]entity.Deposit, error)
	GetListByStatus(ctx context.Context, status entity.DepositStatus) ([]entity.Deposit, error)

	// Review flips a pending deposit to its final status; it reports false
	// when the deposit was not pending, which makes concurrent approvals
	// settle on a single winner.
	Review(ctx context.Context, id string, status entity.DepositStatus, reviewerID, note string) (bool, error)
}

type depositRepository struct{}

func NewDepositRepository() DepositRepository {
	return &depositRepository{}
}

func (r *depositRepository) Create(ctx context.Context, data *entity.Deposit) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *depositRepository) GetByID(ctx context.Context, id string) (*entity.Deposit, error) {
	var record entity.Deposit
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *depositRepository) GetListByUserID(ctx context.Context, userID string) ([]entity.Deposit, error) {
	var records []entity.Deposit
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *depositRepository) GetListByStatus(
	ctx context.Context, status entity.DepositStatus,
) ([]entity.Deposit, error) {
	var records []entity.Deposit
	err := xcontext.DB(ctx).
		Where("status=?", status).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *depositRepository) Review(
	ctx context.Context, id string, status entity.DepositStatus, reviewerID, note string,
) (bool, error) {
	ret := xcontext.DB(ctx).
		Model(&entity.Deposit{}).
		Where("id=? AND status=?", id, entity.DepositPending).
		Updates(map[string]any{
			"status":      status,
			"admin_note":  note,
			"reviewed_by": reviewerID,
			"reviewed_at": time.Now(),
		})
	if ret.Error != nil {
		return false, ret.Error
	}

	return ret.RowsAffected == 1, nil
}
