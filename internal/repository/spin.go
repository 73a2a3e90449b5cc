package repository

import (
	"context"

	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/pkg/xcontext"
)

type SpinRepository interface {
	Create(ctx context.Context, data *entity.SpinHistory) error
	GetByUserAndDate(ctx context.Context, userID, date string) (*entity.SpinHistory, error)
	GetListByUserID(ctx context.Context, userID string, limit int) ([]entity.SpinHistory, error)
}

type spinRepository struct{}

func NewSpinRepository() SpinRepository {
	return &spinRepository{}
}

func (r *spinRepository) Create(ctx context.Context, data *entity.SpinHistory) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *spinRepository) GetByUserAndDate(
	ctx context.Context, userID, date string,
) (*entity.SpinHistory, error) {
	var record entity.SpinHistory
	err := xcontext.DB(ctx).
		Where("user_id=? AND spin_date=?", userID, date).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *spinRepository) GetListByUserID(
	ctx context.Context, userID string, limit int,
) ([]entity.SpinHistory, error) {
	var records []entity.SpinHistory
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
