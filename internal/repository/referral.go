package repository

import (
	"context"

	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ReferralRepository interface {
	Create(ctx context.Context, data *entity.Referral) error
	GetByReferredID(ctx context.Context, referredID string) (*entity.Referral, error)
	GetListByReferrerID(ctx context.Context, referrerID string) ([]entity.Referral, error)

	// ClaimDepositBonus flips deposit_bonus_credited and accrues the
	// commission in one guarded statement. It reports false if the bonus
	// was already claimed, so concurrent deposit approvals pay at most
	// once.
	ClaimDepositBonus(ctx context.Context, referredID string, commission float64) (bool, error)
}

type referralRepository struct{}

func NewReferralRepository() ReferralRepository {
	return &referralRepository{}
}

func (r *referralRepository) Create(ctx context.Context, data *entity.Referral) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *referralRepository) GetByReferredID(
	ctx context.Context, referredID string,
) (*entity.Referral, error) {
	var record entity.Referral
	if err := xcontext.DB(ctx).Where("referred_id=?", referredID).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *referralRepository) GetListByReferrerID(
	ctx context.Context, referrerID string,
) ([]entity.Referral, error) {
	var records []entity.Referral
	err := xcontext.DB(ctx).
		Where("referrer_id=?", referrerID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *referralRepository) ClaimDepositBonus(
	ctx context.Context, referredID string, commission float64,
) (bool, error) {
	ret := xcontext.DB(ctx).
		Model(&entity.Referral{}).
		Where("referred_id=? AND deposit_bonus_credited=?", referredID, false).
		Updates(map[string]any{
			"deposit_bonus_credited": true,
			"total_commission":       gorm.Expr("total_commission + ?", commission),
		})
	if ret.Error != nil {
		return false, ret.Error
	}

	return ret.RowsAffected == 1, nil
}
