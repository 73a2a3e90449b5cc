package repository

import (
	"context"

	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type PaymentSettingRepository interface {
	GetByMethod(ctx context.Context, method string) (*entity.PaymentSetting, error)
	GetList(ctx context.Context) ([]entity.PaymentSetting, error)
	Upsert(ctx context.Context, data *entity.PaymentSetting) error
}

type paymentSettingRepository struct{}

func NewPaymentSettingRepository() PaymentSettingRepository {
	return &paymentSettingRepository{}
}

func (r *paymentSettingRepository) GetByMethod(
	ctx context.Context, method string,
) (*entity.PaymentSetting, error) {
	var record entity.PaymentSetting
	err := xcontext.DB(ctx).
		Where("payment_method=?", method).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *paymentSettingRepository) GetList(ctx context.Context) ([]entity.PaymentSetting, error) {
	var records []entity.PaymentSetting
	err := xcontext.DB(ctx).
		Where("is_active=?", true).
		Order("payment_method ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *paymentSettingRepository) Upsert(ctx context.Context, data *entity.PaymentSetting) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "payment_method"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"account_number", "account_name", "min_deposit", "min_withdrawal", "is_active",
			}),
		}).
		Create(data).Error
}
