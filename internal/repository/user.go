package repository

import (
	"context"

	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/pkg/xcontext"
)

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByExternalUID(ctx context.Context, uid string) (*entity.User, error)
	GetByReferralCode(ctx context.Context, code string) (*entity.User, error)
	SetBanned(ctx context.Context, id string, banned bool) error
	Count(ctx context.Context) (int64, error)
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByExternalUID(ctx context.Context, uid string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("external_uid=?", uid).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByReferralCode(ctx context.Context, code string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Where("referral_code=?", code).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) SetBanned(ctx context.Context, id string, banned bool) error {
	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Update("is_banned", banned).Error
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.User{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
