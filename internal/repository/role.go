package repository

import (
	"context"
	"errors"

	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoleRepository interface {
	Grant(ctx context.Context, userID string, role entity.GlobalRole) error
	Revoke(ctx context.Context, userID string, role entity.GlobalRole) error
	Has(ctx context.Context, userID string, role entity.GlobalRole) (bool, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.UserRole, error)
}

type roleRepository struct{}

func NewRoleRepository() RoleRepository {
	return &roleRepository{}
}

func (r *roleRepository) Grant(ctx context.Context, userID string, role entity.GlobalRole) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.UserRole{UserID: userID, Role: role}).Error
}

func (r *roleRepository) Revoke(ctx context.Context, userID string, role entity.GlobalRole) error {
	return xcontext.DB(ctx).
		Where("user_id=? AND role=?", userID, role).
		Delete(&entity.UserRole{}).Error
}

func (r *roleRepository) Has(ctx context.Context, userID string, role entity.GlobalRole) (bool, error) {
	var record entity.UserRole
	err := xcontext.DB(ctx).Where("user_id=? AND role=?", userID, role).Take(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (r *roleRepository) GetByUserID(ctx context.Context, userID string) ([]entity.UserRole, error) {
	var records []entity.UserRole
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
