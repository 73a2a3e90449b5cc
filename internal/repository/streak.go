package repository

import (
	"context"

	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type StreakRepository interface {
	GetOrCreate(ctx context.Context, userID string) (*entity.DailyStreak, error)
	Update(ctx context.Context, data *entity.DailyStreak) error
}

type streakRepository struct{}

func NewStreakRepository() StreakRepository {
	return &streakRepository{}
}

func (r *streakRepository) GetOrCreate(ctx context.Context, userID string) (*entity.DailyStreak, error) {
	err := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.DailyStreak{UserID: userID}).Error
	if err != nil {
		return nil, err
	}

	var record entity.DailyStreak
	if err := xcontext.DB(ctx).Where("user_id=?", userID).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *streakRepository) Update(ctx context.Context, data *entity.DailyStreak) error {
	return xcontext.DB(ctx).
		Model(&entity.DailyStreak{}).
		Where("user_id=?", data.UserID).
		Updates(map[string]any{
			"current_streak":  data.CurrentStreak,
			"longest_streak":  data.LongestStreak,
			"last_login_date": data.LastLoginDate,
		}).Error
}
