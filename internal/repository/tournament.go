package repository

import (
	"context"

	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type TournamentRepository interface {
	Create(ctx context.Context, data *entity.Tournament) error
	GetByID(ctx context.Context, id string) (*entity.Tournament, error)
	GetListByStatuses(ctx context.Context, statuses []entity.TournamentStatus) ([]entity.Tournament, error)
	UpdateStatus(ctx context.Context, id string, status entity.TournamentStatus) error

	// IncreaseParticipants bumps the participant counter only while capacity
	// remains; it reports false when the tournament is full.
	IncreaseParticipants(ctx context.Context, id string) (bool, error)

	CreateEntry(ctx context.Context, data *entity.TournamentEntry) error
	GetEntry(ctx context.Context, tournamentID, userID string) (*entity.TournamentEntry, error)
	GetEntryByID(ctx context.Context, id string) (*entity.TournamentEntry, error)
	GetEntriesByTournamentID(ctx context.Context, tournamentID string) ([]entity.TournamentEntry, error)
	GetEntriesByUserID(ctx context.Context, userID string) ([]entity.TournamentEntry, error)
	// UpdateEntryResult stores the placement only when the entry has none
	// yet; it reports false otherwise, so concurrent result recordings pay
	// the prize at most once.
	UpdateEntryResult(ctx context.Context, id string, placement int, prizeWon float64) (bool, error)
}

type tournamentRepository struct{}

func NewTournamentRepository() TournamentRepository {
	return &tournamentRepository{}
}

func (r *tournamentRepository) Create(ctx context.Context, data *entity.Tournament) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *tournamentRepository) GetByID(ctx context.Context, id string) (*entity.Tournament, error) {
	var record entity.Tournament
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *tournamentRepository) GetListByStatuses(
	ctx context.Context, statuses []entity.TournamentStatus,
) ([]entity.Tournament, error) {
	var records []entity.Tournament
	err := xcontext.DB(ctx).
		Where("status IN (?)", statuses).
		Order("start_time ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *tournamentRepository) UpdateStatus(
	ctx context.Context, id string, status entity.TournamentStatus,
) error {
	return xcontext.DB(ctx).
		Model(&entity.Tournament{}).
		Where("id=?", id).
		Update("status", status).Error
}

func (r *tournamentRepository) IncreaseParticipants(ctx context.Context, id string) (bool, error) {
	ret := xcontext.DB(ctx).
		Model(&entity.Tournament{}).
		Where("id=? AND (max_participants = 0 OR current_participants < max_participants)", id).
		Update("current_participants", gorm.Expr("current_participants + 1"))
	if ret.Error != nil {
		return false, ret.Error
	}

	return ret.RowsAffected == 1, nil
}

func (r *tournamentRepository) CreateEntry(ctx context.Context, data *entity.TournamentEntry) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *tournamentRepository) GetEntry(
	ctx context.Context, tournamentID, userID string,
) (*entity.TournamentEntry, error) {
	var record entity.TournamentEntry
	err := xcontext.DB(ctx).
		Where("tournament_id=? AND user_id=?", tournamentID, userID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *tournamentRepository) GetEntryByID(ctx context.Context, id string) (*entity.TournamentEntry, error) {
	var record entity.TournamentEntry
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *tournamentRepository) GetEntriesByTournamentID(
	ctx context.Context, tournamentID string,
) ([]entity.TournamentEntry, error) {
	var records []entity.TournamentEntry
	err := xcontext.DB(ctx).
		Where("tournament_id=?", tournamentID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *tournamentRepository) GetEntriesByUserID(
	ctx context.Context, userID string,
) ([]entity.TournamentEntry, error) {
	var records []entity.TournamentEntry
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *tournamentRepository) UpdateEntryResult(
	ctx context.Context, id string, placement int, prizeWon float64,
) (bool, error) {
	ret := xcontext.DB(ctx).
		Model(&entity.TournamentEntry{}).
		Where("id=? AND placement IS NULL", id).
		Updates(map[string]any{"placement": placement, "prize_won": prizeWon})
	if ret.Error != nil {
		return false, ret.Error
	}

	return ret.RowsAffected == 1, nil
}
