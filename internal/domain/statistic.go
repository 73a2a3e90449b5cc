package domain

import (
	"context"
	"errors"

	"github.com/battlezone-labs/backend/internal/common"
	"github.com/battlezone-labs/backend/internal/model"
	"github.com/battlezone-labs/backend/internal/repository"
	"github.com/battlezone-labs/backend/pkg/errorx"
	"github.com/battlezone-labs/backend/pkg/xcontext"
	"github.com/battlezone-labs/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type StatisticDomain interface {
	GetLeaderboard(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	GetMyRank(context.Context, *model.GetMyRankRequest) (*model.GetMyRankResponse, error)
}

type statisticDomain struct {
	walletRepo  repository.WalletRepository
	userRepo    repository.UserRepository
	redisClient xredis.Client
}

func NewStatisticDomain(
	walletRepo repository.WalletRepository,
	userRepo repository.UserRepository,
	redisClient xredis.Client,
) *statisticDomain {
	return &statisticDomain{
		walletRepo:  walletRepo,
		userRepo:    userRepo,
		redisClient: redisClient,
	}
}

// GetLeaderboard reads the redis sorted set and falls back to the wallets
// table when redis is unavailable.
func (d *statisticDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	if d.redisClient != nil {
		zs, err := d.redisClient.ZRevRangeWithScores(
			ctx, common.RedisKeyLeaderboard(), req.Offset, limit)
		if err == nil {
			entries := []model.LeaderboardEntry{}
			for i, z := range zs {
				userID, ok := z.Member.(string)
				if !ok {
					continue
				}

				entry := model.LeaderboardEntry{
					UserID:      userID,
					TotalEarned: z.Score,
					Rank:        int64(req.Offset + i + 1),
				}
				if u, err := d.userRepo.GetByID(ctx, userID); err == nil {
					entry.Username = u.Username
				}

				entries = append(entries, entry)
			}

			return &model.GetLeaderboardResponse{Entries: entries}, nil
		}

		xcontext.Logger(ctx).Warnf("Cannot read leaderboard from redis: %v", err)
	}

	wallets, err := d.walletRepo.GetTopEarners(ctx, req.Offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get top earners: %v", err)
		return nil, errorx.Unknown
	}

	entries := []model.LeaderboardEntry{}
	for i := range wallets {
		entry := model.LeaderboardEntry{
			UserID:      wallets[i].UserID,
			TotalEarned: wallets[i].TotalEarned,
			Rank:        int64(req.Offset + i + 1),
		}
		if u, err := d.userRepo.GetByID(ctx, wallets[i].UserID); err == nil {
			entry.Username = u.Username
		}

		entries = append(entries, entry)
	}

	return &model.GetLeaderboardResponse{Entries: entries}, nil
}

func (d *statisticDomain) GetMyRank(
	ctx context.Context, req *model.GetMyRankRequest,
) (*model.GetMyRankResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not authenticated")
	}

	wallet, err := d.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found wallet")
		}

		xcontext.Logger(ctx).Errorf("Cannot get wallet: %v", err)
		return nil, errorx.Unknown
	}

	if d.redisClient != nil {
		rank, err := d.redisClient.ZRevRank(ctx, common.RedisKeyLeaderboard(), userID)
		if err == nil {
			return &model.GetMyRankResponse{
				Rank:        int64(rank) + 1,
				TotalEarned: wallet.TotalEarned,
			}, nil
		}

		if !errors.Is(err, redis.Nil) {
			xcontext.Logger(ctx).Warnf("Cannot read rank from redis: %v", err)
		}
	}

	higher, err := d.walletRepo.CountHigherEarners(ctx, wallet.TotalEarned)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count higher earners: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMyRankResponse{Rank: higher + 1, TotalEarned: wallet.TotalEarned}, nil
}
