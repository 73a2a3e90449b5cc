package cron

import (
	"context"
	"time"

	"github.com/battlezone-labs/backend/internal/common"
	"github.com/battlezone-labs/backend/internal/repository"
	"github.com/battlezone-labs/backend/pkg/dateutil"
	"github.com/battlezone-labs/backend/pkg/xcontext"
	"github.com/battlezone-labs/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

const rebuildBatchSize = 500

// LeaderboardCronJob rebuilds the redis leaderboard from the wallets table
// every hour, correcting any increment lost to a redis outage.
type LeaderboardCronJob struct {
	walletRepo  repository.WalletRepository
	redisClient xredis.Client
}

func NewLeaderboardCronJob(
	walletRepo repository.WalletRepository,
	redisClient xredis.Client,
) *LeaderboardCronJob {
	return &LeaderboardCronJob{walletRepo: walletRepo, redisClient: redisClient}
}

func (job *LeaderboardCronJob) Do(ctx context.Context) {
	if job.redisClient == nil {
		return
	}

	for offset := 0; ; offset += rebuildBatchSize {
		wallets, err := job.walletRepo.GetTopEarners(ctx, offset, rebuildBatchSize)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get wallets for leaderboard rebuild: %v", err)
			return
		}

		for i := range wallets {
			err := job.redisClient.ZAdd(ctx, common.RedisKeyLeaderboard(), redis.Z{
				Score:  wallets[i].TotalEarned,
				Member: wallets[i].UserID,
			})
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot rebuild leaderboard of user %s: %v",
					wallets[i].UserID, err)
			}
		}

		if len(wallets) < rebuildBatchSize {
			return
		}
	}
}

func (job *LeaderboardCronJob) RunNow() bool {
	return true
}

func (job *LeaderboardCronJob) Next() time.Time {
	return dateutil.NextHour(time.Now())
}
