package cron

import (
	"context"
	"testing"

	"github.com/battlezone-labs/backend/internal/common"
	"github.com/battlezone-labs/backend/internal/repository"
	"github.com/battlezone-labs/backend/pkg/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardCronJob_Do(t *testing.T) {
	ctx := testutil.MockContext()

	scores := map[string]float64{}
	mock := &testutil.MockRedisClient{
		ZAddFunc: func(ctx context.Context, key string, z redis.Z) error {
			require.Equal(t, common.RedisKeyLeaderboard(), key)
			scores[z.Member.(string)] = z.Score
			return nil
		},
	}

	job := NewLeaderboardCronJob(repository.NewWalletRepository(), mock)
	job.Do(ctx)

	require.Len(t, scores, 3)
	require.Equal(t, float64(100), scores[testutil.User1.ID])
	require.Equal(t, float64(50), scores[testutil.User2.ID])
	require.Equal(t, float64(0), scores[testutil.Admin.ID])
}

func TestLeaderboardCronJob_Do_NilRedis(t *testing.T) {
	ctx := testutil.MockContext()

	job := NewLeaderboardCronJob(repository.NewWalletRepository(), nil)
	job.Do(ctx)
}
