package domain

import (
	"context"
	"testing"

	"github.com/battlezone-labs/backend/internal/model"
	"github.com/battlezone-labs/backend/internal/repository"
	"github.com/battlezone-labs/backend/pkg/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func Test_statisticDomain_GetLeaderboard_FromDatabase(t *testing.T) {
	ctx := testutil.MockContext()
	d := NewStatisticDomain(
		repository.NewWalletRepository(),
		repository.NewUserRepository(),
		nil,
	)

	resp, err := d.GetLeaderboard(ctx, &model.GetLeaderboardRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 3)
	require.Equal(t, testutil.User1.ID, resp.Entries[0].UserID)
	require.Equal(t, "player_one", resp.Entries[0].Username)
	require.Equal(t, float64(100), resp.Entries[0].TotalEarned)
	require.Equal(t, int64(1), resp.Entries[0].Rank)
	require.Equal(t, testutil.User2.ID, resp.Entries[1].UserID)
	require.Equal(t, int64(2), resp.Entries[1].Rank)
}

func Test_statisticDomain_GetLeaderboard_FromRedis(t *testing.T) {
	ctx := testutil.MockContext()
	mock := &testutil.MockRedisClient{
		ZRevRangeWithScoresFunc: func(
			ctx context.Context, key string, offset, limit int,
		) ([]redis.Z, error) {
			return []redis.Z{
				{Score: 100, Member: testutil.User1.ID},
				{Score: 50, Member: testutil.User2.ID},
			}, nil
		},
	}

	d := NewStatisticDomain(
		repository.NewWalletRepository(),
		repository.NewUserRepository(),
		mock,
	)

	resp, err := d.GetLeaderboard(ctx, &model.GetLeaderboardRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	require.Equal(t, "player_one", resp.Entries[0].Username)
	require.Equal(t, float64(100), resp.Entries[0].TotalEarned)
	require.Equal(t, "player_two", resp.Entries[1].Username)
	require.Equal(t, int64(2), resp.Entries[1].Rank)
}

func Test_statisticDomain_GetMyRank(t *testing.T) {
	ctx := testutil.MockContext()

	// The default mock returns redis.Nil, forcing the database fallback.
	d := NewStatisticDomain(
		repository.NewWalletRepository(),
		repository.NewUserRepository(),
		&testutil.MockRedisClient{},
	)

	user2Ctx := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	resp, err := d.GetMyRank(user2Ctx, &model.GetMyRankRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.Rank)
	require.Equal(t, float64(50), resp.TotalEarned)

	// When redis knows the member, its rank wins.
	d = NewStatisticDomain(
		repository.NewWalletRepository(),
		repository.NewUserRepository(),
		&testutil.MockRedisClient{
			ZRevRankFunc: func(ctx context.Context, key, member string) (uint64, error) {
				return 0, nil
			},
		},
	)

	user1Ctx := testutil.MockContextWithUserID(ctx, testutil.User1.ID)
	resp, err = d.GetMyRank(user1Ctx, &model.GetMyRankRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Rank)
	require.Equal(t, float64(100), resp.TotalEarned)
}
