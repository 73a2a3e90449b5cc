package repository_test

import (
	"testing"

	"github.com/battlezone-labs/backend/internal/repository"
	"github.com/battlezone-labs/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestWalletRepository_ApplyDelta(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewWalletRepository()

	wallet, err := repo.ApplyDelta(ctx, testutil.User2.ID, 25, 0, 25)
	require.NoError(t, err)
	require.Equal(t, float64(75), wallet.Credits)
	require.Equal(t, float64(75), wallet.TotalEarned)

	// Spending works the same way with a negative delta.
	wallet, err = repo.ApplyDelta(ctx, testutil.User2.ID, -75, 0, 0)
	require.NoError(t, err)
	require.Equal(t, float64(0), wallet.Credits)
	require.Equal(t, float64(75), wallet.TotalEarned)
}

func TestWalletRepository_ApplyDelta_RefusesNegativeBalance(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewWalletRepository()

	_, err := repo.ApplyDelta(ctx, testutil.User2.ID, -100, 0, 0)
	require.ErrorIs(t, err, repository.ErrNegativeBalance)

	_, err = repo.ApplyDelta(ctx, testutil.User2.ID, 0, -1, 0)
	require.ErrorIs(t, err, repository.ErrNegativeBalance)

	// A refused delta leaves the wallet untouched.
	wallet, err := repo.GetByUserID(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, float64(50), wallet.Credits)
	require.Equal(t, float64(0), wallet.Cash)
}

func TestWalletRepository_ApplyDelta_NotFound(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewWalletRepository()

	_, err := repo.ApplyDelta(ctx, "no-such-user", 10, 0, 0)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestWalletRepository_TopEarners(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewWalletRepository()

	wallets, err := repo.GetTopEarners(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, wallets, 2)
	require.Equal(t, testutil.User1.ID, wallets[0].UserID)
	require.Equal(t, testutil.User2.ID, wallets[1].UserID)

	higher, err := repo.CountHigherEarners(ctx, 50)
	require.NoError(t, err)
	require.Equal(t, int64(1), higher)
}
