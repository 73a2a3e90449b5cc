package domain

import (
	"testing"

	"github.com/battlezone-labs/backend/internal/domain/spinwheel"
	"github.com/battlezone-labs/backend/internal/model"
	"github.com/battlezone-labs/backend/internal/repository"
	"github.com/battlezone-labs/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestSpinDomain(draw float64) *spinDomain {
	return NewSpinDomain(
		repository.NewSpinRepository(),
		repository.NewUserRepository(),
		repository.NewWalletRepository(),
		repository.NewTransactionRepository(),
		nil,
		spinwheel.New(spinwheel.DefaultPrizes, func() float64 { return draw }),
	)
}

func Test_spinDomain_Spin(t *testing.T) {
	ctx := testutil.MockContext()

	// A draw of 0.5 lands in the second band of the default wheel.
	d := newTestSpinDomain(0.5)

	userCtx := testutil.MockContextWithUserID(ctx, testutil.User2.ID)
	resp, err := d.Spin(userCtx, &model.SpinRequest{})
	require.NoError(t, err)
	require.Equal(t, float64(10), resp.CreditsWon)
	require.Equal(t, float64(60), resp.NewBalance)

	// One spin per day.
	_, err = d.Spin(userCtx, &model.SpinRequest{})
	require.Error(t, err)
	require.Equal(t, "Already spun today, try again tomorrow", err.Error())

	history, err := d.GetHistory(userCtx, &model.GetSpinHistoryRequest{})
	require.NoError(t, err)
	require.Len(t, history.History, 1)
	require.Equal(t, float64(10), history.History[0].CreditsWon)
}

func Test_spinDomain_Spin_Unauthenticated(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestSpinDomain(0)

	_, err := d.Spin(ctx, &model.SpinRequest{})
	require.Error(t, err)
	require.Equal(t, "Not authenticated", err.Error())
}
