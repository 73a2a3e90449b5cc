package repository_test

import (
	"testing"

	"github.com/battlezone-labs/backend/internal/entity"
	"github.com/battlezone-labs/backend/internal/repository"
	"github.com/battlezone-labs/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestTournamentRepository_UpdateEntryResult(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewTournamentRepository()

	entry := &entity.TournamentEntry{
		Base:         entity.Base{ID: "entry1"},
		TournamentID: testutil.SmallTournament.ID,
		UserID:       testutil.User1.ID,
		FeePaid:      50,
		FeeType:      entity.FeeCredits,
	}
	require.NoError(t, repo.CreateEntry(ctx, entry))

	recorded, err := repo.UpdateEntryResult(ctx, entry.ID, 1, 150)
	require.NoError(t, err)
	require.True(t, recorded)

	// The second write loses against the placement guard and changes
	// nothing.
	recorded, err = repo.UpdateEntryResult(ctx, entry.ID, 2, 75)
	require.NoError(t, err)
	require.False(t, recorded)

	got, err := repo.GetEntryByID(ctx, entry.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), got.Placement.Int64)
	require.Equal(t, float64(150), got.PrizeWon)
}
